// Package source enumerates stored competition documents.
package source

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/crux/pkg/logger"
)

// Competition document filename convention.
const (
	DocumentPrefix = "comp="
	DocumentSuffix = ".json"
)

// Dir reads competition documents from a directory.
type Dir struct {
	path   string
	logger logger.Logger
}

// Option applies a configuration option to Dir.
type Option func(*Dir)

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dir) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDir creates a source over path.
func NewDir(path string, opts ...Option) *Dir {
	d := &Dir{path: path, logger: logger.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the directory path.
func (d *Dir) Path() string { return d.path }

// IsDocumentName reports whether name follows the competition filename convention.
func IsDocumentName(name string) bool {
	return strings.HasPrefix(name, DocumentPrefix) && strings.HasSuffix(name, DocumentSuffix)
}

// Names lists competition document names in lexical order.
func (d *Dir) Names(ctx context.Context) ([]string, error) {
	info, err := os.Stat(d.path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, d.path)
	}
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("read competition directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			d.logger.Debug(ctx, "not a file", logger.String("name", e.Name()))
			continue
		}
		if !IsDocumentName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Documents yields (name, contents) for every competition document.
// Unreadable files are skipped with a diagnostic.
func (d *Dir) Documents(ctx context.Context) (iter.Seq2[string, []byte], error) {
	names, err := d.Names(ctx)
	if err != nil {
		return nil, err
	}
	return func(yield func(string, []byte) bool) {
		for _, name := range names {
			raw, err := os.ReadFile(filepath.Join(d.path, name))
			if err != nil {
				d.logger.Warn(ctx, "unable to read competition document",
					logger.String("competition", name),
					logger.Error(err),
				)
				continue
			}
			if !yield(name, raw) {
				return
			}
		}
	}, nil
}

// Has reports whether a document with name is already stored.
func (d *Dir) Has(name string) bool {
	_, err := os.Stat(filepath.Join(d.path, name))
	return err == nil
}

// Put stores a document under name.
func (d *Dir) Put(name string, raw []byte) error {
	if err := os.WriteFile(filepath.Join(d.path, name), raw, 0o644); err != nil { //nolint:gosec // documents are public data
		return fmt.Errorf("store competition document %s: %w", name, err)
	}
	return nil
}
