// Package report renders cross-reference results as per-discipline CSV matrices.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/crux/internal/domain/crossref"
	"github.com/okian/crux/pkg/logger"
)

var fixedColumns = []string{"PersonID", "Name", "Gender"}

// Writer writes one CSV file per discipline into a directory.
type Writer struct {
	dir    string
	logger logger.Logger
}

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter creates a report writer targeting dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, logger: logger.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FileName returns the report filename for a result.
func FileName(r *crossref.Result) string {
	return strings.ToLower(r.Discipline.String()) + ".csv"
}

// Write renders every result and returns the written paths in result order.
func (w *Writer) Write(ctx context.Context, results []*crossref.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	paths := make([]string, 0, len(results))
	for _, r := range results {
		path := filepath.Join(w.dir, FileName(r))
		if err := writeFile(path, r); err != nil {
			return paths, err
		}
		w.logger.Info(ctx, "report written",
			logger.String("discipline", r.Discipline.String()),
			logger.String("path", path),
			logger.Int("participants", len(r.Participants())),
			logger.Int("competitions", len(r.Competitions())),
		)
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, r *crossref.Result) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is built from the configured report dir
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrWriteReport, cerr)
		}
	}()
	if err := Render(f, r); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
	}
	return nil
}

// Render writes the matrix for one discipline. An empty result still
// produces the header row.
func Render(out io.Writer, r *crossref.Result) error {
	comps := r.Competitions()
	cw := csv.NewWriter(out)

	header := append(append([]string(nil), fixedColumns...), comps...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range r.Participants() {
		row := make([]string, 0, len(header))
		row = append(row, p.PersonID, p.FullName(), p.Gender.String())
		for _, c := range comps {
			rank, _ := p.RankIn(c)
			row = append(row, rank)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
