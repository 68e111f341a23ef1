// Package repository persists the participant index as flat records.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/crux/internal/domain/model"
)

const (
	defaultIndent   = "    "
	defaultFileMode = 0o644
)

// FileStore keeps the participant index in a single JSON document.
// encoding/json writes map keys sorted, so equal indexes produce equal bytes.
type FileStore struct {
	path   string
	indent string
	mode   os.FileMode
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		indent: defaultIndent,
		mode:   defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Save writes idx via a temp file and rename so readers never see a partial index.
func (s *FileStore) Save(ctx context.Context, idx model.ParticipantIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx == nil {
		idx = model.ParticipantIndex{}
	}
	data, err := json.MarshalIndent(idx, "", s.indent)
	if err != nil {
		return fmt.Errorf("encode participant index: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write participant index: %w", err)
	}
	if err := tmp.Chmod(s.mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod participant index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close participant index: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace participant index: %w", err)
	}
	return nil
}

// Load reads and decodes the index file.
func (s *FileStore) Load(ctx context.Context) (model.ParticipantIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read participant index: %w", err)
	}
	var idx model.ParticipantIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.path, err)
	}
	if idx == nil {
		idx = model.ParticipantIndex{}
	}
	// older files may omit PerId inside the record
	for id, p := range idx {
		if p == nil {
			return nil, fmt.Errorf("%w: %s: null participant %q", ErrCorrupt, s.path, id)
		}
		if p.PersonID == "" {
			p.PersonID = id
		}
	}
	return idx, nil
}
