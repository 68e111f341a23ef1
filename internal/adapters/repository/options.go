// Package repository persists the participant index as flat records.
package repository

import "os"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithIndent sets the indentation used when writing the index.
func WithIndent(indent string) Option {
	return func(s *FileStore) {
		s.indent = indent
	}
}

// WithFileMode sets the permission bits of the written index file.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}
