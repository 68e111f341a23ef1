// Package repository persists the participant index as flat records.
package repository

import (
	"context"

	"github.com/okian/crux/internal/domain/model"
)

// Store provides read/write access to the persisted participant index.
type Store interface {
	// Save replaces the persisted index with idx.
	Save(ctx context.Context, idx model.ParticipantIndex) error

	// Load reads the persisted index.
	// Returns ErrNotFound if nothing has been persisted yet.
	Load(ctx context.Context) (model.ParticipantIndex, error)
}
