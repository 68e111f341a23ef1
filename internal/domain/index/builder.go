// Package index folds normalized facts into the participant index and
// derives the name resolution index from it.
package index

import (
	"context"
	"errors"
	"iter"

	"github.com/okian/crux/internal/domain/document"
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/normalize"
	"github.com/okian/crux/pkg/logger"
	"github.com/okian/crux/pkg/metrics"
)

// Builder folds competition documents into a ParticipantIndex.
type Builder struct {
	logger     logger.Logger
	normalizer *normalize.Normalizer
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLogger sets the diagnostic logger for the builder and its normalizer.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	b.normalizer = normalize.New(normalize.WithLogger(b.logger))
	return b
}

// Build folds every document of docs, in sequence order, into idx and
// returns it. Unusable documents are skipped.
func (b *Builder) Build(ctx context.Context, idx model.ParticipantIndex, docs iter.Seq2[string, []byte]) model.ParticipantIndex {
	if idx == nil {
		idx = make(model.ParticipantIndex)
	}
	for name, raw := range docs {
		idx = b.Fold(ctx, idx, name, raw)
	}
	metrics.UpdateParticipants(len(idx))
	return idx
}

// Fold parses one document and adds all of its facts to idx.
func (b *Builder) Fold(ctx context.Context, idx model.ParticipantIndex, name string, raw []byte) model.ParticipantIndex {
	if idx == nil {
		idx = make(model.ParticipantIndex)
	}
	doc, err := document.Parse(name, raw)
	if err != nil {
		reason := "unparseable"
		if errors.Is(err, document.ErrUnclassifiable) {
			reason = "unclassifiable"
		}
		metrics.RecordDocumentSkipped(reason)
		b.logger.Warn(ctx, "skipping competition document",
			logger.String("competition", name),
			logger.String("reason", reason),
			logger.Error(err),
		)
		return idx
	}

	b.logger.Debug(ctx, "reading competition", logger.String("competition", name))
	for fact := range b.normalizer.Facts(ctx, doc) {
		if fact.Record.PersonID == "" {
			b.logger.Warn(ctx, "skipping participant without PerId",
				logger.String("competition", name),
				logger.String("firstname", fact.Record.Firstname),
				logger.String("lastname", fact.Record.Lastname),
			)
			continue
		}
		idx = Add(idx, fact)
		metrics.RecordFact()
	}
	return idx
}

// Add folds a single fact. A new person id creates a participant from the
// fact; a known one only gains a history entry, identity fields untouched.
func Add(idx model.ParticipantIndex, f model.Fact) model.ParticipantIndex {
	if idx == nil {
		idx = make(model.ParticipantIndex)
	}
	ref := model.CompetitionReference{
		Name:       f.Competition,
		Rank:       f.Record.Rank,
		Discipline: f.Discipline,
	}
	if p, ok := idx[f.Record.PersonID]; ok {
		p.Competitions = append(p.Competitions, ref)
		return idx
	}
	idx[f.Record.PersonID] = &model.Participant{
		Firstname:    f.Record.Firstname,
		Lastname:     f.Record.Lastname,
		Gender:       f.Gender,
		PersonID:     f.Record.PersonID,
		Competitions: []model.CompetitionReference{ref},
	}
	return idx
}
