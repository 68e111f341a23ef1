// Package normalize turns competition documents of either shape into a
// uniform sequence of participant-competition facts.
package normalize

import (
	"context"
	"iter"

	"github.com/okian/crux/internal/domain/classify"
	"github.com/okian/crux/internal/domain/document"
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/types"
	"github.com/okian/crux/pkg/logger"
	"github.com/okian/crux/pkg/metrics"
)

// Normalizer emits facts and reports classification diagnostics.
type Normalizer struct {
	logger logger.Logger
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{logger: logger.Nop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Facts returns a lazy sequence of facts for doc. Classification runs as
// the sequence is consumed.
func (n *Normalizer) Facts(ctx context.Context, doc document.CompetitionDocument) iter.Seq[model.Fact] {
	switch d := doc.(type) {
	case *document.Standard:
		return n.standard(ctx, d)
	case *document.Compound:
		return n.compound(ctx, d)
	default:
		return func(func(model.Fact) bool) {}
	}
}

func (n *Normalizer) standard(ctx context.Context, doc *document.Standard) iter.Seq[model.Fact] {
	return func(yield func(model.Fact) bool) {
		discipline := n.discipline(ctx, doc.Name(), doc.Discipline)
		fallback := classify.CategoryGender(doc.CategoryName)
		metrics.RecordDocument("standard")

		for _, rec := range doc.Participants {
			gender := classify.ResultKeyGender(rec.ResultKey, fallback)
			if !gender.Known() {
				n.unknownGender(ctx, doc.Name(), rec)
			}
			if !yield(model.Fact{Record: rec, Gender: gender, Competition: doc.Name(), Discipline: discipline}) {
				return
			}
		}
	}
}

// compound participants take the category's gender as-is.
func (n *Normalizer) compound(ctx context.Context, doc *document.Compound) iter.Seq[model.Fact] {
	return func(yield func(model.Fact) bool) {
		metrics.RecordDocument("compound")

		for _, cat := range doc.Categories {
			discipline := n.discipline(ctx, doc.Name(), cat.Name)
			gender := classify.ResultKeyGender(cat.ResultKey, types.Unknown)
			if !gender.Known() && len(cat.Results) > 0 {
				metrics.RecordGenderUnresolved()
				n.logger.Warn(ctx, "unknown gender for category",
					logger.String("competition", doc.Name()),
					logger.String("category", cat.Name),
				)
			}
			for _, rec := range cat.Results {
				if !yield(model.Fact{Record: rec, Gender: gender, Competition: doc.Name(), Discipline: discipline}) {
					return
				}
			}
		}
	}
}

func (n *Normalizer) discipline(ctx context.Context, competition, label string) types.Discipline {
	d, ok := classify.Discipline(label)
	if !ok {
		metrics.RecordDisciplineDefaulted()
		n.logger.Warn(ctx, "unknown discipline, defaulting",
			logger.String("competition", competition),
			logger.String("label", label),
			logger.String("discipline", d.String()),
		)
	}
	return d
}

func (n *Normalizer) unknownGender(ctx context.Context, competition string, rec model.Record) {
	metrics.RecordGenderUnresolved()
	n.logger.Warn(ctx, "unknown gender",
		logger.String("competition", competition),
		logger.String("person_id", rec.PersonID),
		logger.String("rkey", rec.ResultKey),
	)
}
