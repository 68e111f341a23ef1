// Package service provides the batch operations behind the crux CLI:
// fetching competition documents, building the participant index and
// answering cross-reference queries.
package service

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/crux/internal/adapters/fetch"
	"github.com/okian/crux/internal/adapters/report"
	"github.com/okian/crux/internal/adapters/repository"
	"github.com/okian/crux/internal/adapters/source"
	"github.com/okian/crux/internal/config"
	"github.com/okian/crux/internal/domain/crossref"
	"github.com/okian/crux/internal/domain/index"
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/pkg/logger"
	"github.com/okian/crux/pkg/metrics"
)

// DocumentSource enumerates and stores competition documents.
type DocumentSource interface {
	Documents(ctx context.Context) (iter.Seq2[string, []byte], error)
	fetch.Store
}

// Fetcher retrieves competition documents into a store.
type Fetcher interface {
	Fetch(ctx context.Context, calendarURL string, store fetch.Store) (fetch.Summary, error)
}

// ReportWriter renders query results.
type ReportWriter interface {
	Write(ctx context.Context, results []*crossref.Result) ([]string, error)
}

// QueryResult is the outcome of one cross-reference query.
type QueryResult struct {
	Results     []*crossref.Result
	Missing     []string
	Suggestions map[string][]string
}

// Service wires the adapters to the domain.
type Service struct {
	source  DocumentSource
	store   repository.Store
	fetcher Fetcher
	reports ReportWriter

	cfg             *config.Config
	calendarURL     string
	suggestDistance int

	runID  string
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the competition document source.
func WithSource(src DocumentSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore sets the participant index store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFetcher sets the document fetcher.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithReportWriter sets the report writer.
func WithReportWriter(w ReportWriter) Option {
	return func(s *Service) {
		if w != nil {
			s.reports = w
		}
	}
}

// WithCalendarURL sets the page listing competitions to fetch.
func WithCalendarURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.calendarURL = url
		}
	}
}

// WithSuggestDistance sets the maximum edit distance for name hints.
func WithSuggestDistance(d int) Option {
	return func(s *Service) {
		if d >= 0 {
			s.suggestDistance = d
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithConfig sets the configuration the default adapters are built from.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// New constructs a Service. Adapters not set by options are built from
// the configuration (config.New() unless WithConfig is given) and share
// the run-bound logger.
func New(opts ...Option) *Service {
	s := &Service{
		suggestDistance: -1,
		runID:           uuid.NewString(),
	}

	for _, opt := range opts {
		opt(s)
	}

	cfg := s.cfg
	if cfg == nil {
		cfg = config.New()
	}
	if s.calendarURL == "" {
		s.calendarURL = cfg.CalendarURL
	}
	if s.suggestDistance < 0 {
		s.suggestDistance = cfg.SuggestDistance
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))

	if s.source == nil {
		s.source = source.NewDir(cfg.CompetitionsDir, source.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = repository.NewFileStore(cfg.IndexPath())
	}
	if s.fetcher == nil {
		s.fetcher = fetch.New(cfg.JSONURL,
			fetch.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
			fetch.WithRateLimit(cfg.FetchRatePerSec, cfg.FetchBurst),
			fetch.WithLogger(s.logger),
		)
	}
	if s.reports == nil {
		s.reports = report.NewWriter(cfg.ReportDir, report.WithLogger(s.logger))
	}
	return s
}

// NewFromConfig builds a Service with every adapter configured from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) *Service {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// RunID returns the identifier bound to every log line of this service.
func (s *Service) RunID() string { return s.runID }

// Fetch retrieves every competition document linked from the calendar.
func (s *Service) Fetch(ctx context.Context) (fetch.Summary, error) {
	sum, err := s.fetcher.Fetch(ctx, s.calendarURL, s.source)
	if err != nil {
		return sum, fmt.Errorf("fetch competitions: %w", err)
	}
	s.logger.Info(ctx, "fetch finished",
		logger.Int("links", sum.Links),
		logger.Int("fetched", sum.Fetched),
		logger.Int("existing", sum.Existing),
		logger.Int("failed", sum.Failed),
	)
	return sum, nil
}

// BuildIndex folds every stored document into a fresh index and persists it.
func (s *Service) BuildIndex(ctx context.Context) (model.ParticipantIndex, error) {
	start := time.Now()

	docs, err := s.source.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate competitions: %w", err)
	}

	builder := index.NewBuilder(index.WithLogger(s.logger))
	idx := builder.Build(ctx, make(model.ParticipantIndex), docs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, idx); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordBuildDuration(elapsed.Seconds())
	s.logger.Info(ctx, "participant index built",
		logger.Int("participants", len(idx)),
		logger.Float64("seconds", elapsed.Seconds()),
	)
	return idx, nil
}

// Query loads the persisted index and aggregates the footprint of names.
// Names absent from the index are reported in Missing with suggestions.
func (s *Service) Query(ctx context.Context, names []string) (*QueryResult, error) {
	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	nameIndex := index.Names(idx)

	found, missing := crossref.Resolved(names, nameIndex)
	for range found {
		metrics.RecordQueryName(true)
	}
	for range missing {
		metrics.RecordQueryName(false)
	}

	res := &QueryResult{
		Results:     crossref.Aggregate(names, nameIndex, idx),
		Missing:     missing,
		Suggestions: make(map[string][]string),
	}
	for _, name := range missing {
		if hints := index.Suggest(nameIndex, name, s.suggestDistance); len(hints) > 0 {
			res.Suggestions[name] = hints
		}
	}
	return res, nil
}

// Report writes the per-discipline matrices for a query result.
func (s *Service) Report(ctx context.Context, res *QueryResult) ([]string, error) {
	paths, err := s.reports.Write(ctx, res.Results)
	if err != nil {
		return paths, fmt.Errorf("write reports: %w", err)
	}
	return paths, nil
}
