package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ErrRateLimited is returned when a client submits too often.
var ErrRateLimited = errors.New("leads: rate limited")

// Recorder receives one observation per submission attempt.
type Recorder interface {
	LeadSubmitted(kind, outcome string)
}

// Outcomes passed to Recorder.
const (
	OutcomeSaved       = "saved"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

// Service validates and stores leads.
type Service struct {
	store    Store
	limiter  Limiter
	recorder Recorder
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLimiter rate limits Submit by client key.
func WithLimiter(l Limiter) Option { return func(s *Service) { s.limiter = l } }

// WithRecorder reports submission outcomes.
func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option { return func(s *Service) { s.clock = clock } }

// NewService returns a Service saving to store. A nil store keeps leads in memory.
func NewService(store Store, opts ...Option) *Service {
	if store == nil {
		store = NewMemoryStore(0)
	}
	s := &Service{
		store:  store,
		logger: zap.NewNop(),
		clock:  time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() Store { return s.store }

// Submit validates f, assigns an id and timestamp, and saves it. clientKey
// identifies the submitter for rate limiting; only valid forms are counted.
func (s *Service) Submit(ctx context.Context, clientKey string, f Form) (Lead, error) {
	f = f.Normalize()
	kind := string(f.Kind)

	// incomplete forms do not spend the client's budget
	if err := f.Validate(); err != nil {
		s.observe(kind, OutcomeInvalid)
		return Lead{}, err
	}
	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		s.observe(kind, OutcomeRateLimited)
		return Lead{}, ErrRateLimited
	}

	lead := Lead{
		ID:        s.newID(),
		CreatedAt: s.clock().UTC(),
		Form:      f,
	}
	if err := s.store.Save(ctx, lead); err != nil {
		s.observe(kind, OutcomeError)
		s.logger.Error("save lead failed", zap.String("kind", kind), zap.Error(err))
		return Lead{}, fmt.Errorf("save lead: %w", err)
	}
	s.observe(kind, OutcomeSaved)
	s.logger.Info("lead saved",
		zap.String("lead_id", lead.ID),
		zap.String("kind", kind),
		zap.String("interest", lead.InterestedIn),
		zap.Int("add_ons", len(lead.AddOns)),
	)
	return lead, nil
}

func (s *Service) observe(kind, outcome string) {
	if s.recorder != nil {
		s.recorder.LeadSubmitted(kind, outcome)
	}
}
