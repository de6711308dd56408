package accounting

import (
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/events"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/rs/zerolog"
)

const (
	defaultMaxCatchUpPeriods = 12
	defaultPublishTimeout    = 2 * time.Second
)

// Service is the accounting core. It is the only writer of ledger entries;
// everything else reads through it.
type Service struct {
	store          *store.Store
	publisher      events.Publisher
	publishTimeout time.Duration
	log            zerolog.Logger
	maxCatchUp     int
	now            func() time.Time
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithPublishTimeout bounds how long a posting waits on the event publisher
// after the ledger write has committed.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) { s.publishTimeout = d }
}

// WithMaxCatchUpPeriods caps how many unposted periods one schedule posts per
// run; older ones are reported as skipped. Zero removes the cap.
func WithMaxCatchUpPeriods(n int) Option {
	return func(s *Service) { s.maxCatchUp = n }
}

// WithClock overrides the source of "today" for defaulted dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:          st,
		publisher:      events.Nop{},
		publishTimeout: defaultPublishTimeout,
		log:            logger.WithComponent("accounting"),
		maxCatchUp:     defaultMaxCatchUpPeriods,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() ledger.Date {
	return ledger.DateOf(s.now().UTC())
}
