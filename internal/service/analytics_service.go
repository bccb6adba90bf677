package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/monitoring"
)

// Canonical event names - the only events the collector accepts
const (
	EventPageView    = "page_view"
	EventViewContent = "view_content"
	EventClickCTA    = "click_cta"
	EventSubmitForm  = "submit_form"
	EventSignUp      = "sign_up"
)

var knownEvents = map[string]bool{
	EventPageView:    true,
	EventViewContent: true,
	EventClickCTA:    true,
	EventSubmitForm:  true,
	EventSignUp:      true,
}

// KnownEvent reports whether name is in the event taxonomy
func KnownEvent(name string) bool {
	return knownEvents[name]
}

// Destination receives analytics events. Destinations must tolerate
// being called concurrently.
type Destination interface {
	Name() string
	Track(ctx context.Context, event string, params map[string]interface{}) error
}

// AnalyticsService fans events out to every registered destination.
// Delivery is fire-and-report: a failing destination is logged and
// counted but never fails the event submission.
type AnalyticsService struct {
	destinations []Destination
	registered   map[string]bool
	metrics      *monitoring.Metrics
	logger       *logging.Logger
}

// NewAnalyticsService creates an event dispatcher with no destinations
func NewAnalyticsService(metrics *monitoring.Metrics, logger *logging.Logger) *AnalyticsService {
	return &AnalyticsService{
		registered: make(map[string]bool),
		metrics:    metrics,
		logger:     logger,
	}
}

// Register adds a destination. Duplicate names are ignored. Not safe
// for use after Track has been called from other goroutines; register
// everything during startup.
func (s *AnalyticsService) Register(d Destination) {
	if s.registered[d.Name()] {
		return
	}
	s.registered[d.Name()] = true
	s.destinations = append(s.destinations, d)
	s.logger.Info("Registered analytics destination: %s", d.Name())
}

// Track delivers one event to every destination and waits for all
// deliveries to settle before returning
func (s *AnalyticsService) Track(ctx context.Context, event string, params map[string]interface{}) {
	g, ctx := errgroup.WithContext(ctx)

	for _, d := range s.destinations {
		d := d
		g.Go(func() error {
			if err := d.Track(ctx, event, params); err != nil {
				s.metrics.AnalyticsEventsTotal.WithLabelValues(d.Name(), "failed").Inc()
				s.logger.Error("Analytics destination %s failed for event %s: %v", d.Name(), event, err)
				return nil
			}
			s.metrics.AnalyticsEventsTotal.WithLabelValues(d.Name(), "forwarded").Inc()
			return nil
		})
	}

	// Destination errors are swallowed above, so Wait only synchronizes
	g.Wait()
}
