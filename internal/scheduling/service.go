package scheduling

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/weekplanner/internal/instrumentation"
	"github.com/teemow/weekplanner/internal/interval"
	"github.com/teemow/weekplanner/internal/logging"
	"github.com/teemow/weekplanner/internal/planner"
)

// Scheduler runs strategies against a planner and records the outcome.
type Scheduler struct {
	planner  *planner.Planner
	metrics  *instrumentation.Metrics
	logger   logging.Logger
	treeOpts []interval.TreeOption
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMetrics records search outcomes on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l logging.Logger) Option {
	return func(s *Scheduler) {
		if l == nil {
			l = logging.Discard()
		}
		s.logger = l
	}
}

// WithTreeOptions passes options to the work hours busy tree.
func WithTreeOptions(opts ...interval.TreeOption) Option {
	return func(s *Scheduler) { s.treeOpts = append(s.treeOpts, opts...) }
}

// NewScheduler returns a scheduler over p.
func NewScheduler(p *planner.Planner, opts ...Option) *Scheduler {
	s := &Scheduler{
		planner: p,
		logger:  logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) strategy(kind Kind) (Strategy, error) {
	switch kind {
	case KindWorkHours:
		return NewWorkHours(s.planner, s.treeOpts...), nil
	default:
		return New(kind, s.planner)
	}
}

// Find returns the earliest slot for req without touching any schedule.
func (s *Scheduler) Find(ctx context.Context, kind Kind, req Request) (planner.Event, error) {
	strat, err := s.strategy(kind)
	if err != nil {
		return planner.Event{}, err
	}

	ctx, span := instrumentation.StartSearchSpan(ctx, string(kind),
		instrumentation.NewSpanAttributeBuilder().
			WithEvent(req.Name).
			WithHost(req.Host()).
			WithRequest(req.Duration, len(req.Invitees)).
			Build()...)
	defer span.End()

	logger := s.logger.With(
		logging.KeyStrategy, string(kind),
		logging.KeyEvent, req.Name,
		logging.KeyMinutes, req.Duration,
	)

	started := time.Now()
	ev, err := strat.FindEvent(req)
	elapsed := time.Since(started)

	status := instrumentation.StatusSuccess
	switch {
	case errors.Is(err, ErrNoSlotFound):
		status = instrumentation.StatusNoSlot
		logger.Info("no slot found", logging.KeyInvitees, len(req.Invitees))
	case err != nil:
		status = instrumentation.StatusError
		logger.Warn("slot search failed", logging.KeyError, err.Error())
	default:
		logger.Debug("slot found", "start", ev.Start().String(), "end", ev.End().String())
		span.SetAttributes(
			attribute.String(instrumentation.SpanAttrSlotStart, ev.Start().String()),
			attribute.String(instrumentation.SpanAttrSlotEnd, ev.End().String()),
		)
	}

	if status == instrumentation.StatusSuccess {
		instrumentation.SetSpanSuccess(span)
	} else {
		instrumentation.SetSpanError(span, err)
	}
	s.metrics.RecordSlotSearchWithHost(ctx, string(kind), status, req.Host(), req.Duration, len(req.Invitees), elapsed)
	if kind == KindWorkHours {
		s.metrics.RecordBusyIntervals(ctx, s.countBusy(req.Invitees))
	}

	return ev, err
}

// Schedule finds a slot and adds the event to the host and every invitee
// that has room for it. It returns the event and the ids that received it.
func (s *Scheduler) Schedule(ctx context.Context, kind Kind, req Request) (planner.Event, []string, error) {
	ev, err := s.Find(ctx, kind, req)
	if err != nil {
		return planner.Event{}, nil, err
	}

	added, err := s.planner.AddEvent(req.Host(), ev)
	if err != nil {
		s.metrics.RecordPlannerOperation(ctx, instrumentation.OperationAddEvent, instrumentation.StatusError)
		return planner.Event{}, nil, err
	}
	s.metrics.RecordPlannerOperation(ctx, instrumentation.OperationAddEvent, instrumentation.StatusSuccess)

	s.logger.Info("event scheduled",
		logging.KeyStrategy, string(kind),
		logging.KeyEvent, ev.Name(),
		logging.KeyInvitees, len(added),
	)
	return ev, added, nil
}

func (s *Scheduler) countBusy(invitees []string) int {
	n := 0
	for _, id := range invitees {
		u, err := s.planner.User(id)
		if err != nil {
			continue
		}
		n += len(u.Events)
	}
	return n
}
