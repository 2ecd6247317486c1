// internal/directory/service.go
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mergington-activities/internal/common/events"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

const tracerName = "mergington-activities/directory"

// Publisher delivers roster change events.
type Publisher interface {
	Publish(ctx context.Context, event models.RosterEvent) error
}

type Service struct {
	directory *Directory
	publisher Publisher
	logger    logger.Logger
	tracer    trace.Tracer
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wraps dir with logging, metrics, tracing and event publishing.
// Without WithPublisher, events are dropped.
func NewService(dir *Directory, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		directory: dir,
		publisher: events.NopPublisher{},
		logger:    log.With(map[string]interface{}{"component": "directory"}),
		tracer:    otel.Tracer(tracerName),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, e := range dir.List() {
		metrics.ActivityParticipants.WithLabelValues(e.Name).Set(float64(len(e.Activity.Participants)))
	}
	return s
}

// ListActivities returns a snapshot of every activity in catalog order.
func (s *Service) ListActivities(ctx context.Context) models.Catalog {
	_, span := s.tracer.Start(ctx, "directory.list")
	defer span.End()

	catalog := s.directory.List()
	span.SetAttributes(attribute.Int("activity.count", len(catalog)))
	return catalog
}

// GetActivity returns a snapshot of a single activity.
func (s *Service) GetActivity(ctx context.Context, name string) (models.Activity, error) {
	_, span := s.tracer.Start(ctx, "directory.get",
		trace.WithAttributes(attribute.String("activity.name", name)))
	defer span.End()

	activity, err := s.directory.Get(name)
	if err != nil {
		s.fail(span, "activity lookup failed", name, err)
		return models.Activity{}, err
	}
	span.SetAttributes(attribute.Int("activity.participants", len(activity.Participants)))
	return activity, nil
}

// Signup enrolls email in activity and returns the confirmation message.
func (s *Service) Signup(ctx context.Context, activity, email string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "directory.signup",
		trace.WithAttributes(attribute.String("activity.name", activity)))
	defer span.End()

	updated, err := s.directory.Signup(activity, email)
	if err != nil {
		s.fail(span, "signup rejected", activity, err)
		return "", err
	}

	metrics.ActivitySignups.WithLabelValues(activity).Inc()
	metrics.ActivityParticipants.WithLabelValues(activity).Set(float64(len(updated.Participants)))
	s.logger.Info("participant signed up", map[string]interface{}{
		"activity":     activity,
		"email":        email,
		"participants": len(updated.Participants),
		"capacity":     updated.MaxParticipants,
	})

	s.publish(ctx, models.RosterEventSignedUp, activity, email, updated)
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from activity and returns the confirmation message.
func (s *Service) Unregister(ctx context.Context, activity, email string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "directory.unregister",
		trace.WithAttributes(attribute.String("activity.name", activity)))
	defer span.End()

	updated, err := s.directory.Unregister(activity, email)
	if err != nil {
		s.fail(span, "unregister rejected", activity, err)
		return "", err
	}

	metrics.ActivityUnregistrations.WithLabelValues(activity).Inc()
	metrics.ActivityParticipants.WithLabelValues(activity).Set(float64(len(updated.Participants)))
	s.logger.Info("participant unregistered", map[string]interface{}{
		"activity":     activity,
		"email":        email,
		"participants": len(updated.Participants),
	})

	s.publish(ctx, models.RosterEventUnregistered, activity, email, updated)
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func (s *Service) fail(span trace.Span, msg, activity string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.Debug(msg, map[string]interface{}{
		"activity": activity,
		"error":    err.Error(),
	})
}

// publish is best effort: a failed delivery is logged and counted but the
// roster change stands.
func (s *Service) publish(ctx context.Context, typ models.RosterEventType, activity, email string, updated models.Activity) {
	event := models.RosterEvent{
		ID:              s.newID(),
		Type:            typ,
		Activity:        activity,
		Email:           email,
		Participants:    len(updated.Participants),
		MaxParticipants: updated.MaxParticipants,
		OccurredAt:      s.now(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.RosterEventsPublished.WithLabelValues(string(typ), "error").Inc()
		s.logger.Warn("failed to publish roster event", map[string]interface{}{
			"eventId":  event.ID,
			"type":     string(typ),
			"activity": activity,
			"error":    err.Error(),
		})
		return
	}
	metrics.RosterEventsPublished.WithLabelValues(string(typ), "ok").Inc()
}
