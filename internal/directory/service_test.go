// internal/directory/service_test.go
package directory

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/events"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

const testChannel = "activities.roster"

var fixedTime = time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)

type serviceFixture struct {
	service  *Service
	mock     redismock.ClientMock
	recorder *tracetest.SpanRecorder
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = db.Close() })

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	svc := NewService(newSeededDirectory(t), logger.NewTestLogger(t),
		WithPublisher(events.NewRedisPublisher(db, testChannel)),
		WithTracer(tp.Tracer("test")),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "evt-1" }),
	)

	return &serviceFixture{service: svc, mock: mock, recorder: recorder}
}

func expectedPayload(t *testing.T, event models.RosterEvent) string {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return string(data)
}

func spanNamed(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range recorder.Ended() {
		if span.Name() == name {
			return span
		}
	}
	t.Fatalf("span %q not recorded", name)
	return nil
}

func TestService_ListActivities(t *testing.T) {
	f := newServiceFixture(t)

	catalog := f.service.ListActivities(context.Background())
	assert.Len(t, catalog, 9)

	span := spanNamed(t, f.recorder, "directory.list")
	assert.Contains(t, span.Attributes(), attribute.Int("activity.count", 9))
}

func TestService_GetActivity(t *testing.T) {
	f := newServiceFixture(t)

	chess, err := f.service.GetActivity(context.Background(), "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Contains(t, spanNamed(t, f.recorder, "directory.get").Attributes(),
		attribute.Int("activity.participants", 2))

	_, err = f.service.GetActivity(context.Background(), "Nonexistent Activity")
	assert.True(t, stderrors.Is(err, apperrors.ErrActivityNotFound))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestService_Signup_PublishesEvent(t *testing.T) {
	f := newServiceFixture(t)

	f.mock.ExpectPublish(testChannel, expectedPayload(t, models.RosterEvent{
		ID:              "evt-1",
		Type:            models.RosterEventSignedUp,
		Activity:        "Chess Club",
		Email:           "testuser@mergington.edu",
		Participants:    3,
		MaxParticipants: 12,
		OccurredAt:      fixedTime,
	})).SetVal(1)

	signupsBefore := testutil.ToFloat64(metrics.ActivitySignups.WithLabelValues("Chess Club"))
	publishedBefore := testutil.ToFloat64(metrics.RosterEventsPublished.WithLabelValues(string(models.RosterEventSignedUp), "ok"))

	msg, err := f.service.Signup(context.Background(), "Chess Club", "testuser@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Signed up testuser@mergington.edu for Chess Club", msg)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	assert.Equal(t, signupsBefore+1, testutil.ToFloat64(metrics.ActivitySignups.WithLabelValues("Chess Club")))
	assert.Equal(t, publishedBefore+1, testutil.ToFloat64(metrics.RosterEventsPublished.WithLabelValues(string(models.RosterEventSignedUp), "ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ActivityParticipants.WithLabelValues("Chess Club")))

	span := spanNamed(t, f.recorder, "directory.signup")
	assert.Contains(t, span.Attributes(), attribute.String("activity.name", "Chess Club"))
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestService_Signup_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newServiceFixture(t)

	f.mock.ExpectPublish(testChannel, expectedPayload(t, models.RosterEvent{
		ID:              "evt-1",
		Type:            models.RosterEventSignedUp,
		Activity:        "Math Club",
		Email:           "testuser@mergington.edu",
		Participants:    3,
		MaxParticipants: 10,
		OccurredAt:      fixedTime,
	})).SetErr(stderrors.New("connection refused"))

	failedBefore := testutil.ToFloat64(metrics.RosterEventsPublished.WithLabelValues(string(models.RosterEventSignedUp), "error"))

	msg, err := f.service.Signup(context.Background(), "Math Club", "testuser@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Signed up testuser@mergington.edu for Math Club", msg)
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.RosterEventsPublished.WithLabelValues(string(models.RosterEventSignedUp), "error")))

	activity, err := f.service.directory.Get("Math Club")
	require.NoError(t, err)
	assert.Contains(t, activity.Participants, "testuser@mergington.edu")
}

func TestService_Signup_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		email    string
		want     error
	}{
		{"already enrolled", "Programming Class", "emma@mergington.edu", apperrors.ErrAlreadyEnrolled},
		{"unknown activity", "Underwater Basket Weaving", "testuser@mergington.edu", apperrors.ErrActivityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.service.Signup(context.Background(), tt.activity, tt.email)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.want))

			// no event for a rejected signup
			assert.NoError(t, f.mock.ExpectationsWereMet())

			span := spanNamed(t, f.recorder, "directory.signup")
			assert.Equal(t, codes.Error, span.Status().Code)
			assert.NotEmpty(t, span.Events())
		})
	}
}

func TestService_Unregister(t *testing.T) {
	f := newServiceFixture(t)

	f.mock.ExpectPublish(testChannel, expectedPayload(t, models.RosterEvent{
		ID:              "evt-1",
		Type:            models.RosterEventUnregistered,
		Activity:        "Chess Club",
		Email:           "michael@mergington.edu",
		Participants:    1,
		MaxParticipants: 12,
		OccurredAt:      fixedTime,
	})).SetVal(0)

	before := testutil.ToFloat64(metrics.ActivityUnregistrations.WithLabelValues("Chess Club"))

	msg, err := f.service.Unregister(context.Background(), "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", msg)
	assert.NoError(t, f.mock.ExpectationsWereMet())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ActivityUnregistrations.WithLabelValues("Chess Club")))

	_, err = f.service.Unregister(context.Background(), "Chess Club", "michael@mergington.edu")
	assert.True(t, stderrors.Is(err, apperrors.ErrParticipantNotFound))
}

func TestService_DefaultsDropEvents(t *testing.T) {
	dir, err := New(smallCatalog(2))
	require.NoError(t, err)
	svc := NewService(dir, logger.NewNoOpLogger())

	msg, err := svc.Signup(context.Background(), "Robotics", "a@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Signed up a@mergington.edu for Robotics", msg)

	_, err = svc.Unregister(context.Background(), "Robotics", "a@mergington.edu")
	require.NoError(t, err)
}
