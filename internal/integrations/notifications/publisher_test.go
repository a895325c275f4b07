package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testBooking() *domain.Booking {
	staffID := int64(7)
	return &domain.Booking{
		ID:            42,
		BusinessID:    1,
		ServiceID:     10,
		StaffID:       &staffID,
		CustomerName:  "Ivan",
		CustomerEmail: "ivan@example.com",
		BookingDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		PartySize:     2,
		Status:        domain.StatusPending,
	}
}

func TestPublish(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, time.Second, logger.NewNop())
	occurred := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return occurred }

	err := p.Publish(context.Background(), EventBookingCreated, testBooking())
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, HeaderEventID, msg.Headers[0].Key)
	assert.Equal(t, HeaderEventType, msg.Headers[1].Key)
	assert.Equal(t, EventBookingCreated, string(msg.Headers[1].Value))

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, string(msg.Headers[0].Value), event.ID)
	_, err = uuid.Parse(event.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventBookingCreated, event.Type)
	assert.True(t, occurred.Equal(event.OccurredAt))
	assert.Equal(t, "2025-06-02", event.Booking.BookingDate)
	assert.Equal(t, "10:00", event.Booking.StartTime)
	assert.Equal(t, int64(7), *event.Booking.StaffID)
	assert.Equal(t, "pending", event.Booking.Status)
}

func TestPublish_UniqueEventIDs(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, time.Second, logger.NewNop())

	require.NoError(t, p.Publish(context.Background(), EventBookingCreated, testBooking()))
	require.NoError(t, p.Publish(context.Background(), EventBookingCancelled, testBooking()))

	require.Len(t, writer.messages, 2)
	assert.NotEqual(t, writer.messages[0].Headers[0].Value, writer.messages[1].Headers[0].Value)
}

func TestPublish_WriterError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	p := NewPublisherWithWriter(writer, 0, logger.NewNop())

	err := p.Publish(context.Background(), EventBookingCancelled, testBooking())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestClose(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, time.Second, logger.NewNop())

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.ErrorIs(t, p.Publish(context.Background(), EventBookingCreated, testBooking()), ErrDisabled)
	assert.NoError(t, p.Close())
}
