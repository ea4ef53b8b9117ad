package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	learner := uuid.New()
	payload := ItemPurchasedPayload{ItemID: "rainbow_cap", Category: "caps", Price: 150}

	event, err := New(learner, TypeItemPurchased, payload)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, learner, event.LearnerID)
	assert.Equal(t, TypeItemPurchased, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded ItemPurchasedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewNilPayload(t *testing.T) {
	event, err := New(uuid.New(), TypeHeartsDepleted, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(event.Payload))
}

func TestNewUnencodablePayload(t *testing.T) {
	_, err := New(uuid.New(), TypeStateChanged, make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the Handler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the Handler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}
