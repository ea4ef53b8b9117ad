package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
)

// Type names an event kind.
type Type string

// Event kinds emitted by the learner session.
const (
	TypeLessonCompleted Type = "lesson_completed"
	TypeUnitUnlocked    Type = "unit_unlocked"
	TypeItemPurchased   Type = "item_purchased"
	TypeHeartsDepleted  Type = "hearts_depleted"
	TypeStateChanged    Type = "state_changed"
)

// Event records something that happened to a learner.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type tells handlers how to decode Payload
	Type Type `json:"type"`

	// LearnerID is the learner whose state changed
	LearnerID uuid.UUID `json:"learner_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// LessonCompletedPayload accompanies TypeLessonCompleted.
type LessonCompletedPayload struct {
	LessonID     content.LessonID `json:"lesson_id"`
	XPGranted    int              `json:"xp_granted"`
	CoinsGranted int              `json:"coins_granted"`
}

// UnitUnlockedPayload accompanies TypeUnitUnlocked.
type UnitUnlockedPayload struct {
	UnitID content.UnitID `json:"unit_id"`
}

// ItemPurchasedPayload accompanies TypeItemPurchased.
type ItemPurchasedPayload struct {
	ItemID   economy.ItemID   `json:"item_id"`
	Category economy.Category `json:"category"`
	Price    int              `json:"price"`
}

// StateChangedPayload accompanies TypeStateChanged. Reason names the
// operation that produced the change.
type StateChangedPayload struct {
	Reason string `json:"reason"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// New creates an Event for learnerID with the given type and payload.
// A nil payload is encoded as an empty JSON object.
func New(learnerID uuid.UUID, eventType Type, payload any) (*Event, error) {
	if payload == nil {
		payload = struct{}{}
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		LearnerID: learnerID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Handler defines an interface for components that can handle events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter defines an interface for components that can emit events.
// This allows the session to publish events without direct knowledge of handlers.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements Emitter.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
