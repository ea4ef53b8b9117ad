package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/events"
	"github.com/phrazzld/medfluent/internal/platform/logger"
	"github.com/phrazzld/medfluent/internal/store"
)

// DefaultEventLimit caps Recent when no limit is given.
const DefaultEventLimit = 50

// EventLog appends learner events to the learner_events table. It is an
// events.Handler so it can be registered on the emitter next to the autosaver.
type EventLog struct {
	db       store.DBTX
	mapError ErrorMapper
	logger   *slog.Logger
}

var _ events.Handler = (*EventLog)(nil)

// NewEventLog creates an event log on db, which may be a connection or an
// open transaction. mapper may be nil for PostgreSQL.
func NewEventLog(db store.DBTX, mapper ErrorMapper, log *slog.Logger) *EventLog {
	if mapper == nil {
		mapper = MapError
	}
	if log == nil {
		log = slog.Default()
	}
	return &EventLog{db: db, mapError: mapper, logger: log.With(slog.String("component", "event_log"))}
}

// HandleEvent implements events.Handler.
func (l *EventLog) HandleEvent(ctx context.Context, event *events.Event) error {
	return l.Append(ctx, event)
}

// Append stores one event. Appending the same event id twice yields
// store.ErrDuplicate.
func (l *EventLog) Append(ctx context.Context, event *events.Event) error {
	payload := event.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO learner_events (id, learner_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID.String(), event.LearnerID.String(), string(event.Type), string(payload),
		event.CreatedAt.UnixMilli())
	if err != nil {
		logger.FromContextOrDefault(ctx, l.logger).Error("failed to append event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
		return store.NewStoreError("learner_event", "append", "insert failed", l.mapError(err))
	}
	return nil
}

// Recent returns the newest events of a learner, newest first.
func (l *EventLog) Recent(ctx context.Context, learnerID uuid.UUID, limit int) ([]*events.Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, learner_id, event_type, payload, created_at FROM learner_events
		WHERE learner_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		learnerID.String(), limit)
	if err != nil {
		return nil, store.NewStoreError("learner_event", "list", "query failed", l.mapError(err))
	}
	defer func() { _ = rows.Close() }()

	var out []*events.Event
	for rows.Next() {
		var (
			id, learner, eventType, payload string
			createdAt                       int64
		)
		if err := rows.Scan(&id, &learner, &eventType, &payload, &createdAt); err != nil {
			return nil, store.NewStoreError("learner_event", "list", "scan failed", l.mapError(err))
		}
		e := &events.Event{
			Type:      events.Type(eventType),
			Payload:   json.RawMessage(payload),
			CreatedAt: time.UnixMilli(createdAt).UTC(),
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid event id %q: %w", id, err)
		}
		if e.LearnerID, err = uuid.Parse(learner); err != nil {
			return nil, fmt.Errorf("invalid learner id %q: %w", learner, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learner_event", "list", "iteration failed", l.mapError(err))
	}
	return out, nil
}
