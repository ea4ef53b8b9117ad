package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/medfluent/internal/events"
	"github.com/phrazzld/medfluent/internal/platform/logger"
	"github.com/phrazzld/medfluent/internal/store"
)

// Autosaver persists the session after every committed change. Register it
// on the emitter the session publishes to.
type Autosaver struct {
	session *Session
	store   store.SnapshotStore
	logger  *slog.Logger

	mu      sync.Mutex
	version int64
}

// NewAutosaver creates an autosaver. version is the stored version the
// session was restored from, zero when nothing was stored.
func NewAutosaver(s *Session, st store.SnapshotStore, version int64, log *slog.Logger) *Autosaver {
	if log == nil {
		log = slog.Default()
	}
	return &Autosaver{
		session: s,
		store:   st,
		version: version,
		logger:  log.With(slog.String("component", "autosaver")),
	}
}

// HandleEvent implements events.Handler.
func (a *Autosaver) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.LearnerID != a.session.LearnerID() {
		return nil
	}
	return a.Flush(ctx)
}

// Flush writes the current state. A version conflict means another writer
// saved this learner in between; it is returned and nothing is retried.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, a.logger)

	snap := a.session.Snapshot()
	snap.Version = a.version
	saved, err := a.store.Save(ctx, snap)
	if err != nil {
		log.Error("failed to save learner state",
			slog.Int64("version", a.version),
			slog.String("error", err.Error()))
		return fmt.Errorf("autosave: %w", err)
	}
	a.version = saved.Version

	log.Debug("learner state saved", slog.Int64("version", saved.Version))
	return nil
}

// Version returns the last version written.
func (a *Autosaver) Version() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version
}
