package session

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/evaluate"
	"github.com/phrazzld/medfluent/internal/domain/progress"
	"github.com/phrazzld/medfluent/internal/domain/transaction"
	"github.com/phrazzld/medfluent/internal/events"
	"github.com/phrazzld/medfluent/internal/platform/logger"
)

// DefaultCoinRewardDivisor derives a lesson's coin reward from its XP reward.
const DefaultCoinRewardDivisor = 3

// Session serves one learner.
type Session struct {
	learnerID   uuid.UUID
	catalog     *content.Catalog
	evaluator   *evaluate.Evaluator
	emitter     events.Emitter
	coinDivisor int
	logger      *slog.Logger

	state atomic.Pointer[transaction.State]
}

// Options configures a Session. Catalog is required; the other fields fall
// back to defaults.
type Options struct {
	LearnerID         uuid.UUID
	Catalog           *content.Catalog
	Evaluator         *evaluate.Evaluator
	Emitter           events.Emitter
	CoinRewardDivisor int
	Logger            *slog.Logger
}

// New creates a session starting from initial.
func New(opts Options, initial transaction.State) *Session {
	if opts.Catalog == nil {
		panic("catalog cannot be nil")
	}
	if opts.Evaluator == nil {
		opts.Evaluator = evaluate.New()
	}
	if opts.Emitter == nil {
		opts.Emitter = events.NopEmitter{}
	}
	if opts.CoinRewardDivisor <= 0 {
		opts.CoinRewardDivisor = DefaultCoinRewardDivisor
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Session{
		learnerID:   opts.LearnerID,
		catalog:     opts.Catalog,
		evaluator:   opts.Evaluator,
		emitter:     opts.Emitter,
		coinDivisor: opts.CoinRewardDivisor,
		logger: opts.Logger.With(
			slog.String("component", "learner_session"),
			slog.String("learner_id", opts.LearnerID.String()),
		),
	}
	s.state.Store(&initial)
	return s
}

// LearnerID returns the learner this session serves.
func (s *Session) LearnerID() uuid.UUID {
	return s.learnerID
}

// Catalog returns the content catalog.
func (s *Session) Catalog() *content.Catalog {
	return s.catalog
}

// State returns the current state as one consistent value.
func (s *Session) State() transaction.State {
	return *s.state.Load()
}

// Wallet returns the current wallet.
func (s *Session) Wallet() economy.Wallet {
	return s.State().Wallet
}

// Goals returns the current daily goals.
func (s *Session) Goals() progress.DailyGoals {
	return s.State().Ledger.Goals()
}

// Inventory returns the current inventory.
func (s *Session) Inventory() economy.Inventory {
	return s.State().Inventory
}

// ShopItems returns the shop with the learner's ownership flags.
func (s *Session) ShopItems() []economy.ShopItem {
	return s.State().Shop.Items()
}

// commit publishes next if the state is still prev. It never retries: a
// lost race means the caller computed next from a stale state.
func (s *Session) commit(ctx context.Context, prev *transaction.State, next transaction.State) error {
	if !s.state.CompareAndSwap(prev, &next) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("state changed during transaction")
		return domain.ErrConcurrentModification
	}
	return nil
}

// emit publishes an event. Failures are logged, not returned: the state
// change they describe is already committed.
func (s *Session) emit(ctx context.Context, t events.Type, payload any) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.New(s.learnerID, t, payload)
	if err != nil {
		log.Error("failed to build event", slog.String("event_type", string(t)), slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", string(t)),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}
