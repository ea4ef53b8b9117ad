package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/api"
	"github.com/phrazzld/medfluent/internal/catalog"
	"github.com/phrazzld/medfluent/internal/config"
	"github.com/phrazzld/medfluent/internal/domain/evaluate"
	"github.com/phrazzld/medfluent/internal/domain/progress"
	"github.com/phrazzld/medfluent/internal/events"
	"github.com/phrazzld/medfluent/internal/service/session"
	goredis "github.com/redis/go-redis/v9"
)

// defaultLearnerName seeds the learner id used when none is configured.
const defaultLearnerName = "medfluent:default-learner"

// application holds the shared dependencies and releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	cache *goredis.Client

	session   *session.Session
	autosaver *session.Autosaver
	history   api.EventHistory
}

// newApplication loads the course, restores the learner and wires the
// session to persistence.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	bundle, err := loadCourse(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Info("Course loaded",
		"units", len(bundle.Catalog.Units()),
		"shop_items", len(bundle.Shop.Items()))

	learnerID, err := resolveLearnerID(cfg.Learner)
	if err != nil {
		return nil, err
	}

	st, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	app.db = st.db

	snapshots, cache, err := withCache(ctx, cfg.Cache, st.snapshots, logger)
	if err != nil {
		app.cleanup(ctx)
		return nil, err
	}
	app.cache = cache

	profile := profileFromConfig(cfg.Economy)
	profile.StarterItems = bundle.StarterItems

	state, version, err := session.Restore(ctx, snapshots, learnerID, bundle.Catalog, bundle.Shop, profile)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to restore learner state: %w", err)
	}
	logger.Info("Learner restored",
		"learner_id", learnerID.String(),
		"version", version,
		"xp", state.Wallet.XP,
		"coins", state.Wallet.Coins)

	var evalOpts []evaluate.Option
	if cfg.Evaluation.IgnoreDiacritics {
		evalOpts = append(evalOpts, evaluate.WithDiacriticInsensitive())
	}

	emitter := events.NewInMemoryEmitter(logger)
	app.session = session.New(session.Options{
		LearnerID:         learnerID,
		Catalog:           bundle.Catalog,
		Evaluator:         evaluate.New(evalOpts...),
		Emitter:           emitter,
		CoinRewardDivisor: cfg.Economy.CoinRewardDivisor,
		Logger:            logger,
	}, state)

	app.autosaver = session.NewAutosaver(app.session, snapshots, version, logger)
	emitter.RegisterHandler(app.autosaver)
	if st.events != nil {
		emitter.RegisterHandler(st.events)
		app.history = st.events
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves the HTTP API until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.router())
}

func (app *application) router() http.Handler {
	h := api.NewLearnerHandler(app.session, app.history, app.logger)
	return api.NewRouter(h, app.logger)
}

// cleanup writes the final learner state and closes connections.
func (app *application) cleanup(ctx context.Context) {
	if app.autosaver != nil {
		if err := app.autosaver.Flush(ctx); err != nil {
			app.logger.Error("Final save failed", "error", err)
		}
	}
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing cache connection", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}

func loadCourse(cfg config.CatalogConfig) (*catalog.Bundle, error) {
	if cfg.Path == "" {
		bundle, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in course: %w", err)
		}
		return bundle, nil
	}
	bundle, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load course %s: %w", cfg.Path, err)
	}
	return bundle, nil
}

func resolveLearnerID(cfg config.LearnerConfig) (uuid.UUID, error) {
	if cfg.ID == "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(defaultLearnerName)), nil
	}
	id, err := uuid.Parse(cfg.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid learner id: %w", err)
	}
	return id, nil
}

func profileFromConfig(cfg config.EconomyConfig) session.Profile {
	p := session.DefaultProfile()
	p.MaxHearts = cfg.MaxHearts
	p.StartingHearts = cfg.StartingHearts
	p.StartingCoins = cfg.StartingCoins
	p.Goals = progress.DailyGoals{
		XP:       progress.NewGoal(0, cfg.DailyXPTarget),
		Lessons:  progress.NewGoal(0, cfg.DailyLessonsTarget),
		Speaking: progress.NewGoal(0, cfg.DailySpeakingTarget),
	}
	return p
}
