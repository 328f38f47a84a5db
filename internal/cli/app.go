package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/signdeck/internal/catalog"
	"github.com/phrazzld/signdeck/internal/config"
	"github.com/phrazzld/signdeck/internal/domain/quiz"
	"github.com/phrazzld/signdeck/internal/domain/srs"
	"github.com/phrazzld/signdeck/internal/events"
	"github.com/phrazzld/signdeck/internal/platform/memkv"
	"github.com/phrazzld/signdeck/internal/platform/objectstore"
	"github.com/phrazzld/signdeck/internal/platform/postgres"
	"github.com/phrazzld/signdeck/internal/platform/sqlite"
	"github.com/phrazzld/signdeck/internal/service/auth"
	"github.com/phrazzld/signdeck/internal/service/memory"
	"github.com/phrazzld/signdeck/internal/store"
)

// application holds the shared dependencies of every command and releases
// them on close.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv         store.KVStore
	engine     *memory.Service
	catalog    *catalog.Catalog
	jwtService auth.JWTService
}

// newApplication opens the configured storage backend and builds the
// memory engine on top of it. catalogPath overrides cfg.Catalog.Path when
// non-empty.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, catalogPath string) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.kv, err = openKVStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	srsService, err := srs.NewServiceWithParams(&srs.Params{
		Demotion:  cfg.Scoring.Demotion,
		Promotion: cfg.Scoring.Promotion,
	})
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to initialize scoring service: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))

	app.engine = memory.NewService(
		store.NewScoreRepository(app.kv, logger),
		srsService,
		logger,
		memory.WithEmitter(emitter),
		memory.WithScoreKey(cfg.Storage.ScoreKey),
		memory.WithQuizRegistry(quiz.NewRegistry(cfg.Session.QuizRegistrySize)),
	)

	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}
	if catalogPath != "" {
		app.catalog, err = catalog.LoadFile(catalogPath)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		logger.Info("catalog loaded",
			slog.String("path", catalogPath),
			slog.Int("items", app.catalog.Len()))
	}

	if cfg.Auth.JWTSecret != "" {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Debug("learner authentication enabled",
			slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	}

	return app, nil
}

// openKVStore connects to the backend named by cfg.Backend. The postgres
// backend is migrated to the latest schema before use.
func openKVStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.KVStore, error) {
	logger.Debug("opening storage backend", slog.String("backend", cfg.Backend))

	switch cfg.Backend {
	case config.BackendMemory:
		return memkv.New(), nil

	case config.BackendSQLite:
		kv, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return kv, nil

	case config.BackendPostgres:
		kv, err := postgres.Open(ctx, cfg.PostgresURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		if err := postgres.Migrate(ctx, kv.DB(), "up", logger); err != nil {
			_ = kv.Close()
			return nil, err
		}
		return kv, nil

	case config.BackendMinio:
		kv, err := objectstore.Open(ctx, objectstore.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open object store: %w", err)
		}
		return kv, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// engineFor returns the engine scoped to learnerID, or the default engine
// when learnerID is empty.
func (app *application) engineFor(learnerID string) *memory.Service {
	if learnerID == "" {
		return app.engine
	}
	return app.engine.ForLearner(learnerID)
}

func (app *application) close() {
	if app.kv == nil {
		return
	}
	if err := app.kv.Close(); err != nil {
		app.logger.Error("failed to close storage", slog.String("error", err.Error()))
	}
}
