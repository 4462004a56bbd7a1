package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/internal/providers/auth"
	"github.com/sandevgo/sejarahbot/internal/providers/notify"
	"github.com/sandevgo/sejarahbot/internal/service/account"
	"github.com/sandevgo/sejarahbot/internal/service/catalog"
	"github.com/sandevgo/sejarahbot/internal/service/command"
	"github.com/sandevgo/sejarahbot/internal/service/conversation"
	"github.com/sandevgo/sejarahbot/internal/service/matcher"
	"github.com/sandevgo/sejarahbot/internal/service/qa"
	"github.com/sandevgo/sejarahbot/internal/service/render"
	"github.com/sandevgo/sejarahbot/internal/storage/memory"
	"github.com/sandevgo/sejarahbot/internal/storage/postgres"
	"github.com/sandevgo/sejarahbot/internal/storage/sqlite"
	"github.com/sandevgo/sejarahbot/internal/transport/rest"
	"github.com/sandevgo/sejarahbot/internal/transport/telegram"
	"github.com/sandevgo/sejarahbot/internal/transport/ws"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"github.com/sandevgo/sejarahbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	qaCfg := config.NewQAConfig(ctx)
	authCfg := config.NewAuthConfig(ctx)

	// 2. Storage
	store, closeStore, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(closeStore))

	// 3. Session authority and accounts
	authority, err := auth.NewAuthority(authCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session authority")
	}
	accounts := account.NewDirectory(authCfg, store, authority, notify.NewLogNotifier())

	// 4. Question answering
	mc := metrics.NewCollector()
	answerer, err := newAnswerer(qaCfg, qaCfg.AnswerFormat, store, mc)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize answerer")
	}

	// 5. Transports
	transports, err := initTransports(ctx, appCfg, transportDeps{
		qaCfg:     qaCfg,
		store:     store,
		authority: authority,
		accounts:  accounts,
		answerer:  answerer,
		metrics:   mc,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// initStorage opens the backend named by cfg and returns it with its
// close function.
func initStorage(ctx context.Context, cfg *config.AppConfig) (core.Store, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		s, err := sqlite.NewStore(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.DB().Close, nil
	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the %s driver", config.StoragePostgres)
		}
		s, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.DB().Close, nil
	case config.StorageMemory:
		log.FromCtx(ctx).Warn().Msg("using in-memory storage, data is lost on exit")
		return memory.NewStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// newAnswerer assembles the match, render and log pipeline for one output
// format.
func newAnswerer(cfg *config.QAConfig, format string, store core.Store, mc *metrics.Collector) (*qa.Service, error) {
	formatter, err := render.NewFormatter(format)
	if err != nil {
		return nil, err
	}
	return qa.NewService(
		cfg,
		matcher.NewMatcher(store),
		render.NewRenderer(formatter),
		conversation.NewRecorder(store),
		mc,
	), nil
}

type transportDeps struct {
	qaCfg     *config.QAConfig
	store     core.Store
	authority core.SessionAuthority
	accounts  *account.Directory
	answerer  core.Answerer
	metrics   *metrics.Collector
}

func initTransports(ctx context.Context, cfg *config.AppConfig, deps transportDeps) ([]srv.Service, error) {
	var services []srv.Service

	// HTTP API and session channel
	if cfg.IsHTTPSelected() {
		httpCfg := config.NewHTTPConfig(ctx)
		channel := ws.NewHandler(deps.qaCfg, deps.authority, deps.answerer, deps.metrics)
		router := rest.NewRouter(httpCfg, deps.authority, deps.accounts,
			catalog.NewService(deps.store), channel, deps.metrics)
		services = append(services, rest.NewServer(httpCfg, router.Setup()))
	}

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		answerer, err := newAnswerer(deps.qaCfg, render.FormatTelegram, deps.store, deps.metrics)
		if err != nil {
			return nil, err
		}
		bot, err := telegram.NewBot(ctx, tgCfg, answerer, command.New(command.NewCommands(deps.store)))
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no transport enabled, set ENABLE_HTTP or ENABLE_TELEGRAM")
	}
	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

// openStore loads the env and opens storage for one-shot commands.
func openStore(ctx context.Context) (*config.AppConfig, core.Store, func() error, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, nil, nil, err
	}
	appCfg := config.NewAppConfig(ctx)
	store, closeStore, err := initStorage(ctx, appCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return appCfg, store, closeStore, nil
}
