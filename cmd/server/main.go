package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/digkill/cinexa/internal/api"
	"github.com/digkill/cinexa/internal/config"
	"github.com/digkill/cinexa/internal/database"
	"github.com/digkill/cinexa/internal/kie"
	"github.com/digkill/cinexa/internal/notify"
	"github.com/digkill/cinexa/internal/provider"
	"github.com/digkill/cinexa/internal/repository"
	"github.com/digkill/cinexa/internal/repository/memory"
	"github.com/digkill/cinexa/internal/service"
	"github.com/digkill/cinexa/internal/session"
	"github.com/digkill/cinexa/internal/storage"
	"github.com/digkill/cinexa/pkg/logger"
)

type repositories struct {
	accounts       service.AccountRepository
	generations    service.GenerationRepository
	paymentMethods service.PaymentMethodRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, db, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}
	defer closeSessions()

	media, seo := newProviders(cfg, logr)

	ids := service.UUIDGenerator{}
	clock := service.Clock(service.SystemClock)

	accounts := service.NewAccountService(repos.accounts, ids, clock, logr)
	ledger := service.NewLedgerService(repos.generations)
	generations := service.NewGenerationService(logr, accounts, ledger, media, seo, ids, clock)
	paymentMethods := service.NewPaymentMethodService(repos.paymentMethods, ids, logr)

	notifier, err := newNotifier(cfg, logr)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	checkout := service.NewCheckoutService(accounts, paymentMethods, notifier, clock, logr)
	admin := service.NewAdminService(accounts, ledger)

	if _, err := accounts.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword); err != nil {
		log.Fatalf("ensure admin: %v", err)
	}
	if err := paymentMethods.EnsureDefaults(ctx); err != nil {
		log.Fatalf("ensure payment methods: %v", err)
	}

	var avatars api.AvatarStorage
	if cfg.S3Enabled() {
		uploader, err := storage.NewUploader(storage.Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
			Prefix:        cfg.S3Prefix,
		})
		if err != nil {
			log.Fatalf("storage uploader: %v", err)
		}
		avatars = uploader
	}

	server := api.NewServer(api.Options{
		Addr:                 cfg.ListenAddr,
		ShutdownTimeout:      cfg.ShutdownTimeout,
		GenerationsPerMinute: cfg.GenerationRatePerMinute,
		GenerationBurst:      cfg.GenerationBurst,
	}, logr, api.Services{
		Accounts:       accounts,
		Ledger:         ledger,
		Generations:    generations,
		PaymentMethods: paymentMethods,
		Checkout:       checkout,
		Admin:          admin,
	}, sessions, avatars)

	logr.Info("cinexa starting",
		"storage", cfg.Storage,
		"sessions", cfg.SessionStore,
		"provider", cfg.Provider,
		"avatars", cfg.S3Enabled(),
		"telegram", cfg.TelegramEnabled(),
	)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("api server stopped", "err", err)
	}
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, *sql.DB, error) {
	if cfg.Storage != config.StorageMySQL {
		return repositories{
			accounts:       memory.NewAccountRepository(),
			generations:    memory.NewGenerationRepository(),
			paymentMethods: memory.NewPaymentMethodRepository(),
		}, nil, nil
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return repositories{}, nil, err
	}
	return repositories{
		accounts:       repository.NewAccountRepository(db),
		generations:    repository.NewGenerationRepository(db),
		paymentMethods: repository.NewPaymentMethodRepository(db),
	}, db, nil
}

func openSessions(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	if cfg.SessionStore != config.SessionRedis {
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}
	return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}

func newProviders(cfg config.Config, logr *slog.Logger) (provider.MediaGenerator, provider.SEOGenerator) {
	if cfg.Provider == config.ProviderKIE {
		return kie.NewClient(cfg, logr), provider.StaticSEO{}
	}
	delays := provider.Delays{}
	if cfg.MockDelays {
		delays = provider.DefaultDelays()
	}
	mock := provider.NewMock(delays, logr)
	return mock, mock
}

func newNotifier(cfg config.Config, logr *slog.Logger) (service.Notifier, error) {
	if !cfg.TelegramEnabled() {
		return notify.NewLog(logr), nil
	}
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	return notify.NewTelegram(botAPI, cfg.TelegramAdminChatID), nil
}
