package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/greennest-api/docs" // Swagger docs
	"github.com/redmonkez12/greennest-api/internal/auth"
	"github.com/redmonkez12/greennest-api/internal/cart"
	"github.com/redmonkez12/greennest-api/internal/config"
	"github.com/redmonkez12/greennest-api/internal/database"
	"github.com/redmonkez12/greennest-api/internal/email"
	httpServer "github.com/redmonkez12/greennest-api/internal/http"
	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/profile"
	"github.com/redmonkez12/greennest-api/internal/session"
	"github.com/redmonkez12/greennest-api/internal/storage"
	"github.com/redmonkez12/greennest-api/internal/story"
	"github.com/redmonkez12/greennest-api/internal/user"
)

//go:generate swag init -g main.go -d ./,../../internal -o ../../docs

// @title           GreenNest API
// @version         1.0
// @description     Session-authenticated storefront backend: accounts, password reset, profiles, carts and stories.

// @host      localhost:5000
// @BasePath  /

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.Server.IsDevelopment(), cfg.Server.LogLevel)
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"upload_driver", cfg.Upload.Driver,
	)

	ctx := context.Background()

	sqlDB, err := database.Open(ctx, cfg.Database.ConnectionString(), database.DefaultPool)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, sqlDB); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migrations applied")
	}
	db := database.NewBunDB(sqlDB)

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	media, err := initStorage(ctx, cfg.Upload)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	sealer, err := session.NewSealer(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("failed to initialize session sealer: %w", err)
	}
	sessions := session.NewManager(session.NewRedisStore(redisClient), sealer, session.Config{
		TTL:          cfg.Session.TTL,
		CookieName:   cfg.Session.CookieName,
		SecureCookie: !cfg.Server.IsDevelopment(),
	})

	userRepo := user.NewRepository(db)
	emailService := email.NewService(cfg.Email)
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP_HOST is not set, password reset emails will fail")
	}

	authService := auth.NewService(userRepo, auth.NewHasher(), emailService, logger, cfg.OTP.TTL)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:    auth.NewHandler(authService, sessions),
		Cart:    cart.NewHandler(cart.NewService(cart.NewRepository(db))),
		Profile: profile.NewHandler(profile.NewService(userRepo, media), sessions, cfg.Upload.MaxBytes),
		Story:   story.NewHandler(story.NewService(story.NewRepository(db), media), cfg.Upload.MaxBytes),
		Uploads: storage.NewHandler(media),
	}, sessions, logger)

	server := httpServer.NewServer(cfg.Server, router, logger)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// initStorage picks the media store named by UPLOAD_DRIVER.
func initStorage(ctx context.Context, cfg config.UploadConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.UploadDriverS3:
		return storage.NewS3Store(ctx, cfg)
	default:
		return storage.NewLocalStore(cfg.Dir)
	}
}
