package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountservice "postboard/internal/account/service"
	accountstorage "postboard/internal/account/storage"
	authcleanup "postboard/internal/auth/cleanup"
	authrepo "postboard/internal/auth/repository"
	authservice "postboard/internal/auth/service"
	"postboard/internal/auth/session"
	"postboard/internal/common/clock"
	"postboard/internal/common/config"
	commoncrypto "postboard/internal/common/crypto"
	"postboard/internal/common/db"
	commonhttp "postboard/internal/common/http"
	"postboard/internal/common/logger"
	srv "postboard/internal/common/server"
	"postboard/internal/news"
	postrepo "postboard/internal/post/repository"
	postservice "postboard/internal/post/service"
	userrepo "postboard/internal/user/repository"
	"postboard/internal/web"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "web", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.ApplyMigrations(log, cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	realClock := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := &commoncrypto.UUIDGenerator{}

	userRepository := userrepo.NewPgRepository(pool)
	revokedSessions := authrepo.NewPgRevokedSessionRepository(pool)
	postRepository := postrepo.NewPgRepository(pool)

	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL, idGenerator, realClock)
	sessions := session.NewManager(codec, revokedSessions, userRepository, log)

	authSvc := authservice.NewAuthService(
		userRepository,
		revokedSessions,
		codec,
		hasher,
		idGenerator,
		realClock,
		log,
	)
	postSvc := postservice.NewService(postRepository, idGenerator, realClock, log)

	pictureStore, err := accountstorage.NewDiskPictureStore(cfg.ProfilePicsDir)
	if err != nil {
		log.Fatalf("failed to initialize picture store: %v", err)
	}
	accountSvc := accountservice.NewService(userRepository, pictureStore, log)

	newsClient := news.NewClient(cfg.NewsBaseURL, cfg.NewsAPIKey, cfg.NewsCountry, cfg.NewsTimeout, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go authcleanup.StartRevokedSessionCleanup(ctx, revokedSessions, log)

	handler := web.NewHandler(
		postSvc,
		authSvc,
		accountSvc,
		newsClient,
		sessions,
		log,
		cfg.RequestTimeout,
		cfg.ProfilePicsDir,
	)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	withRateLimit := rateLimiter.MiddlewareForPaths("/login", "/register")

	finalHandler := commonhttp.BuildBaseHandler(log, withRateLimit(mux))

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("web service: stopping cleanup goroutine")
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "web", shutdownHooks)
}
