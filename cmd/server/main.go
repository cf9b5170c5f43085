package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shaadi/internal/audit"
	"shaadi/internal/biodata"
	"shaadi/internal/biodata/sequence"
	biodatastore "shaadi/internal/biodata/store"
	"shaadi/internal/favourites"
	favouritesstore "shaadi/internal/favourites/store"
	"shaadi/internal/platform/config"
	"shaadi/internal/platform/httpserver"
	"shaadi/internal/platform/logger"
	"shaadi/internal/platform/metrics"
	"shaadi/internal/platform/postgres"
	"shaadi/internal/platform/redis"
	"shaadi/internal/ratelimit"
	"shaadi/internal/token"
	httptransport "shaadi/internal/transport/http"
	"shaadi/internal/users"
	usersstore "shaadi/internal/users/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	publisher := audit.NewPublisher(0, log)
	var sink audit.Sink = audit.NewSlogSink(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka sink unavailable, falling back to log sink", "error", err)
		} else {
			defer kafkaSink.Close()
			sink = kafkaSink
		}
	}
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	var (
		userStore      users.Store
		biodataStore   biodata.Store
		favouriteStore favourites.Store
		allocator      sequence.Allocator
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		userStore = usersstore.NewPostgres(db)
		biodataStore = biodatastore.NewPostgres(db)
		favouriteStore = favouritesstore.NewPostgres(db)
		allocator = sequence.NewPostgres(db)
	} else {
		// In-memory mode for local development. State is lost on restart.
		log.Warn("SHAADI_DATABASE_URL not set, using in-memory stores")
		userStore = usersstore.NewMemory()
		biodataStore = biodatastore.NewMemory()
		favouriteStore = favouritesstore.NewMemory()
		allocator = sequence.NewMemory(0)
	}

	var windowStore ratelimit.WindowStore = ratelimit.NewMemoryStore()
	rdb, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed, using in-process rate limiting", "error", err)
	} else if rdb != nil {
		defer rdb.Close()
		windowStore = ratelimit.NewRedisStore(rdb.Client)
	}
	issueLimit := ratelimit.NewLimiter(windowStore, cfg.IssueRateLimit, cfg.IssueRateWindow)

	tokenService := token.New(cfg.JWTSigningKey, token.WithTTL(cfg.TokenTTL))
	userService := users.NewService(userStore, log, users.WithAudit(publisher), users.WithMetrics(m))
	biodataService := biodata.NewService(biodataStore, allocator, log, biodata.WithAudit(publisher), biodata.WithMetrics(m))
	favouriteService := favourites.NewService(favouriteStore, log, favourites.WithAudit(publisher), favourites.WithMetrics(m))

	router := httptransport.NewRouter(httptransport.Deps{
		Tokens:     token.NewHandler(tokenService, publisher, m, log),
		Users:      users.NewHandler(userService, log),
		Biodatas:   biodata.NewHandler(biodataService, log),
		Favourites: favourites.NewHandler(favouriteService, log),
		Verifier:   tokenService,
		Roles:      userService,
		IssueLimit: issueLimit,
		OpsHash:    cfg.OpsTokenHash,
		Metrics:    m,
		Logger:     log,
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return worker.Run(groupCtx)
	})
	group.Go(func() error {
		log.Info("starting shaadi server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
