package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finhealth/internal/cache"
	"finhealth/internal/calculator"
	"finhealth/internal/catalog"
	"finhealth/internal/config"
	"finhealth/internal/geo"
	"finhealth/internal/logging"
	"finhealth/internal/repository"
	"finhealth/internal/scoring"
	"finhealth/internal/service"
	"finhealth/internal/transport/rest"
	"finhealth/internal/transport/ws"
)

// @title						Finance Health Assessment API
// @version					1.0
// @description				Finance health self-assessment, lead capture and finance assistant chat
// @host						localhost:8080
// @BasePath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "finhealth:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer mongoClient.Disconnect(context.Background()) //nolint:errcheck

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	var locator geo.Locator = geo.NoopLocator{}
	if cfg.GeoIPPath != "" {
		geoLocator, err := geo.Open(cfg.GeoIPPath)
		if err != nil {
			logger.Warn("geoip database unavailable, country lookup disabled", zap.Error(err))
		} else {
			defer geoLocator.Close()
			locator = geoLocator
		}
	}

	proxies, err := geo.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	engine, err := scoring.NewEngine(catalog.Default(),
		scoring.WithWeights(cfg.Weights),
		scoring.WithThresholds(cfg.Thresholds),
	)
	if err != nil {
		return fmt.Errorf("init scoring: %w", err)
	}

	calculators, err := calculator.NewRegistry(cfg.Calculators)
	if err != nil {
		return fmt.Errorf("init calculators: %w", err)
	}

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepo(db)
	if err := submissionRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("ensure submission indexes", zap.Error(err))
	}

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	chatCache := cache.NewChatCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.SessionTTL)
	mailer := service.NewMailer(cfg.Mail, logger)
	assessmentSvc := service.NewAssessmentService(engine, sessionCache, submissionRepo, mailer, locator, authSvc, logger)
	submissionSvc := service.NewSubmissionService(submissionRepo)
	chatSvc := service.NewChatService(cfg.Chat, chatCache, logger)

	if !cfg.Chat.IsEnabled() {
		logger.Warn("chat webhook not configured, chat replies use the fallback answer")
	}

	wsHub := ws.NewHub(logger)
	defer wsHub.Stop()

	router := rest.NewRouter(&rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		SubmissionService: submissionSvc,
		ChatService:       chatSvc,
		Calculators:       calculators,
		WSHub:             wsHub,
		TrustedProxies:    proxies,
		CORS: rest.CORS{
			Origins: cfg.CORSOrigins,
			Methods: cfg.CORSMethods,
			Headers: cfg.CORSHeaders,
		},
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
