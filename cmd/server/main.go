package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/adapters/event"
	httpAdapter "github.com/khoahotran/talent-profile/adapters/http"
	"github.com/khoahotran/talent-profile/adapters/media_storage"
	"github.com/khoahotran/talent-profile/adapters/persistence"
	"github.com/khoahotran/talent-profile/internal/application/service"
	profileUC "github.com/khoahotran/talent-profile/internal/application/usecase/profile"
	resumeUC "github.com/khoahotran/talent-profile/internal/application/usecase/resume"
	sessionUC "github.com/khoahotran/talent-profile/internal/application/usecase/session"
	"github.com/khoahotran/talent-profile/internal/config"
	"github.com/khoahotran/talent-profile/pkg/auth"
	"github.com/khoahotran/talent-profile/pkg/logger"
	"github.com/khoahotran/talent-profile/pkg/tracing"
)

const serviceName = "talent-profile-api"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, serviceName)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	var publisher service.EventPublisher = service.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("No Kafka brokers configured, profile events are dropped")
	}

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	sessionStore := persistence.NewRedisSessionStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	resolver := sessionUC.NewTokenResolver(jwtSvc, sessionStore, appLogger)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, resolver, uploader, publisher, appLogger)
	uploadResumeUseCase := resumeUC.NewUploadResumeUseCase(uploader, publisher, appLogger)
	signOutUseCase := sessionUC.NewSignOutUseCase(resolver, sessionStore, appLogger)

	// HTTP
	if cfg.App.Env == logger.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth:    httpAdapter.NewAuthHandler(signOutUseCase, appLogger),
		Profile: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Resume:  httpAdapter.NewResumeHandler(uploadResumeUseCase, appLogger),
	}, resolver, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
