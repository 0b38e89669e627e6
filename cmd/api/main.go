package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/api/middleware"
	"github.com/linskybing/formify-go/internal/api/routes"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/assistant"
	"github.com/linskybing/formify-go/internal/config"
	"github.com/linskybing/formify-go/internal/config/db"
	"github.com/linskybing/formify-go/internal/cron"
	"github.com/linskybing/formify-go/internal/domain/audit"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/domain/integration"
	"github.com/linskybing/formify-go/internal/domain/user"
	"github.com/linskybing/formify-go/internal/integrations"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/internal/storage"
)

// @title Formify API
// @version 1.0
// @description Form builder: editing sessions, publishing, responses and integrations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions live in Redis so they survive restarts
	store, err := session.NewRedisStore(config.RedisURL, config.InactivityTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()
	middleware.Init(store)

	// Initialize database connection
	db.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(
		&user.User{},
		&form.Form{},
		&form.Submission{},
		&integration.Integration{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repos := repository.NewRepositories(db.DB)
	services := application.New(repos, buildDeps(ctx, store))

	cron.StartCleanupTask(ctx, services.Audit, config.AuditRetentionDays)
	cron.StartSessionSweeper(ctx, services.Builder, config.BuilderSessionIdle)

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, services, repos)

	srv := &http.Server{
		Addr:    ":" + config.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	services.Builder.Shutdown(shutdownCtx)
	services.Integration.Wait()
	log.Println("Server exited")
}

// buildDeps connects the optional external systems. A nil interface value
// switches the matching feature off.
func buildDeps(ctx context.Context, store session.Store) application.Deps {
	deps := application.Deps{Sessions: store}

	if config.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(ctx)
		if err != nil {
			log.Printf("Warning: MinIO unavailable, archives disabled: %v", err)
		} else {
			deps.Store = minioStore
		}
	}

	if config.GoogleSheetsCredentialsFile != "" {
		sheets, err := integrations.NewGoogleSheets(ctx, config.GoogleSheetsCredentialsFile)
		if err != nil {
			log.Printf("Warning: Google Sheets unavailable: %v", err)
		} else {
			deps.Sheets = sheets
		}
	}

	if config.SMTPHost != "" {
		deps.Mailer = integrations.NewSMTPMailer(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.SMTPFrom,
		)
	}

	if ai := assistant.NewOpenAI(config.OpenAIAPIKey, config.OpenAIModel, 0); ai != nil {
		deps.AI = ai
	} else {
		log.Println("OPENAI_API_KEY not set, form generation uses built-in templates")
	}

	return deps
}
