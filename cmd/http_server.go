package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/access"
	accessPostgres "github.com/frahmantamala/document-management/internal/access/postgres"
	"github.com/frahmantamala/document-management/internal/auth"
	authPostgres "github.com/frahmantamala/document-management/internal/auth/postgres"
	"github.com/frahmantamala/document-management/internal/core/events"
	"github.com/frahmantamala/document-management/internal/document"
	documentPostgres "github.com/frahmantamala/document-management/internal/document/postgres"
	"github.com/frahmantamala/document-management/internal/storage"
	"github.com/frahmantamala/document-management/internal/tag"
	tagPostgres "github.com/frahmantamala/document-management/internal/tag/postgres"
	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/frahmantamala/document-management/internal/transport/rest"
	"github.com/frahmantamala/document-management/internal/user"
	userPostgres "github.com/frahmantamala/document-management/internal/user/postgres"
	"github.com/frahmantamala/document-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	DB      *sqlx.DB
	Router  *chi.Mux
	Storage *storage.Client
	Logger  *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx connection pool opened above
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	registerEventHandlers(eventBus, lg)

	storageClient := storage.NewClient(config.Storage, lg)

	baseHandler := transport.NewBaseHandler(lg)

	tokenGenerator := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGenerator, config.Security.BCryptCost, eventBus, lg)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), config.Security.BCryptCost, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	accessService := access.NewService(accessPostgres.NewRepository(gormDB), lg)
	accessHandler := access.NewHandler(accessService)

	documentService := document.NewService(
		documentPostgres.NewDocumentRepository(gormDB),
		accessService,
		accessService,
		storageClient,
		eventBus,
		lg,
	)
	documentHandler := document.NewHandler(documentService)

	tagService := tag.NewService(tagPostgres.NewTagRepository(gormDB), lg)
	tagHandler := tag.NewHandler(baseHandler, tagService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, storageClient, authHandler, userHandler, documentHandler, tagHandler, accessHandler, lg)

	return &Dependencies{
		Config:  config,
		Logger:  lg,
		DB:      db,
		Router:  router,
		Storage: storageClient,
	}, nil
}

// registerEventHandlers wires the audit log subscribers for domain events.
func registerEventHandlers(bus *events.EventBus, lg *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		lg.Info("domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeDocumentCreated, logEvent)
	bus.Subscribe(events.EventTypeDocumentVersionAdded, logEvent)
	bus.Subscribe(events.EventTypeUserRegistered, logEvent)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
