package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"eventvault-backend/internal/analysis"
	googleauth "eventvault-backend/internal/auth"
	"eventvault-backend/internal/bugs"
	"eventvault-backend/internal/contracts"
	"eventvault-backend/internal/events"
	"eventvault-backend/internal/extract"
	"eventvault-backend/internal/llm"
	"eventvault-backend/internal/llm/gemini"
	"eventvault-backend/internal/shared/config"
	"eventvault-backend/internal/shared/server"
	"eventvault-backend/internal/shared/storage/db"
	"eventvault-backend/internal/shared/storage/object"
	localstore "eventvault-backend/internal/shared/storage/object/local"
	s3store "eventvault-backend/internal/shared/storage/object/s3"
	"eventvault-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo     users.Repo
	EventsRepo    events.Repo
	ContractsRepo contracts.Repo
	BugsRepo      bugs.Repo

	UsersService     *users.Service
	EventsService    *events.Service
	ContractsService *contracts.Service
	BugsService      *bugs.Service

	UsersHandler     *users.Handler
	EventsHandler    *events.Handler
	ContractsHandler *contracts.Handler
	BugsHandler      *bugs.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		UserHandler:     app.UsersHandler,
		EventHandler:    app.EventsHandler,
		ContractHandler: app.ContractsHandler,
		BugHandler:      app.BugsHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var userRepo users.Repo
	var eventRepo events.Repo
	var contractRepo contracts.Repo
	var bugRepo bugs.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		eventRepo = &events.PGRepo{DB: app.DB}
		contractRepo = &contracts.PGRepo{DB: app.DB}
		bugRepo = &bugs.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		eventRepo = events.NewMemoryRepo()
		contractRepo = contracts.NewMemoryRepo()
		bugRepo = bugs.NewMemoryRepo()
	}

	// A missing API key leaves the client nil; the summarizer then reports
	// a credential error per analysis attempt instead of failing startup.
	var llmClient llm.Client
	if strings.TrimSpace(app.Config.GeminiAPIKey) != "" {
		client, err := gemini.NewClient(app.Config.GeminiAPIKey, app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = client
	} else {
		log.Printf("bootstrap: GOOGLE_API_KEY empty; contract analysis disabled")
	}

	summarizer := &analysis.Summarizer{LLM: llmClient}
	analysisStore := &analysis.Store{Objects: app.Store}

	userSvc := users.NewService(userRepo, app.Config.AppMasterEmail)
	eventSvc := events.NewService(eventRepo)
	contractSvc := &contracts.Service{
		Repo:      contractRepo,
		Store:     app.Store,
		Extract:   extract.Text,
		Summarize: summarizer.Summarize,
		Analyses:  analysisStore,
	}
	bugSvc := bugs.NewService(bugRepo)

	app.UsersRepo = userRepo
	app.EventsRepo = eventRepo
	app.ContractsRepo = contractRepo
	app.BugsRepo = bugRepo
	app.UsersService = userSvc
	app.EventsService = eventSvc
	app.ContractsService = contractSvc
	app.BugsService = bugSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.EventsHandler = events.NewHandler(eventSvc)
	app.ContractsHandler = contracts.NewHandler(contractSvc)
	app.BugsHandler = bugs.NewHandler(bugSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	return nil
}
