package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/generation"
	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/llm"
	openai "jobtrack-backend/internal/llm/openai"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/ratelimit"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server"
	"jobtrack-backend/internal/shared/storage/db"
)

var errDatabaseRequired = errors.New("DATABASE_URL is required")

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ProfilesRepo  profiles.Repo
	JobsRepo      jobs.Repo
	ArtifactsRepo artifacts.Repo

	Limiter           ratelimit.Limiter
	LLM               llm.Client
	GenerationService *generation.Service
	GenerationHandler *generation.Handler
	JobsHandler       *jobs.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		GenerationHandler: app.GenerationHandler,
		JobsHandler:       app.JobsHandler,
	})

	return app, nil
}

// buildDB connects when DATABASE_URL is set. In dev-like environments a
// missing or unreachable database falls back to in-memory repositories
// instead of failing startup.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
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
		log.Printf("bootstrap: migrations failed: %v", err)
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ArtifactsRepo = &artifacts.PGRepo{DB: app.DB}
	} else {
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ArtifactsRepo = artifacts.NewMemoryRepo()
	}

	app.Limiter = ratelimit.NewSlidingWindow(app.Config.RateLimitCeiling, app.Config.RateLimitWindow, nil)

	client, err := buildLLM(app.Config)
	if err != nil {
		return err
	}
	app.LLM = llm.WithRetry(client, llm.DefaultRetryPolicy(app.Config.LLMMaxRetries))

	aggregator := &generation.Aggregator{
		Profiles: app.ProfilesRepo,
		Jobs:     app.JobsRepo,
	}
	prompts := generation.PromptBuilder{
		MaxFieldChars:       app.Config.PromptMaxFieldChars,
		MaxDescriptionChars: app.Config.PromptMaxDescriptionChars,
	}
	app.GenerationService = generation.NewService(
		app.Limiter,
		aggregator,
		prompts,
		app.LLM,
		app.ArtifactsRepo,
		app.Config.LLMProvider,
		app.Config.ModelFor,
	)
	app.GenerationHandler = generation.NewHandler(app.GenerationService, app.ArtifactsRepo)
	app.JobsHandler = jobs.NewHandler(app.JobsRepo)

	return nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider == "openai" {
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMTimeout)
	}
	return llm.MockClient{}, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
