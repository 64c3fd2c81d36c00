package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string

	LLMProvider string
	LLMModel    string
	KindModels  map[string]string

	LLMTimeout    time.Duration
	LLMMaxRetries int

	RateLimitCeiling int
	RateLimitWindow  time.Duration

	PromptMaxFieldChars       int
	PromptMaxDescriptionChars int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		Env:             env,

		LLMProvider: normalizeProvider(getEnv("LLM_PROVIDER", "mock")),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),
		KindModels:  kindModelOverrides(),

		LLMTimeout:    time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		LLMMaxRetries: getEnvInt("LLM_MAX_RETRIES", 2),

		RateLimitCeiling: getEnvInt("RATE_LIMIT_CEILING", 5),
		RateLimitWindow:  time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		PromptMaxFieldChars:       getEnvInt("PROMPT_MAX_FIELD_CHARS", 600),
		PromptMaxDescriptionChars: getEnvInt("PROMPT_MAX_DESCRIPTION_CHARS", 6000),
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: load %s: %v", path, err)
		}
	}
}

// ModelFor returns the model identifier configured for a generation kind,
// falling back to the default model.
func (c Config) ModelFor(kind string) string {
	if model, ok := c.KindModels[strings.ToLower(strings.TrimSpace(kind))]; ok && model != "" {
		return model
	}
	return c.LLMModel
}

// kindModelOverrides reads LLM_MODEL_<KIND> env vars, e.g. LLM_MODEL_COVER_LETTER.
func kindModelOverrides() map[string]string {
	const prefix = "LLM_MODEL_"
	out := map[string]string{}
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, prefix) || strings.TrimSpace(value) == "" {
			continue
		}
		kind := strings.ToLower(strings.TrimPrefix(key, prefix))
		out[kind] = strings.TrimSpace(value)
	}
	return out
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai", "live":
		return "openai"
	default:
		return "mock"
	}
}
