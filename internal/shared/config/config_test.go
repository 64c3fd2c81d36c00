package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.LLMProvider != "mock" {
		t.Fatalf("LLMProvider = %q", cfg.LLMProvider)
	}
	if cfg.RateLimitCeiling != 5 {
		t.Fatalf("RateLimitCeiling = %d", cfg.RateLimitCeiling)
	}
	if cfg.RateLimitWindow != 60*time.Second {
		t.Fatalf("RateLimitWindow = %v", cfg.RateLimitWindow)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("LLMTimeout = %v", cfg.LLMTimeout)
	}
	if cfg.LLMMaxRetries != 2 {
		t.Fatalf("LLMMaxRetries = %d", cfg.LLMMaxRetries)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "live")
	t.Setenv("RATE_LIMIT_CEILING", "9")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "120")
	t.Setenv("PROMPT_MAX_FIELD_CHARS", "250")

	cfg := Load()

	if cfg.LLMProvider != "openai" {
		t.Fatalf("LLMProvider = %q, want live to normalize to openai", cfg.LLMProvider)
	}
	if cfg.RateLimitCeiling != 9 {
		t.Fatalf("RateLimitCeiling = %d", cfg.RateLimitCeiling)
	}
	if cfg.RateLimitWindow != 120*time.Second {
		t.Fatalf("RateLimitWindow = %v", cfg.RateLimitWindow)
	}
	if cfg.PromptMaxFieldChars != 250 {
		t.Fatalf("PromptMaxFieldChars = %d", cfg.PromptMaxFieldChars)
	}
}

func TestModelFor(t *testing.T) {
	t.Setenv("LLM_MODEL", "base-model")
	t.Setenv("LLM_MODEL_COVER_LETTER", "letter-model")

	cfg := Load()

	if got := cfg.ModelFor("cover_letter"); got != "letter-model" {
		t.Fatalf("ModelFor(cover_letter) = %q", got)
	}
	if got := cfg.ModelFor("resume"); got != "base-model" {
		t.Fatalf("ModelFor(resume) = %q", got)
	}
}

func TestLoadRejectsBadInts(t *testing.T) {
	t.Setenv("RATE_LIMIT_CEILING", "many")

	cfg := Load()
	if cfg.RateLimitCeiling != 5 {
		t.Fatalf("RateLimitCeiling = %d, want the default for unparsable input", cfg.RateLimitCeiling)
	}
}
