package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DEFAULT_PROVIDER", "DEFAULT_MODEL", "QUESTION_COUNT", "ANSWER_DELAY_MS", "SINGLE_SESSION", "EXPORT_ENABLED", "GEMINI_API_KEY", "API_KEY"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Port != "8080" || c.DefaultProvider != "openai" || c.DefaultModel != "gpt-4o-mini" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.QuestionCount != 30 || c.AnswerDelay != 600*time.Millisecond {
		t.Fatalf("unexpected numeric defaults: %d %v", c.QuestionCount, c.AnswerDelay)
	}
	if !c.SingleSession || c.ExportEnabled {
		t.Fatal("single session should default on and export off")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DEFAULT_PROVIDER", "gemini")
	t.Setenv("DEFAULT_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "fallback")
	t.Setenv("QUESTION_COUNT", "nope")
	t.Setenv("ANSWER_DELAY_MS", "250")
	t.Setenv("SINGLE_SESSION", "false")

	c := FromEnv()
	if c.DefaultModel != "gemini-2.5-flash" {
		t.Fatalf("model should follow provider, got %q", c.DefaultModel)
	}
	if c.GeminiKey != "fallback" {
		t.Fatalf("API_KEY should back GEMINI_API_KEY, got %q", c.GeminiKey)
	}
	if c.QuestionCount != 30 {
		t.Fatalf("invalid count should fall back, got %d", c.QuestionCount)
	}
	if c.AnswerDelay != 250*time.Millisecond || c.SingleSession {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QUESTION_TOPIC=networking\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUESTION_TOPIC", "")
	os.Unsetenv("QUESTION_TOPIC")

	if c := Load(path); c.QuestionTopic != "networking" {
		t.Fatalf("expected topic from file, got %q", c.QuestionTopic)
	}
}
