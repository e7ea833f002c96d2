package main

import (
	"testing"

	"github.com/kiliankoe/quizrace/internal/ai/gemini"
	"github.com/kiliankoe/quizrace/internal/ai/ollama"
	"github.com/kiliankoe/quizrace/internal/ai/openai"
	"github.com/kiliankoe/quizrace/internal/config"
)

func TestNewProvider(t *testing.T) {
	if _, ok := newProvider(config.Config{DefaultProvider: "ollama", OllamaHost: "http://localhost:11434"}).(*ollama.Client); !ok {
		t.Fatal("expected the ollama client")
	}
	if _, ok := newProvider(config.Config{DefaultProvider: "Gemini", GeminiKey: "k"}).(*gemini.Client); !ok {
		t.Fatal("provider names should be case-insensitive")
	}
	if _, ok := newProvider(config.Config{DefaultProvider: "openai", OpenAIKey: "k"}).(*openai.Client); !ok {
		t.Fatal("expected the openai client")
	}
	if p := newProvider(config.Config{DefaultProvider: "openai"}); p != nil {
		t.Fatal("missing key should disable generation")
	}
	if p := newProvider(config.Config{DefaultProvider: "claude"}); p != nil {
		t.Fatal("unknown provider should disable generation")
	}
}
