package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kiliankoe/quizrace/internal/quiz"
)

var ErrNoProvider = errors.New("no AI provider configured")

const systemPrompt = `You write quiz questions for a fast two-player race game.
Reply with JSON only: {"questions": [...]}, or a bare array when a response schema is given. Each question looks like {"question": "...", "options": ["...", "...", "...", "..."], "correctAnswerIndex": 0, "category": "..."}.
Every question has exactly 4 short options and exactly one correct answer; correctAnswerIndex is 0-3.`

// questionSchema is a list of 4-option questions.
var questionSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"id":       map[string]any{"type": "STRING"},
			"question": map[string]any{"type": "STRING"},
			"options": map[string]any{
				"type":  "ARRAY",
				"items": map[string]any{"type": "STRING"},
			},
			"correctAnswerIndex": map[string]any{"type": "INTEGER", "description": "Index of correct option (0-3)"},
			"category":           map[string]any{"type": "STRING"},
		},
		"required": []string{"id", "question", "options", "correctAnswerIndex"},
	},
}

type GeneratorConfig struct {
	Model    string
	Topic    string
	Language string
}

// Generator asks a Provider for a batch of multiple-choice questions.
type Generator struct {
	provider Provider
	cfg      GeneratorConfig
}

func NewGenerator(p Provider, cfg GeneratorConfig) *Generator {
	return &Generator{provider: p, cfg: cfg}
}

// Generate makes a single request for count questions and returns the raw
// records. Validation is left to the pool.
func (g *Generator) Generate(ctx context.Context, count int) ([]quiz.Record, error) {
	if g == nil || g.provider == nil {
		return nil, ErrNoProvider
	}
	text, err := g.provider.Complete(ctx, Request{
		Model:  g.cfg.Model,
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Generate %d unique multiple-choice questions about %s for high school students. Write them in %s.",
			count, g.cfg.Topic, g.cfg.Language),
		JSON:        true,
		Schema:      questionSchema,
		MaxTokens:   count * 120,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	records, err := DecodeRecords(text)
	if err != nil {
		return nil, fmt.Errorf("decode generated questions: %w", err)
	}
	return records, nil
}

// DecodeRecords accepts a bare JSON array or an object with a "questions"
// array, optionally wrapped in a markdown code fence.
func DecodeRecords(text string) ([]quiz.Record, error) {
	b := []byte(stripFence(text))
	if len(b) == 0 {
		return nil, errors.New("empty response")
	}
	if b[0] == '[' {
		var records []quiz.Record
		if err := json.Unmarshal(b, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var wrapped struct {
		Questions []quiz.Record `json:"questions"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Questions, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // language tag
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
