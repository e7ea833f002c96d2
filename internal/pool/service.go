// Package pool swaps the question pool of a match from its three sources:
// the built-in default, a spreadsheet export and an AI generator.
package pool

import (
	"context"
	"errors"

	"github.com/kiliankoe/quizrace/internal/game"
	"github.com/kiliankoe/quizrace/internal/quiz"
	"github.com/rs/zerolog/log"
)

var ErrGenerationDisabled = errors.New("question generation is not configured")

type SheetFetcher interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

type QuestionGenerator interface {
	Generate(ctx context.Context, count int) ([]quiz.Record, error)
}

type Source string

const (
	SourceDefault   Source = "default"
	SourceSheet     Source = "sheet"
	SourceCSV       Source = "csv"
	SourceGenerated Source = "generated"
)

type Service struct {
	defaults  []quiz.Question
	sheets    SheetFetcher
	generator QuestionGenerator
	count     int
}

// NewService wires the pool sources. generator may be nil when no AI
// provider is configured.
func NewService(defaults []quiz.Question, sheets SheetFetcher, generator QuestionGenerator, count int) *Service {
	return &Service{defaults: defaults, sheets: sheets, generator: generator, count: count}
}

func (s *Service) CanGenerate() bool { return s.generator != nil }

// ImportSheet fetches a spreadsheet export and installs its questions.
func (s *Service) ImportSheet(ctx context.Context, m *game.Match, ref string) (int, error) {
	text, err := s.sheets.Fetch(ctx, ref)
	if err != nil {
		return 0, err
	}
	return s.ImportCSV(m, text)
}

// ImportCSV installs the questions of a CSV blob. On failure the previous
// pool stays active.
func (s *Service) ImportCSV(m *game.Match, text string) (int, error) {
	n, err := m.ImportRows(quiz.ParseRows(text))
	if err != nil {
		log.Warn().Err(err).Msg("pool import rejected")
		return 0, err
	}
	log.Info().Int("count", n).Msg("pool imported")
	return n, nil
}

// Generate asks the generator for a fresh batch. A batch with nothing usable
// leaves the pool alone and reports 0.
func (s *Service) Generate(ctx context.Context, m *game.Match) (int, error) {
	if s.generator == nil {
		return 0, ErrGenerationDisabled
	}
	records, err := s.generator.Generate(ctx, s.count)
	if err != nil {
		log.Error().Err(err).Msg("question generation failed")
		return 0, err
	}
	qs, err := m.LoadGenerated(records)
	if err != nil {
		return 0, err
	}
	log.Info().Int("received", len(records)).Int("count", len(qs)).Msg("pool generated")
	return len(qs), nil
}

// ResetDefault puts the built-in pool back.
func (s *Service) ResetDefault(m *game.Match) (int, error) {
	qs := append([]quiz.Question(nil), s.defaults...)
	if err := m.LoadPool(qs); err != nil {
		return 0, err
	}
	return len(qs), nil
}
