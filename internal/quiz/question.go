package quiz

import (
	"errors"
	"strings"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

var (
	ErrEmptyQuestion = errors.New("question text is required")
	ErrEmptyOption   = errors.New("all 4 options must be filled in")
	ErrAnswerIndex   = errors.New("correct answer index must be between 0 and 3")
	ErrOptionCount   = errors.New("a question needs exactly 4 options")
)

// Question is a single multiple-choice entry of a pool. Treat it as immutable
// once it has been handed to a match.
type Question struct {
	ID                 string              `json:"id"`
	Text               string              `json:"question"`
	Options            [OptionCount]string `json:"options"`
	CorrectAnswerIndex int                 `json:"correctAnswerIndex"`
	Category           string              `json:"category,omitempty"`
}

// Validate reports the first rule the question breaks.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestion
	}
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return ErrEmptyOption
		}
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= OptionCount {
		return ErrAnswerIndex
	}
	return nil
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswerIndex
}
