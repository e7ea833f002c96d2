package quiz

import (
	"strings"

	"github.com/google/uuid"
)

// Record is a question as produced by an external generator or a pool file.
// Nothing about it is trusted until it has been through FromGenerated.
type Record struct {
	ID                 string   `json:"id,omitempty"`
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Category           string   `json:"category,omitempty"`
}

// toQuestion converts the record, checking the shape but not the id.
func (r Record) toQuestion() (Question, error) {
	if len(r.Options) != OptionCount {
		return Question{}, ErrOptionCount
	}
	q := Question{
		ID:                 r.ID,
		Text:               strings.TrimSpace(r.Question),
		CorrectAnswerIndex: r.CorrectAnswerIndex,
		Category:           strings.TrimSpace(r.Category),
	}
	for i, o := range r.Options {
		q.Options[i] = strings.TrimSpace(o)
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// FromGenerated keeps every well-formed record and gives each a fresh id.
// It never fails; an empty result means nothing usable came back.
func FromGenerated(records []Record) []Question {
	return collect(records, false, func(Record, map[string]bool) string {
		return "gen_" + uuid.NewString()
	})
}

// collect converts the well-formed records. With dedupe set, a question text
// seen before (ignoring case and spacing) is skipped.
func collect(records []Record, dedupe bool, idFor func(Record, map[string]bool) string) []Question {
	seenText := make(map[string]bool, len(records))
	seenID := make(map[string]bool, len(records))
	out := make([]Question, 0, len(records))
	for _, r := range records {
		q, err := r.toQuestion()
		if err != nil {
			continue
		}
		if dedupe {
			key := textKey(q.Text)
			if seenText[key] {
				continue
			}
			seenText[key] = true
		}
		q.ID = idFor(r, seenID)
		seenID[q.ID] = true
		out = append(out, q)
	}
	return out
}

func textKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
