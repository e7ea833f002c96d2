package quiz

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

//go:embed defaults.json
var defaultsJSON []byte

// ErrNoQuestions means a pool source held no usable question at all.
var ErrNoQuestions = errors.New("no valid questions")

var defaultPool = sync.OnceValues(func() ([]Question, error) {
	return decodePool(defaultsJSON)
})

// DefaultPool returns a copy of the built-in 30 question seed.
func DefaultPool() []Question {
	qs, err := defaultPool()
	if err != nil {
		// the seed is compiled in; a decode failure is a build defect
		panic(fmt.Sprintf("quiz: embedded default pool: %v", err))
	}
	return append([]Question(nil), qs...)
}

// LoadPoolFile reads a JSON array of records from disk. Invalid records and
// repeated question texts are dropped; ids are kept when present and unique.
func LoadPoolFile(path string) ([]Question, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool file: %w", err)
	}
	qs, err := decodePool(b)
	if err != nil {
		return nil, fmt.Errorf("pool file %s: %w", path, err)
	}
	return qs, nil
}

func decodePool(b []byte) ([]Question, error) {
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	qs := collect(records, true, func(r Record, seen map[string]bool) string {
		if r.ID != "" && !seen[r.ID] {
			return r.ID
		}
		return "q_" + uuid.NewString()
	})
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}
