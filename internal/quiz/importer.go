package quiz

import (
	"fmt"
	"strconv"
)

// MinImportSize is the smallest number of valid rows an import must yield.
const MinImportSize = 5

// Column layout of an imported sheet:
// question, option A, option B, option C, option D, correct index (0-3).
const importColumns = 6

// ValidationError is returned when an import does not yield enough valid
// questions. The caller keeps its previous pool.
type ValidationError struct {
	Valid int
	Min   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("found %d valid questions, need at least %d; check the column format", e.Valid, e.Min)
}

// ImportRows turns parsed sheet rows into questions. Row 0 is the header.
// Rows that are too short or break a Question rule are skipped.
func ImportRows(rows [][]string) ([]Question, error) {
	var out []Question
	for i := 1; i < len(rows); i++ {
		q, ok := questionFromRow(i, rows[i])
		if ok {
			out = append(out, q)
		}
	}
	if len(out) < MinImportSize {
		return nil, &ValidationError{Valid: len(out), Min: MinImportSize}
	}
	return out, nil
}

func questionFromRow(index int, cols []string) (Question, bool) {
	if len(cols) < importColumns {
		return Question{}, false
	}
	idx, ok := leadingInt(cols[5])
	if !ok {
		return Question{}, false
	}
	q := Question{
		ID:                 "sheet_" + strconv.Itoa(index),
		Text:               cols[0],
		Options:            [OptionCount]string{cols[1], cols[2], cols[3], cols[4]},
		CorrectAnswerIndex: idx,
	}
	if q.Validate() != nil {
		return Question{}, false
	}
	return q, true
}

// leadingInt reads an integer the way spreadsheets tend to export it: an
// optional sign followed by digits, ignoring whatever follows ("2.0" is 2).
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
