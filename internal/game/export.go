package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportResult appends the outcome of a finished match to a text file.
func ExportResult(code string, st State, filename string) error {
	if st.Status != StatusFinished {
		return fmt.Errorf("match %s is not finished", code)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("QuizRace Result - Table %s\n", code))
	sb.WriteString(fmt.Sprintf("Finished: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, p := range []PlayerState{st.Player1, st.Player2} {
		marker := ""
		if p.ID == st.Winner {
			marker = " (winner)"
		}
		sb.WriteString(fmt.Sprintf("- Player %d: %d points, streak %d%s\n", p.ID, p.Score, p.Streak, marker))
	}
	sb.WriteString(fmt.Sprintf("Pool size: %d\n", st.PoolSize))
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	if _, err := file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}
