package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportResultAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	st := State{
		Status:   StatusFinished,
		Player1:  PlayerState{ID: Player1, Score: 10, Streak: 4},
		Player2:  PlayerState{ID: Player2, Score: 7},
		Winner:   Player1,
		PoolSize: 30,
	}

	if err := ExportResult("ABCDE", st, file); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if err := ExportResult("ABCDE", st, file); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	out := string(b)
	if strings.Count(out, "QuizRace Result - Table ABCDE") != 2 {
		t.Fatalf("expected two appended blocks, got:\n%s", out)
	}
	if !strings.Contains(out, "- Player 1: 10 points, streak 4 (winner)") {
		t.Fatalf("winner line missing:\n%s", out)
	}
	if !strings.Contains(out, "- Player 2: 7 points, streak 0\n") {
		t.Fatalf("loser line missing:\n%s", out)
	}
}

func TestExportResultRequiresFinished(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	if err := ExportResult("ABCDE", State{Status: StatusPlaying}, file); err == nil {
		t.Fatal("exporting a running match should fail")
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Fatal("no file should be written for a running match")
	}
}
