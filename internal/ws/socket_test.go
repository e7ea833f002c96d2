package ws

import (
	"testing"

	"github.com/kiliankoe/quizrace/internal/feedback"
	"github.com/kiliankoe/quizrace/internal/game"
	"github.com/kiliankoe/quizrace/internal/quiz"
)

func TestCommitSound(t *testing.T) {
	playing := game.State{Status: game.StatusPlaying}
	finished := game.State{Status: game.StatusFinished, Winner: game.Player2}

	if s := commitSound(feedback.Result{Player: game.Player1, Correct: true, State: playing}); s != SoundEngine {
		t.Fatalf("correct answer should rev the engine, got %q", s)
	}
	if s := commitSound(feedback.Result{Player: game.Player1, State: playing}); s != "" {
		t.Fatalf("wrong answer should be silent on commit, got %q", s)
	}
	if s := commitSound(feedback.Result{Player: game.Player2, Correct: true, State: finished}); s != SoundWin {
		t.Fatalf("winning answer should play the win cue, got %q", s)
	}
}

func TestPickSound(t *testing.T) {
	if pickSound(true) != SoundCorrect || pickSound(false) != SoundWrong {
		t.Fatal("pick sounds should follow correctness")
	}
}

func TestNotifyBeforeMount(t *testing.T) {
	tm := game.NewManager(game.ManagerOptions{DefaultPool: quiz.DefaultPool()})
	srv := New(tm, nil, feedback.NewGate(0))
	table := tm.Create()

	// no socket server yet; notifications are dropped
	srv.StateChanged(table.Code, table.Match.State())
	srv.PoolLoaded(table.Code, 30, "default")
	srv.AnswerCommitted(table.Code, feedback.Result{Err: game.ErrInvalidStatus})
}
