package game

import (
	"github.com/kiliankoe/quizrace/internal/quiz"
)

// WinningScore is the score that ends a match.
const WinningScore = 10

type Status string

const (
	StatusMenu     Status = "Menu"
	StatusPlaying  Status = "Playing"
	StatusFinished Status = "Finished"
)

// PlayerID identifies one side of the split screen. NoPlayer marks "no winner".
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

func (id PlayerID) valid() bool { return id == Player1 || id == Player2 }

type PlayerState struct {
	ID              PlayerID       `json:"id"`
	Score           int            `json:"score"`
	Streak          int            `json:"streak"`
	CurrentQuestion *quiz.Question `json:"currentQuestion"`
	IsAnswering     bool           `json:"isAnswering"`
}

// State is a snapshot of a match. Questions are shared with the pool and must
// not be modified.
type State struct {
	Status   Status      `json:"status"`
	Player1  PlayerState `json:"player1"`
	Player2  PlayerState `json:"player2"`
	Winner   PlayerID    `json:"winner"`
	PoolSize int         `json:"poolSize"`
}

// Player returns the state of the given side.
func (s State) Player(id PlayerID) PlayerState {
	if id == Player2 {
		return s.Player2
	}
	return s.Player1
}
