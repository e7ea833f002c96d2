// Package feedback delays committing an answer long enough for the screen to
// flash correct or wrong, and swallows repeated taps in the meantime.
package feedback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kiliankoe/quizrace/internal/game"
)

// DefaultDelay matches the length of the answer flash on screen.
const DefaultDelay = 600 * time.Millisecond

var ErrPending = errors.New("answer already pending")

// Result is delivered once a pending answer has been committed.
type Result struct {
	Player  game.PlayerID
	Correct bool
	State   game.State
	Err     error
}

type pending struct {
	code  string
	timer *time.Timer
}

type Gate struct {
	Delay time.Duration

	mu      sync.Mutex
	pending map[string]*pending // code/player -> timer
}

func NewGate(delay time.Duration) *Gate {
	return &Gate{Delay: delay, pending: make(map[string]*pending)}
}

func key(code string, id game.PlayerID) string {
	return fmt.Sprintf("%s/%d", code, id)
}

// Pick registers a tap on option for a player. It returns right away with
// whether the option was correct; after Delay the answer is submitted to the
// match and done receives the outcome. A tap while an answer is pending for
// the same player returns ErrPending.
func (g *Gate) Pick(t *game.Table, id game.PlayerID, option int, done func(Result)) (bool, error) {
	k := key(t.Code, id)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending[k] != nil {
		return false, ErrPending
	}
	pick, err := t.Match.Judge(id, option)
	if err != nil {
		return false, err
	}

	p := &pending{code: t.Code}
	p.timer = time.AfterFunc(g.Delay, func() {
		g.mu.Lock()
		if g.pending[k] != p {
			// cancelled after the timer already fired
			g.mu.Unlock()
			return
		}
		delete(g.pending, k)
		g.mu.Unlock()

		st, err := t.Match.Commit(id, pick)
		if done != nil {
			done(Result{Player: id, Correct: pick.Correct, State: st, Err: err})
		}
	})
	g.pending[k] = p
	return pick.Correct, nil
}

// Pending reports whether a player has an uncommitted answer.
func (g *Gate) Pending(code string, id game.PlayerID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending[key(code, id)] != nil
}

// Cancel drops every uncommitted answer of a table.
func (g *Gate) Cancel(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k, p := range g.pending {
		if p.code == code {
			p.timer.Stop()
			delete(g.pending, k)
		}
	}
}
