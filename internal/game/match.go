package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/kiliankoe/quizrace/internal/quiz"
)

var (
	ErrInvalidStatus    = errors.New("invalid match status for action")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrNoQuestion       = errors.New("player has no current question")
	ErrAlreadyAnswering = errors.New("answer already committed")
	ErrOptionRange      = errors.New("option out of range")
	ErrEmptyPool        = errors.New("question pool is empty")
	ErrMatchInProgress  = errors.New("pool cannot change while a match is running")
	ErrStaleAnswer      = errors.New("answer is for a question no longer shown")
)

// Match owns the question pool and both player slots of one split-screen
// game. Every exported method is a single event and runs to completion under
// the match lock.
type Match struct {
	mu sync.Mutex

	rng      *rand.Rand
	onFinish func(State)

	pool    []quiz.Question
	round   int // bumped by every Start
	status  Status
	winner  PlayerID
	players [2]PlayerState
}

type Option func(*Match)

// WithRand fixes the random source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(m *Match) { m.rng = r }
}

// WithFinishHook registers fn to run, outside the lock, whenever a match ends
// in a win.
func WithFinishHook(fn func(State)) Option {
	return func(m *Match) { m.onFinish = fn }
}

func NewMatch(pool []quiz.Question, opts ...Option) *Match {
	m := &Match{
		pool:    pool,
		status:  StatusMenu,
		players: [2]PlayerState{{ID: Player1}, {ID: Player2}},
	}
	for _, o := range opts {
		o(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return m
}

// Start deals the first question to each player and switches to Playing.
func (m *Match) Start() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusPlaying {
		return m.snapshot(), ErrInvalidStatus
	}
	if len(m.pool) == 0 {
		return m.snapshot(), ErrEmptyPool
	}

	// the two halves of a shuffled pool keep the opening questions apart;
	// a single question is shared
	perm := m.rng.Perm(len(m.pool))
	first := &m.pool[perm[0]]
	second := &m.pool[perm[len(perm)/2]]

	m.players[0] = PlayerState{ID: Player1, CurrentQuestion: first}
	m.players[1] = PlayerState{ID: Player2, CurrentQuestion: second}
	m.status = StatusPlaying
	m.winner = NoPlayer
	m.round++
	return m.snapshot(), nil
}

// SubmitAnswer commits an answer for a player. A correct answer moves the
// player forward and may win the match; a wrong one only breaks the streak.
// Unless the match ended, the player gets a new question straight away.
func (m *Match) SubmitAnswer(id PlayerID, correct bool) (State, error) {
	m.mu.Lock()
	return m.submitLocked(id, nil, correct)
}

// Pick is a judged tap on an option, bound to the match round and question
// it answered.
type Pick struct {
	Round      int
	QuestionID string
	Correct    bool
}

// Judge checks option against the player's current question without
// changing the match.
func (m *Match) Judge(id PlayerID, option int) (Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.answerable(id)
	if err != nil {
		return Pick{}, err
	}
	if option < 0 || option >= quiz.OptionCount {
		return Pick{}, ErrOptionRange
	}
	return Pick{Round: m.round, QuestionID: p.CurrentQuestion.ID, Correct: p.CurrentQuestion.IsCorrect(option)}, nil
}

// Commit submits a judged pick. It fails with ErrStaleAnswer when the match
// was restarted or the player has moved on to another question since the
// pick was judged.
func (m *Match) Commit(id PlayerID, pick Pick) (State, error) {
	m.mu.Lock()
	return m.submitLocked(id, &pick, pick.Correct)
}

// submitLocked applies an answer and releases the lock before the finish
// hook runs. A nil pick skips the staleness check.
func (m *Match) submitLocked(id PlayerID, pick *Pick, correct bool) (State, error) {
	p, err := m.answerable(id)
	if err == nil && pick != nil && (pick.Round != m.round || pick.QuestionID != p.CurrentQuestion.ID) {
		err = ErrStaleAnswer
	}
	if err != nil {
		st := m.snapshot()
		m.mu.Unlock()
		return st, err
	}

	if correct {
		p.Score++
		p.Streak++
	} else {
		p.Streak = 0
	}
	p.IsAnswering = true

	if correct && p.Score >= WinningScore {
		m.winner = id
		m.status = StatusFinished
		st := m.snapshot()
		hook := m.onFinish
		m.mu.Unlock()
		if hook != nil {
			hook(st)
		}
		return st, nil
	}

	p.CurrentQuestion = m.nextQuestion(p.CurrentQuestion, m.opponent(id).CurrentQuestion)
	p.IsAnswering = false
	st := m.snapshot()
	m.mu.Unlock()
	return st, nil
}

// Menu returns a finished match to the menu. The pool is kept.
func (m *Match) Menu() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusPlaying {
		return m.snapshot(), ErrInvalidStatus
	}
	m.status = StatusMenu
	m.winner = NoPlayer
	return m.snapshot(), nil
}

func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Pool returns a copy of the active pool.
func (m *Match) Pool() []quiz.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]quiz.Question(nil), m.pool...)
}

// LoadPool replaces the pool wholesale.
func (m *Match) LoadPool(qs []quiz.Question) error {
	if len(qs) == 0 {
		return ErrEmptyPool
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusPlaying {
		return ErrMatchInProgress
	}
	m.pool = qs
	return nil
}

// ImportRows validates parsed sheet rows and installs them as the new pool.
// On any error the previous pool stays active.
func (m *Match) ImportRows(rows [][]string) (int, error) {
	qs, err := quiz.ImportRows(rows)
	if err != nil {
		return 0, err
	}
	if err := m.LoadPool(qs); err != nil {
		return 0, err
	}
	return len(qs), nil
}

// LoadGenerated installs the usable generated records. When none survive the
// pool is left as it is and nil is returned.
func (m *Match) LoadGenerated(records []quiz.Record) ([]quiz.Question, error) {
	qs := quiz.FromGenerated(records)
	if len(qs) == 0 {
		return nil, nil
	}
	if err := m.LoadPool(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// answerable returns the player slot if it may receive an answer.
// Callers hold the lock.
func (m *Match) answerable(id PlayerID) (*PlayerState, error) {
	if !id.valid() {
		return nil, ErrUnknownPlayer
	}
	if m.status != StatusPlaying {
		return nil, ErrInvalidStatus
	}
	p := &m.players[id-1]
	if p.CurrentQuestion == nil {
		return nil, ErrNoQuestion
	}
	if p.IsAnswering {
		return nil, ErrAlreadyAnswering
	}
	return p, nil
}

func (m *Match) opponent(id PlayerID) *PlayerState {
	if id == Player1 {
		return &m.players[1]
	}
	return &m.players[0]
}

// nextQuestion draws uniformly among the questions neither player is looking
// at. If that leaves nothing, any question will do.
func (m *Match) nextQuestion(own, other *quiz.Question) *quiz.Question {
	candidates := make([]int, 0, len(m.pool))
	for i := range m.pool {
		id := m.pool[i].ID
		if own != nil && id == own.ID {
			continue
		}
		if other != nil && id == other.ID {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return &m.pool[m.rng.Intn(len(m.pool))]
	}
	return &m.pool[candidates[m.rng.Intn(len(candidates))]]
}

func (m *Match) snapshot() State {
	return State{
		Status:   m.status,
		Player1:  m.players[0],
		Player2:  m.players[1],
		Winner:   m.winner,
		PoolSize: len(m.pool),
	}
}
