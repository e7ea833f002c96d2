package game

import (
    "errors"
    "math/rand"
    "sync"
    "time"

    "github.com/kiliankoe/quizrace/internal/quiz"
    "github.com/rs/zerolog/log"
)

var ErrTableNotFound = errors.New("table not found")

// Table is one shared screen running its own match.
type Table struct {
    Code      string
    CreatedAt time.Time
    Match     *Match
}

type ManagerOptions struct {
    // DefaultPool seeds every new table. Each table gets its own copy.
    DefaultPool []quiz.Question
    // SingleTable drops older tables when a new one is created.
    SingleTable bool
    // ExportFile, when set, receives a results block for every finished match.
    ExportFile string
}

type Manager struct {
    mu     sync.RWMutex
    opts   ManagerOptions
    tables map[string]*Table
    active string // most recently created table
}

func NewManager(opts ManagerOptions) *Manager {
    return &Manager{opts: opts, tables: make(map[string]*Table)}
}

// DefaultPool returns a copy of the pool new tables start with.
func (tm *Manager) DefaultPool() []quiz.Question {
    return append([]quiz.Question(nil), tm.opts.DefaultPool...)
}

func (tm *Manager) Create() *Table {
    tm.mu.Lock()
    defer tm.mu.Unlock()

    code := randomCode(5)
    for tm.tables[code] != nil {
        code = randomCode(5)
    }
    var opts []Option
    if tm.opts.ExportFile != "" {
        file := tm.opts.ExportFile
        opts = append(opts, WithFinishHook(func(st State) {
            if err := ExportResult(code, st, file); err != nil {
                log.Error().Err(err).Str("code", code).Msg("failed to export match result")
                return
            }
            log.Info().Str("code", code).Str("file", file).Msg("exported match result")
        }))
    }
    t := &Table{
        Code:      code,
        CreatedAt: time.Now().UTC(),
        Match:     NewMatch(tm.DefaultPool(), opts...),
    }

    if tm.opts.SingleTable {
        clear(tm.tables)
    }
    tm.tables[code] = t
    tm.active = code
    return t
}

func (tm *Manager) Get(code string) (*Table, error) {
    tm.mu.RLock()
    defer tm.mu.RUnlock()
    t := tm.tables[code]
    if t == nil {
        return nil, ErrTableNotFound
    }
    return t, nil
}

func (tm *Manager) Active() *Table {
    tm.mu.RLock()
    defer tm.mu.RUnlock()
    if tm.active == "" {
        return nil
    }
    return tm.tables[tm.active]
}

func randomCode(n int) string {
    letters := []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")
    b := make([]rune, n)
    for i := range b {
        b[i] = letters[rand.Intn(len(letters))]
    }
    return string(b)
}
