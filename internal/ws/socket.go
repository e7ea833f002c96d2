package ws

import (
    "context"
    "net/http"
    "strings"
    "sync"

    "github.com/gin-gonic/gin"
    socketio "github.com/googollee/go-socket.io"
    "github.com/kiliankoe/quizrace/internal/api"
    "github.com/kiliankoe/quizrace/internal/feedback"
    "github.com/kiliankoe/quizrace/internal/game"
    "github.com/kiliankoe/quizrace/internal/pool"
    "github.com/rs/zerolog/log"
)

type Sound string

const (
    SoundClick   Sound = "click"
    SoundCorrect Sound = "correct"
    SoundWrong   Sound = "wrong"
    SoundEngine  Sound = "engine"
    SoundWin     Sound = "win"
)

var _ api.Notifier = (*Server)(nil)

type ConnCtx struct {
    Code string
}

type Server struct {
    TM   *game.Manager
    Pool *pool.Service
    Gate *feedback.Gate

    mu sync.RWMutex
    io *socketio.Server
}

func New(tm *game.Manager, ps *pool.Service, gate *feedback.Gate) *Server {
    return &Server{TM: tm, Pool: ps, Gate: gate}
}

// Mount attaches Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
    io := socketio.NewServer(nil)
    srv.mu.Lock()
    srv.io = io
    srv.mu.Unlock()

    io.OnConnect("/", func(s socketio.Conn) error {
        s.SetContext(&ConnCtx{})
        log.Info().Str("sid", s.ID()).Msg("socket connected")
        return nil
    })

    // table:create opens a new table and binds this screen to it
    io.OnEvent("/", "table:create", func(s socketio.Conn) map[string]any {
        t := srv.TM.Create()
        srv.bind(s, t.Code)
        log.Info().Str("sid", s.ID()).Str("code", t.Code).Msg("table:create")
        s.Emit("match:state", t.Match.State())
        return map[string]any{"code": t.Code, "canGenerate": srv.Pool.CanGenerate()}
    })

    // table:join binds to an existing table; an empty code means the active one
    io.OnEvent("/", "table:join", func(s socketio.Conn, payload struct {
        Code string `json:"code"`
    }) map[string]any {
        var t *game.Table
        if payload.Code == "" {
            t = srv.TM.Active()
        } else {
            t, _ = srv.TM.Get(strings.ToUpper(payload.Code))
        }
        if t == nil {
            return srv.err(s, game.ErrTableNotFound)
        }
        srv.bind(s, t.Code)
        log.Info().Str("sid", s.ID()).Str("code", t.Code).Msg("table:join")
        s.Emit("match:state", t.Match.State())
        return map[string]any{"code": t.Code, "canGenerate": srv.Pool.CanGenerate()}
    })

    io.OnEvent("/", "match:start", func(s socketio.Conn) map[string]any {
        t, err := srv.table(s)
        if err != nil {
            return srv.err(s, err)
        }
        srv.Gate.Cancel(t.Code)
        st, err := t.Match.Start()
        if err != nil {
            return srv.err(s, err)
        }
        log.Info().Str("code", t.Code).Int("pool", st.PoolSize).Msg("match:start")
        srv.Sound(t.Code, SoundClick)
        srv.StateChanged(t.Code, st)
        return map[string]any{"ok": true}
    })

    io.OnEvent("/", "match:pick", func(s socketio.Conn, payload struct {
        PlayerID game.PlayerID `json:"playerId"`
        Option   int           `json:"option"`
    }) map[string]any {
        t, err := srv.table(s)
        if err != nil {
            return srv.err(s, err)
        }
        correct, err := srv.Gate.Pick(t, payload.PlayerID, payload.Option, func(res feedback.Result) {
            srv.AnswerCommitted(t.Code, res)
        })
        if err != nil {
            return srv.err(s, err)
        }
        srv.broadcast(t.Code, "match:feedback", map[string]any{"playerId": payload.PlayerID, "correct": correct})
        srv.Sound(t.Code, pickSound(correct))
        return map[string]any{"correct": correct}
    })

    io.OnEvent("/", "match:menu", func(s socketio.Conn) map[string]any {
        t, err := srv.table(s)
        if err != nil {
            return srv.err(s, err)
        }
        srv.Gate.Cancel(t.Code)
        st, err := t.Match.Menu()
        if err != nil {
            return srv.err(s, err)
        }
        log.Info().Str("code", t.Code).Msg("match:menu")
        srv.StateChanged(t.Code, st)
        return map[string]any{"ok": true}
    })

    io.OnEvent("/", "pool:import", func(s socketio.Conn, payload struct {
        Sheet string `json:"sheet"`
        CSV   string `json:"csv"`
    }) map[string]any {
        t, err := srv.table(s)
        if err != nil {
            return srv.err(s, err)
        }
        var n int
        source := pool.SourceCSV
        if strings.TrimSpace(payload.Sheet) != "" {
            source = pool.SourceSheet
            n, err = srv.Pool.ImportSheet(context.Background(), t.Match, payload.Sheet)
        } else {
            n, err = srv.Pool.ImportCSV(t.Match, payload.CSV)
        }
        if err != nil {
            return srv.err(s, err)
        }
        srv.PoolLoaded(t.Code, n, source)
        return map[string]any{"count": n}
    })

    io.OnEvent("/", "pool:generate", func(s socketio.Conn) map[string]any {
        t, err := srv.table(s)
        if err != nil {
            return srv.err(s, err)
        }
        // generation can take a while; the result arrives as pool:loaded
        go func(code string, m *game.Match) {
            n, err := srv.Pool.Generate(context.Background(), m)
            if err != nil {
                status, errCode := api.ErrorCode(err, http.StatusBadGateway)
                log.Error().Err(err).Str("code", code).Int("status", status).Msg("pool:generate")
                srv.broadcast(code, "error", map[string]any{"code": errCode, "message": err.Error()})
                return
            }
            if n == 0 {
                log.Warn().Str("code", code).Msg("pool:generate returned no usable questions")
            }
            srv.PoolLoaded(code, n, pool.SourceGenerated)
        }(t.Code, t.Match)
        return map[string]any{"ok": true}
    })

    io.OnEvent("/", "pool:default", func(s socketio.Conn) map[string]any {
        t, err := srv.table(s)
        if err != nil {
            return srv.err(s, err)
        }
        n, err := srv.Pool.ResetDefault(t.Match)
        if err != nil {
            return srv.err(s, err)
        }
        srv.PoolLoaded(t.Code, n, pool.SourceDefault)
        return map[string]any{"count": n}
    })

    io.OnError("/", func(s socketio.Conn, e error) {
        log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
    })
    io.OnDisconnect("/", func(s socketio.Conn, reason string) {
        log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
    })

    go io.Serve()

    // Mount to router
    r.GET("/socket.io/*any", gin.WrapH(io))
    r.POST("/socket.io/*any", gin.WrapH(io))

    // Basic CORS preflight for Socket.IO POST
    r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", "*")
        c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        c.Header("Access-Control-Allow-Headers", "Content-Type")
        c.Status(http.StatusNoContent)
    })

    return io
}

// StateChanged pushes a fresh match state to every screen of a table.
func (srv *Server) StateChanged(code string, st game.State) {
    srv.broadcast(code, "match:state", st)
}

// AnswerCommitted follows up a pick once its answer has been applied.
func (srv *Server) AnswerCommitted(code string, res feedback.Result) {
    if res.Err != nil {
        // the match moved on (menu or restart) before the answer landed
        log.Debug().Err(res.Err).Str("code", code).Int("player", int(res.Player)).Msg("answer dropped")
        return
    }
    p := res.State.Player(res.Player)
    log.Debug().Str("code", code).Int("player", int(res.Player)).Bool("correct", res.Correct).Int("score", p.Score).Int("streak", p.Streak).Msg("answer committed")
    if s := commitSound(res); s != "" {
        srv.Sound(code, s)
    }
    srv.StateChanged(code, res.State)
}

func (srv *Server) PoolLoaded(code string, count int, source pool.Source) {
    srv.broadcast(code, "pool:loaded", map[string]any{"count": count, "source": source})
    if t, err := srv.TM.Get(code); err == nil {
        srv.StateChanged(code, t.Match.State())
    }
}

func (srv *Server) Sound(code string, s Sound) {
    srv.broadcast(code, "match:sound", map[string]any{"type": s})
}

func (srv *Server) broadcast(code, event string, payload any) {
    srv.mu.RLock()
    io := srv.io
    srv.mu.RUnlock()
    if io == nil {
        return
    }
    io.BroadcastToRoom("/", code, event, payload)
}

func (srv *Server) bind(s socketio.Conn, code string) {
    if ctx, ok := s.Context().(*ConnCtx); ok && ctx.Code != "" && ctx.Code != code {
        s.Leave(ctx.Code)
    }
    s.SetContext(&ConnCtx{Code: code})
    s.Join(code)
}

func (srv *Server) table(s socketio.Conn) (*game.Table, error) {
    ctx, _ := s.Context().(*ConnCtx)
    if ctx == nil || ctx.Code == "" {
        return nil, game.ErrTableNotFound
    }
    return srv.TM.Get(ctx.Code)
}

func (srv *Server) err(s socketio.Conn, err error) map[string]any {
    _, code := api.ErrorCode(err, http.StatusInternalServerError)
    s.Emit("error", map[string]any{"code": code, "message": err.Error()})
    return map[string]any{"error": err.Error()}
}

func pickSound(correct bool) Sound {
    if correct {
        return SoundCorrect
    }
    return SoundWrong
}

// commitSound is the cue for an applied answer. A miss has none.
func commitSound(res feedback.Result) Sound {
    switch {
    case res.State.Status == game.StatusFinished && res.State.Winner == res.Player:
        return SoundWin
    case res.Correct:
        return SoundEngine
    }
    return ""
}
