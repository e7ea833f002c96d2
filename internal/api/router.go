// Package api exposes tables, matches and their question pools over HTTP.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/quizrace/internal/feedback"
	"github.com/kiliankoe/quizrace/internal/game"
	"github.com/kiliankoe/quizrace/internal/pool"
	"github.com/rs/zerolog/log"
)

// Notifier is told about changes made through HTTP so live screens follow.
type Notifier interface {
	StateChanged(code string, st game.State)
	AnswerCommitted(code string, res feedback.Result)
	PoolLoaded(code string, count int, source pool.Source)
}

type nopNotifier struct{}

func (nopNotifier) StateChanged(string, game.State)         {}
func (nopNotifier) AnswerCommitted(string, feedback.Result) {}
func (nopNotifier) PoolLoaded(string, int, pool.Source)     {}

type Handler struct {
	TM     *game.Manager
	Pool   *pool.Service
	Gate   *feedback.Gate
	notify Notifier
}

func New(tm *game.Manager, ps *pool.Service, gate *feedback.Gate, n Notifier) *Handler {
	if n == nil {
		n = nopNotifier{}
	}
	return &Handler{TM: tm, Pool: ps, Gate: gate, notify: n}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC(), "canGenerate": h.Pool.CanGenerate()})
	})

	api := r.Group("/api")
	api.POST("/tables", h.createTable)
	api.GET("/tables/active", h.activeTable)

	t := api.Group("/tables/:code", h.loadTable)
	t.GET("", h.getTable)
	t.POST("/start", h.start)
	t.POST("/answer", h.answer)
	t.POST("/pick", h.pick)
	t.POST("/menu", h.menu)
	t.GET("/pool", h.getPool)
	t.POST("/pool/import", h.importPool)
	t.POST("/pool/generate", h.generatePool)
	t.POST("/pool/default", h.defaultPool)
}

// Logger logs every request through zerolog, leaving out socket.io polling.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		log.Info().Str("method", c.Request.Method).Str("path", path).Int("status", c.Writer.Status()).Dur("dur", time.Since(start)).Msg("http")
	}
}

func (h *Handler) loadTable(c *gin.Context) {
	t, err := h.TM.Get(strings.ToUpper(c.Param("code")))
	if err != nil {
		fail(c, err, http.StatusInternalServerError)
		return
	}
	c.Set("table", t)
	c.Next()
}

func table(c *gin.Context) *game.Table {
	return c.MustGet("table").(*game.Table)
}

// tableJSON is what a (re)connecting screen needs to draw a table, including
// answers still in flight and whether generation is available.
func (h *Handler) tableJSON(t *game.Table) gin.H {
	pending := []game.PlayerID{}
	for _, id := range []game.PlayerID{game.Player1, game.Player2} {
		if h.Gate.Pending(t.Code, id) {
			pending = append(pending, id)
		}
	}
	return gin.H{
		"code":        t.Code,
		"createdAt":   t.CreatedAt,
		"state":       t.Match.State(),
		"pending":     pending,
		"canGenerate": h.Pool.CanGenerate(),
	}
}
