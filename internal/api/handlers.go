package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/quizrace/internal/feedback"
	"github.com/kiliankoe/quizrace/internal/game"
	"github.com/kiliankoe/quizrace/internal/pool"
)

func (h *Handler) createTable(c *gin.Context) {
	t := h.TM.Create()
	c.JSON(http.StatusCreated, h.tableJSON(t))
}

func (h *Handler) activeTable(c *gin.Context) {
	t := h.TM.Active()
	if t == nil {
		fail(c, game.ErrTableNotFound, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, h.tableJSON(t))
}

func (h *Handler) getTable(c *gin.Context) {
	c.JSON(http.StatusOK, h.tableJSON(table(c)))
}

func (h *Handler) start(c *gin.Context) {
	t := table(c)
	h.Gate.Cancel(t.Code)
	st, err := t.Match.Start()
	if err != nil {
		fail(c, err, http.StatusInternalServerError)
		return
	}
	h.notify.StateChanged(t.Code, st)
	c.JSON(http.StatusOK, st)
}

func (h *Handler) menu(c *gin.Context) {
	t := table(c)
	h.Gate.Cancel(t.Code)
	st, err := t.Match.Menu()
	if err != nil {
		fail(c, err, http.StatusInternalServerError)
		return
	}
	h.notify.StateChanged(t.Code, st)
	c.JSON(http.StatusOK, st)
}

type answerReq struct {
	PlayerID game.PlayerID `json:"playerId" binding:"required"`
	Correct  bool          `json:"correct"`
}

// answer commits a judged answer right away, skipping the feedback delay.
func (h *Handler) answer(c *gin.Context) {
	var req answerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err.Error())
		return
	}
	t := table(c)
	st, err := t.Match.SubmitAnswer(req.PlayerID, req.Correct)
	if err != nil {
		fail(c, err, http.StatusInternalServerError)
		return
	}
	h.notify.AnswerCommitted(t.Code, feedback.Result{Player: req.PlayerID, Correct: req.Correct, State: st})
	c.JSON(http.StatusOK, st)
}

type pickReq struct {
	PlayerID game.PlayerID `json:"playerId" binding:"required"`
	Option   *int          `json:"option" binding:"required"`
}

// pick reports right away whether the option was correct; the answer is
// committed once the feedback delay has passed.
func (h *Handler) pick(c *gin.Context) {
	var req pickReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err.Error())
		return
	}
	t := table(c)
	correct, err := h.Gate.Pick(t, req.PlayerID, *req.Option, func(res feedback.Result) {
		h.notify.AnswerCommitted(t.Code, res)
	})
	if err != nil {
		fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"playerId": req.PlayerID, "correct": correct, "delayMs": h.Gate.Delay.Milliseconds()})
}

func (h *Handler) getPool(c *gin.Context) {
	qs := table(c).Match.Pool()
	c.JSON(http.StatusOK, gin.H{"count": len(qs), "questions": qs})
}

type importReq struct {
	Sheet string `json:"sheet"`
	CSV   string `json:"csv"`
}

func (h *Handler) importPool(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err.Error())
		return
	}
	hasSheet, hasCSV := strings.TrimSpace(req.Sheet) != "", strings.TrimSpace(req.CSV) != ""
	if hasSheet == hasCSV {
		badBody(c, "exactly one of sheet or csv is required")
		return
	}

	t := table(c)
	var (
		n      int
		err    error
		source pool.Source
	)
	if hasSheet {
		source = pool.SourceSheet
		n, err = h.Pool.ImportSheet(c.Request.Context(), t.Match, req.Sheet)
	} else {
		source = pool.SourceCSV
		n, err = h.Pool.ImportCSV(t.Match, req.CSV)
	}
	if err != nil {
		fail(c, err, http.StatusBadGateway)
		return
	}
	h.loaded(c, t, n, source)
}

func (h *Handler) generatePool(c *gin.Context) {
	t := table(c)
	n, err := h.Pool.Generate(c.Request.Context(), t.Match)
	if err != nil {
		fail(c, err, http.StatusBadGateway)
		return
	}
	h.loaded(c, t, n, pool.SourceGenerated)
}

func (h *Handler) defaultPool(c *gin.Context) {
	t := table(c)
	n, err := h.Pool.ResetDefault(t.Match)
	if err != nil {
		fail(c, err, http.StatusInternalServerError)
		return
	}
	h.loaded(c, t, n, pool.SourceDefault)
}

func (h *Handler) loaded(c *gin.Context, t *game.Table, n int, source pool.Source) {
	if n > 0 {
		h.notify.PoolLoaded(t.Code, n, source)
	}
	c.JSON(http.StatusOK, gin.H{"count": n, "source": source, "poolSize": t.Match.State().PoolSize})
}
