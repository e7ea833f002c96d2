package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/quizrace/internal/feedback"
	"github.com/kiliankoe/quizrace/internal/game"
	"github.com/kiliankoe/quizrace/internal/pool"
	"github.com/kiliankoe/quizrace/internal/quiz"
	"github.com/kiliankoe/quizrace/internal/sheet"
)

// ErrorCode maps an engine or pool error to a short machine-readable code and
// an HTTP status. Errors it does not know get fallback.
func ErrorCode(err error, fallback int) (int, string) {
	var verr *quiz.ValidationError
	switch {
	case errors.Is(err, game.ErrTableNotFound):
		return http.StatusNotFound, "table_not_found"
	case errors.Is(err, game.ErrInvalidStatus):
		return http.StatusConflict, "invalid_status"
	case errors.Is(err, game.ErrMatchInProgress):
		return http.StatusConflict, "match_in_progress"
	case errors.Is(err, game.ErrEmptyPool):
		return http.StatusConflict, "empty_pool"
	case errors.Is(err, game.ErrAlreadyAnswering), errors.Is(err, feedback.ErrPending), errors.Is(err, game.ErrStaleAnswer):
		return http.StatusConflict, "already_answering"
	case errors.Is(err, game.ErrNoQuestion):
		return http.StatusConflict, "no_question"
	case errors.Is(err, game.ErrUnknownPlayer), errors.Is(err, game.ErrOptionRange), errors.Is(err, sheet.ErrMissingID):
		return http.StatusBadRequest, "bad_request"
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, pool.ErrGenerationDisabled):
		return http.StatusServiceUnavailable, "generation_disabled"
	case errors.Is(err, sheet.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "sheet_too_large"
	case errors.Is(err, sheet.ErrNotPublic):
		return http.StatusBadGateway, "sheet_unavailable"
	}
	if fallback == http.StatusBadGateway {
		return fallback, "upstream_failed"
	}
	return fallback, "internal"
}

func fail(c *gin.Context, err error, fallback int) {
	status, code := ErrorCode(err, fallback)
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": err.Error()})
}

func badBody(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": msg})
}
