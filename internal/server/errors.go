package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	rollupdomain "github.com/creatorpulse/creatorpulse/internal/rollup/domain"
	syncerdomain "github.com/creatorpulse/creatorpulse/internal/syncer/domain"
	"gorm.io/gorm"
)

type errorResponse struct {
	Error string `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

// ErrorHandlingMiddleware turns the last handler error into a JSON response.
// Handlers report failures through AbortWithError and never write error
// bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case isNotFoundError(err):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, rollupdomain.ErrAggregationInProgress):
		return http.StatusConflict, rollupdomain.ErrAggregationInProgress.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, accountdomain.ErrInvalidUser),
		errors.Is(err, accountdomain.ErrInvalidPlatform),
		errors.Is(err, accountdomain.ErrMissingHandle),
		errors.Is(err, activitydomain.ErrEmptyEvents),
		errors.Is(err, activitydomain.ErrInvalidUser),
		errors.Is(err, activitydomain.ErrInvalidPlatform),
		errors.Is(err, activitydomain.ErrInvalidEventType),
		errors.Is(err, rollupdomain.ErrInvalidUser),
		errors.Is(err, syncerdomain.ErrInvalidUser):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
