package api

import (
	"errors"
	"net/http"

	"github.com/ah-its-andy/reformed/internal/db"
	"github.com/ah-its-andy/reformed/internal/logging"
	"github.com/ah-its-andy/reformed/internal/worker"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrInvalidInputFormat  = errors.New("invalid input format")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrFileCount           = errors.New("exactly 1 document must be passed")
	ErrBadRequest          = errors.New("bad request")
	ErrTooLarge            = errors.New("upload too large")
	ErrBusy                = errors.New("no conversion slot available")
	ErrHistoryDisabled     = errors.New("conversion history is disabled")

	errRouteNotFound = errors.New("not found")
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInputFormat),
		errors.Is(err, ErrInvalidOutputFormat),
		errors.Is(err, ErrFileCount),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBusy), errors.Is(err, worker.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrHistoryDisabled),
		errors.Is(err, db.ErrNotFound),
		errors.Is(err, errRouteNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the JSON error response for err and notes it on rec when
// the request is being recorded.
func (s *Server) fail(c *gin.Context, rec *conversionRun, err error) {
	code := statusFor(err)
	if rec != nil {
		rec.fail(err)
	}
	_ = c.Error(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", logging.RequestID(c)),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(code, errorBody{Code: code, Error: err.Error()})
}
