package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerwatch/internal/extractor"
	"careerwatch/internal/guard"
	"careerwatch/internal/pipeline"
	"careerwatch/internal/storage/postgres"
)

func errorBody(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *guard.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, postgres.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, extractor.ErrRootUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response. Only client errors and an unreachable
// root URL are echoed back; other server side errors get a fixed message.
func (s *Server) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody(publicMessage(status, err)))
}

func publicMessage(status int, err error) string {
	switch {
	case status < http.StatusInternalServerError:
		return err.Error()
	case errors.Is(err, extractor.ErrRootUnreachable):
		return err.Error()
	case status == http.StatusBadGateway:
		return "failed to process site"
	default:
		return "internal server error"
	}
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(msg))
}
