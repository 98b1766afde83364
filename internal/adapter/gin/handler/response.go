package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pkgerrors "event-registry-service/pkg/errors"
)

// Response is the uniform envelope for all entity operations. Data is
// omitted for void operations; callers must check Success before reading it.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true})
}

// respondError converts any usecase or storage error into the envelope.
// No error escapes a public operation uncaught.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "an internal error occurred"

	switch {
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case pkgerrors.IsAlreadyExists(err):
		status = http.StatusConflict
		message = err.Error()
	case pkgerrors.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case pkgerrors.IsStorageUnavailable(err):
		status = http.StatusServiceUnavailable
		message = err.Error()
	default:
		log.Error("unclassified handler error", zap.Error(err))
	}

	c.JSON(status, Response{Success: false, Error: message})
}
