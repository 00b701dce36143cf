package response

import (
	"errors"
	"net/http"

	"deskhive/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

// StandardApiResponse is the envelope every handler replies with.
type StandardApiResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errs interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errs,
	})
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error maps the apperrors taxonomy onto HTTP status codes. Unrecognized
// errors become a 500 with a generic message so store internals never leak.
func Error(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthenticated):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		code = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		code = http.StatusConflict
		message = err.Error()
	}

	RespondJSON(c, "error", code, message, nil, nil)
}
