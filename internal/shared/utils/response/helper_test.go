package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"deskhive/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w
}

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.Invalid("bad date"), http.StatusBadRequest},
		{apperrors.ErrUnauthenticated, http.StatusUnauthorized},
		{apperrors.Forbidden("not yours"), http.StatusForbidden},
		{apperrors.NotFound("booking"), http.StatusNotFound},
		{apperrors.Conflict("seat taken"), http.StatusConflict},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := respond(tc.err)
		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}

func TestError_WrappedSentinelStillMaps(t *testing.T) {
	err := fmt.Errorf("cancel failed: %w", apperrors.Conflict("booking is not active"))
	w := respond(err)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestError_UnknownErrorHidesDetails(t *testing.T) {
	w := respond(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
