package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
)

func record(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/skills?x=1", nil)
	handler(c)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSuccess(t *testing.T) {
	w, env := record(t, func(c *gin.Context) { Success(c, gin.H{"ok": true}) })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, map[string]interface{}{"ok": true}, env.Data)
}

func TestError_KnownCodes(t *testing.T) {
	invalid := apperror.New(apperror.ErrCodeValidation, "name is required")
	cases := map[error]int{
		apperror.ErrSkillNotFound:   404,
		apperror.ErrDuplicateName:   409,
		apperror.ErrUnauthorized:    401,
		apperror.Upstream(404, nil): 502,
		invalid:                     400,
	}
	for err, code := range cases {
		w, env := record(t, func(c *gin.Context) { Error(c, err) })
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, code, env.Code, err.Error())
		assert.Nil(t, env.Data)
	}
}

func TestError_HidesInternalCause(t *testing.T) {
	_, env := record(t, func(c *gin.Context) { Error(c, errors.New("pq: password authentication failed")) })

	assert.Equal(t, 500, env.Code)
	assert.Equal(t, "internal server error", env.Message)
}

func TestTooManyRequests(t *testing.T) {
	w, env := record(t, TooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 429, env.Code)
}
