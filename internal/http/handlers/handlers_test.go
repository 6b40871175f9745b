package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/open-agent-labs/skills-catalog/internal/catalog"
	"github.com/open-agent-labs/skills-catalog/internal/db"
	"github.com/open-agent-labs/skills-catalog/internal/repository"
	"github.com/open-agent-labs/skills-catalog/internal/service"
)

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newSQLiteStore(t *testing.T) *repository.SkillRepository {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "skills.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(ctx, conn, db.Migrations))
	return repository.NewSkillRepository(conn)
}

// newSkillHandler собирает handler поверх вшитого каталога и, при наличии, sqlite хранилища.
func newSkillHandler(t *testing.T, store *repository.SkillRepository) *SkillHandler {
	t.Helper()
	fallback, err := catalog.EmbeddedSource()
	require.NoError(t, err)

	if store == nil {
		return NewSkillHandler(catalog.NewService(nil, fallback), service.NewSkillService(nil))
	}
	return NewSkillHandler(catalog.NewService(store, fallback), service.NewSkillService(store))
}

func perform(r http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
