package media

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/models"
	mediasvc "github.com/marginote/annotator-api/internal/services/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	deps := &types.Dependencies{
		DB:           db,
		MediaService: mediasvc.NewService(mediasvc.NewRepository(db.DB)),
	}

	engine := gin.New()
	group := engine.Group("/api/v1/media")
	RegisterRoutes(group, deps)
	return engine
}

func writeTempMedia(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resolve(t *testing.T, engine *gin.Engine, path string) types.MediaResponse {
	t.Helper()
	body, err := json.Marshal(gin.H{"path": path})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.MediaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestResolveMedia(t *testing.T) {
	engine := setupRouter(t)
	path := writeTempMedia(t, "episode.mp3", "fake audio bytes")

	resp := resolve(t, engine, path)
	assert.NotEmpty(t, resp.MediaID)
	assert.Equal(t, "episode.mp3", resp.Filename)
	assert.Equal(t, int64(len("fake audio bytes")), resp.Size)

	// Resolving the same file again lands on the same ID
	again := resolve(t, engine, path)
	assert.Equal(t, resp.MediaID, again.MediaID)
}

func TestResolveMediaMissingFile(t *testing.T) {
	engine := setupRouter(t)

	body, _ := json.Marshal(gin.H{"path": "/nonexistent/episode.mp3"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveMediaMissingPath(t *testing.T) {
	engine := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/resolve", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMediaInfo(t *testing.T) {
	engine := setupRouter(t)
	path := writeTempMedia(t, "episode.mp3", "fake audio bytes")
	resolved := resolve(t, engine, path)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/media/"+resolved.MediaID+"/info", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.MediaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resolved.MediaID, resp.MediaID)
	assert.Equal(t, path, resp.Path)
}

func TestGetMediaInfoNotFound(t *testing.T) {
	engine := setupRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/media/unknown/info", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeMediaFile(t *testing.T) {
	engine := setupRouter(t)
	path := writeTempMedia(t, "episode.mp3", "fake audio bytes")
	resolved := resolve(t, engine, path)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/media/"+resolved.MediaID+"/file", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fake audio bytes", w.Body.String())
}

func TestServeMediaFileRange(t *testing.T) {
	engine := setupRouter(t)
	path := writeTempMedia(t, "episode.mp3", "0123456789")
	resolved := resolve(t, engine, path)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/media/"+resolved.MediaID+"/file", nil)
	req.Header.Set("Range", "bytes=2-5")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "2345", w.Body.String())
}

func TestServeMediaFileMoved(t *testing.T) {
	engine := setupRouter(t)
	path := writeTempMedia(t, "episode.mp3", "fake audio bytes")
	resolved := resolve(t, engine, path)

	require.NoError(t, os.Remove(path))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/media/"+resolved.MediaID+"/file", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
