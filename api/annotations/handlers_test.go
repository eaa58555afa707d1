package annotations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/models"
	annotationsvc "github.com/marginote/annotator-api/internal/services/annotations"
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
		DB:                db,
		AnnotationService: annotationsvc.NewService(annotationsvc.NewRepository(db.DB)),
	}

	engine := gin.New()
	group := engine.Group("/api/v1/media/:mediaId")
	RegisterRoutes(group, deps)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createRange(t *testing.T, engine *gin.Engine, mediaID string, startMs, endMs int64, text string) uint {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/v1/media/"+mediaID+"/annotations", gin.H{
		"start_ms": startMs,
		"end_ms":   endMs,
		"text":     text,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp types.AnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestCreateAnnotation(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/media/m1/annotations", gin.H{
		"start_ms": 1500,
		"end_ms":   4200,
		"text":     "intro",
		"category": "pacing",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, int64(1500), resp.StartMs)
	require.NotNil(t, resp.EndMs)
	assert.Equal(t, int64(4200), *resp.EndMs)
	assert.False(t, resp.IsPoint)
	assert.Equal(t, "pacing", resp.Category)
}

func TestCreatePointAnnotation(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/media/m1/annotations", gin.H{
		"start_ms": 0,
		"text":     "marker at media start",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsPoint)
	assert.Nil(t, resp.EndMs)
	assert.Equal(t, int64(0), resp.StartMs)
}

func TestCreateAnnotationInvalidTiming(t *testing.T) {
	engine := setupRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"negative start", gin.H{"start_ms": -1, "text": "x"}},
		{"end before start", gin.H{"start_ms": 4200, "end_ms": 1500, "text": "x"}},
		{"missing start", gin.H{"text": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/api/v1/media/m1/annotations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestListAnnotationsOrdered(t *testing.T) {
	engine := setupRouter(t)

	createRange(t, engine, "m1", 9000, 10000, "later")
	createRange(t, engine, "m1", 1500, 4200, "earlier")
	createRange(t, engine, "m2", 0, 100, "other media")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.AnnotationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Annotations, 2)
	assert.Equal(t, "earlier", resp.Annotations[0].Text)
	assert.Equal(t, "later", resp.Annotations[1].Text)
}

func TestAnnotationStatus(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/media/m1/annotations", gin.H{
		"start_ms": 1500,
		"end_ms":   4200,
		"text":     "intro",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created types.AnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "open", created.Status)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/media/m1/annotations", gin.H{
		"start_ms": 9000,
		"text":     "checked",
		"status":   "resolved",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("filter by status", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations?status=resolved", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.AnnotationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Annotations, 1)
		assert.Equal(t, "checked", resp.Annotations[0].Text)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/media/m1/annotations", gin.H{
			"start_ms": 100,
			"status":   "done",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations?status=done", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("status patch", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/media/m1/annotations/%d", created.ID), gin.H{
			"status": "wont_fix",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.AnnotationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "wont_fix", resp.Status)
		assert.Equal(t, "intro", resp.Text)
	})
}

func TestGetAnnotationWrongMedia(t *testing.T) {
	engine := setupRouter(t)

	id := createRange(t, engine, "m1", 1500, 4200, "intro")

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/media/m2/annotations/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/media/m1/annotations/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateAnnotation(t *testing.T) {
	engine := setupRouter(t)

	id := createRange(t, engine, "m1", 1500, 4200, "intro")

	w := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/media/m1/annotations/%d", id), gin.H{
		"text":     "updated intro",
		"start_ms": 2000,
		"end_ms":   5000,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.AnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "updated intro", resp.Text)
	assert.Equal(t, int64(2000), resp.StartMs)

	// end_ms alone is ambiguous, the full timing must be restated
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/media/m1/annotations/%d", id), gin.H{
		"end_ms": 6000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAnnotationIdempotent(t *testing.T) {
	engine := setupRouter(t)

	id := createRange(t, engine, "m1", 1500, 4200, "intro")

	for i := 0; i < 2; i++ {
		w := doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/media/m1/annotations/%d", id), nil)
		assert.Equal(t, http.StatusOK, w.Code, "delete attempt %d", i+1)
	}

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/media/m1/annotations/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnnotationsAtTime(t *testing.T) {
	engine := setupRouter(t)

	createRange(t, engine, "m1", 1500, 4200, "intro")
	createRange(t, engine, "m1", 60000, 61000, "minute mark")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations/at/3000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ActiveAnnotationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3000), resp.TimeMs)
	require.Len(t, resp.Annotations, 1)
	assert.Equal(t, "intro", resp.Annotations[0].Text)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations/at/5000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Annotations)
}

func TestGetAnnotationsAtTimeBoundaries(t *testing.T) {
	engine := setupRouter(t)

	createRange(t, engine, "m1", 1500, 4200, "intro")

	for _, tt := range []struct {
		timeMs int64
		active bool
	}{
		{1499, false},
		{1500, true},
		{4200, true},
		{4201, false},
	} {
		w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/media/m1/annotations/at/%d", tt.timeMs), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp types.ActiveAnnotationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		if tt.active {
			assert.Len(t, resp.Annotations, 1, "time %d", tt.timeMs)
		} else {
			assert.Empty(t, resp.Annotations, "time %d", tt.timeMs)
		}
	}
}

func TestGetAnnotationsAtNegativeTime(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations/at/-100", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidAnnotationID(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/media/m1/annotations/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
