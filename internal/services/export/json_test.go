package export

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/internal/services/annotations"
	"github.com/marginote/annotator-api/pkg/timecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	withShapes := rangeAnnotation(1, 1500, 4200, "intro")
	require.NoError(t, withShapes.SetShapes([]models.Shape{
		{X: 10, Y: 20, Width: 30, Height: 40},
	}))

	out, err := JSON([]models.Annotation{
		withShapes,
		pointAnnotation(2, 3000, "marker"),
	}, Options{})
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, "m1", doc.MediaID)
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Annotations, 2)

	first := doc.Annotations[0]
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, int64(1500), first.StartMs)
	require.NotNil(t, first.EndMs)
	assert.Equal(t, int64(4200), *first.EndMs)
	require.Len(t, first.Shapes, 1)
	assert.Equal(t, 10.0, first.Shapes[0].X)

	second := doc.Annotations[1]
	assert.Nil(t, second.EndMs, "point annotations keep a null end")
	assert.Empty(t, second.Shapes)
}

func setupService(t *testing.T) annotations.Service {
	t.Helper()
	db, err := database.Initialize(":memory:", database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return annotations.NewService(annotations.NewRepository(db.DB))
}

func TestJSONRoundTrip(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	timing, err := timecode.RangeTiming(1500, 4200)
	require.NoError(t, err)
	_, err = service.Create(ctx, "m1", annotations.CreateRequest{
		Timing:   timing,
		Text:     "intro",
		Category: models.CategoryPacing,
		Status:   models.StatusInProgress,
		Author:   "reviewer",
		Shapes:   []models.Shape{{X: 5, Y: 5, Width: 50, Height: 50}},
	})
	require.NoError(t, err)

	point, err := timecode.PointTiming(9000)
	require.NoError(t, err)
	_, err = service.Create(ctx, "m1", annotations.CreateRequest{Timing: point, Text: "marker"})
	require.NoError(t, err)

	original, err := service.ListByMedia(ctx, "m1", annotations.ListFilter{})
	require.NoError(t, err)

	doc, err := JSON(original, Options{})
	require.NoError(t, err)

	imported, err := Import(ctx, service, "m2", doc)
	require.NoError(t, err)
	require.Len(t, imported, len(original))

	reread, err := service.ListByMedia(ctx, "m2", annotations.ListFilter{})
	require.NoError(t, err)
	require.Len(t, reread, len(original))

	for i := range original {
		assert.Equal(t, original[i].StartMs, reread[i].StartMs)
		assert.Equal(t, original[i].EndMs == nil, reread[i].EndMs == nil)
		if original[i].EndMs != nil {
			assert.Equal(t, *original[i].EndMs, *reread[i].EndMs)
		}
		assert.Equal(t, original[i].Text, reread[i].Text)
		assert.Equal(t, original[i].Category, reread[i].Category)
		assert.Equal(t, original[i].Status, reread[i].Status)
		assert.Equal(t, original[i].Author, reread[i].Author)

		wantShapes, err := original[i].Shapes()
		require.NoError(t, err)
		gotShapes, err := reread[i].Shapes()
		require.NoError(t, err)
		assert.Equal(t, wantShapes, gotShapes)
	}
}

func TestImportRejectsBadDocument(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, err := Import(ctx, service, "m1", []byte("not json"))
	require.Error(t, err)

	// An entry with end before start fails timing validation.
	bad := `{"version":"1.0","count":1,"annotations":[{"id":1,"media_id":"m1","start_ms":5000,"end_ms":100,"text":"x","shapes":[]}]}`
	_, err = Import(ctx, service, "m1", []byte(bad))
	require.Error(t, err)

	list, err := service.ListByMedia(ctx, "m1", annotations.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
