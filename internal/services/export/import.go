package export

import (
	"context"
	"encoding/json"

	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/internal/services/annotations"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// Import reads a JSON export document back into the store, creating one
// annotation per entry under mediaID. Timing is re-validated through the
// service, so a document with a malformed entry fails before the store
// accepts it.
func Import(ctx context.Context, service annotations.Service, mediaID string, data []byte) ([]models.Annotation, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "parsing import document")
	}

	created := make([]models.Annotation, 0, len(doc.Annotations))
	for i := range doc.Annotations {
		entry := &doc.Annotations[i]

		var timing timecode.Timing
		var err error
		if entry.EndMs == nil {
			timing, err = timecode.PointTiming(entry.StartMs)
		} else {
			timing, err = timecode.RangeTiming(entry.StartMs, *entry.EndMs)
		}
		if err != nil {
			return created, err
		}

		annotation, err := service.Create(ctx, mediaID, annotations.CreateRequest{
			Timing:   timing,
			Text:     entry.Text,
			Shapes:   entry.Shapes,
			Category: entry.Category,
			Status:   entry.Status,
			Author:   entry.Author,
		})
		if err != nil {
			return created, err
		}
		created = append(created, *annotation)
	}

	return created, nil
}
