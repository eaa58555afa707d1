package export

import (
	"encoding/json"

	"github.com/marginote/annotator-api/internal/models"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
)

// DocumentVersion identifies the JSON export schema.
const DocumentVersion = "1.0"

// Document is the JSON export envelope. It is the only export that
// round-trips the full model including shapes; VTT and SRT have no
// native concept of spatial data and drop it.
type Document struct {
	Version     string       `json:"version"`
	MediaID     string       `json:"media_id,omitempty"`
	Count       int          `json:"count"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is the JSON export form of one annotation. EndMs is null
// for point annotations.
type Annotation struct {
	ID       uint           `json:"id"`
	UUID     string         `json:"uuid,omitempty"`
	MediaID  string         `json:"media_id"`
	StartMs  int64          `json:"start_ms"`
	EndMs    *int64         `json:"end_ms"`
	Text     string         `json:"text"`
	Category string         `json:"category,omitempty"`
	Status   string         `json:"status,omitempty"`
	Author   string         `json:"author,omitempty"`
	Shapes   []models.Shape `json:"shapes"`
}

// JSON renders annotations as an indented JSON document in canonical
// store order.
func JSON(annotations []models.Annotation, opts Options) ([]byte, error) {
	if err := checkEmpty(annotations, opts); err != nil {
		return nil, err
	}

	doc := Document{
		Version:     DocumentVersion,
		Count:       len(annotations),
		Annotations: make([]Annotation, 0, len(annotations)),
	}

	for i := range annotations {
		a := &annotations[i]
		if _, err := a.Timing(); err != nil {
			return nil, apperrors.CorruptAnnotation(a.ID, err.Error())
		}
		shapes, err := a.Shapes()
		if err != nil {
			return nil, apperrors.CorruptAnnotation(a.ID, err.Error())
		}
		if shapes == nil {
			shapes = []models.Shape{}
		}

		if doc.MediaID == "" {
			doc.MediaID = a.MediaID
		}

		doc.Annotations = append(doc.Annotations, Annotation{
			ID:       a.ID,
			UUID:     a.UUID,
			MediaID:  a.MediaID,
			StartMs:  a.StartMs,
			EndMs:    a.EndMs,
			Text:     a.Text,
			Category: a.Category,
			Status:   a.Status,
			Author:   a.Author,
			Shapes:   shapes,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encoding export document")
	}
	return append(data, '\n'), nil
}
