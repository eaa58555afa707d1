package types

import "github.com/marginote/annotator-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// AnnotationResponse is the wire form of a single annotation. Timing is
// exposed as the raw millisecond integers; end_ms is null for point
// annotations.
type AnnotationResponse struct {
	ID        uint           `json:"id"`
	UUID      string         `json:"uuid"`
	MediaID   string         `json:"media_id"`
	StartMs   int64          `json:"start_ms"`
	EndMs     *int64         `json:"end_ms"`
	IsPoint   bool           `json:"is_point"`
	Text      string         `json:"text"`
	Category  string         `json:"category"`
	Status    string         `json:"status"`
	Author    string         `json:"author"`
	Shapes    []models.Shape `json:"shapes"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// AnnotationsResponse for annotation lists
type AnnotationsResponse struct {
	MediaID     string               `json:"media_id"`
	Count       int                  `json:"count"`
	Annotations []AnnotationResponse `json:"annotations"`
}

// ActiveAnnotationsResponse for playback-time queries
type ActiveAnnotationsResponse struct {
	TimeMs      int64                `json:"time_ms"`
	Annotations []AnnotationResponse `json:"annotations"`
}

// MediaResponse for media registry lookups
type MediaResponse struct {
	MediaID  string `json:"media_id"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// NewAnnotationResponse converts a model into its wire form.
func NewAnnotationResponse(a *models.Annotation) (AnnotationResponse, error) {
	shapes, err := a.Shapes()
	if err != nil {
		return AnnotationResponse{}, err
	}
	if shapes == nil {
		shapes = []models.Shape{}
	}
	return AnnotationResponse{
		ID:        a.ID,
		UUID:      a.UUID,
		MediaID:   a.MediaID,
		StartMs:   a.StartMs,
		EndMs:     a.EndMs,
		IsPoint:   a.EndMs == nil,
		Text:      a.Text,
		Category:  a.Category,
		Status:    a.Status,
		Author:    a.Author,
		Shapes:    shapes,
		CreatedAt: a.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt: a.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}, nil
}

// NewAnnotationsResponse converts a model list into its wire form.
func NewAnnotationsResponse(mediaID string, list []models.Annotation) (AnnotationsResponse, error) {
	out := AnnotationsResponse{
		MediaID:     mediaID,
		Count:       len(list),
		Annotations: make([]AnnotationResponse, 0, len(list)),
	}
	for i := range list {
		item, err := NewAnnotationResponse(&list[i])
		if err != nil {
			return AnnotationsResponse{}, err
		}
		out.Annotations = append(out.Annotations, item)
	}
	return out, nil
}

// NewMediaResponse converts a media model into its wire form.
func NewMediaResponse(m *models.Media) MediaResponse {
	return MediaResponse{
		MediaID:  m.MediaID,
		Path:     m.Path,
		Filename: m.Filename,
		Size:     m.Size,
		MimeType: m.MimeType,
	}
}
