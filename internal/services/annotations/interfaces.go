package annotations

import (
	"context"

	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// CreateRequest carries the fields for a new annotation.
type CreateRequest struct {
	Timing   timecode.Timing
	Text     string
	Shapes   []models.Shape
	Category string
	Status   string
	Author   string
}

// UpdatePatch is a partial update; nil fields are left unchanged.
type UpdatePatch struct {
	Timing   *timecode.Timing
	Text     *string
	Shapes   *[]models.Shape
	Category *string
	Status   *string
	Author   *string
}

// ListFilter narrows ListByMedia output. The zero value returns
// everything.
type ListFilter struct {
	Category string
	Status   string
}

// Repository defines the interface for annotation data access
type Repository interface {
	// Create operations
	CreateAnnotation(ctx context.Context, annotation *models.Annotation) error

	// Read operations
	GetAnnotationByID(ctx context.Context, id uint) (*models.Annotation, error)
	ListByMedia(ctx context.Context, mediaID string, filter ListFilter) ([]models.Annotation, error)

	// Update operations
	UpdateAnnotation(ctx context.Context, annotation *models.Annotation) error

	// Delete operations. Deleting a missing id is a no-op.
	DeleteAnnotation(ctx context.Context, id uint) error
}

// Service defines the interface for annotation business logic. Writes
// for a given media source are serialized, and the second-bucket index
// is patched before any mutating call returns.
type Service interface {
	Create(ctx context.Context, mediaID string, req CreateRequest) (*models.Annotation, error)
	Get(ctx context.Context, id uint, mediaID string) (*models.Annotation, error)
	ListByMedia(ctx context.Context, mediaID string, filter ListFilter) ([]models.Annotation, error)
	Update(ctx context.Context, id uint, mediaID string, patch UpdatePatch) (*models.Annotation, error)
	Delete(ctx context.Context, id uint, mediaID string) error

	// ActiveAt returns the annotations whose timing contains t, in
	// canonical (start, createdAt) order.
	ActiveAt(ctx context.Context, mediaID string, t timecode.Timestamp) ([]models.Annotation, error)
}
