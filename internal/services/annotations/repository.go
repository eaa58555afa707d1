package annotations

import (
	"context"
	"errors"

	apperrors "github.com/marginote/annotator-api/pkg/errors"

	"github.com/marginote/annotator-api/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new annotation repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateAnnotation creates a new annotation in the database
func (r *RepositoryImpl) CreateAnnotation(ctx context.Context, annotation *models.Annotation) error {
	if err := r.db.WithContext(ctx).Create(annotation).Error; err != nil {
		return apperrors.StoreUnavailable("create", err)
	}
	return nil
}

// GetAnnotationByID retrieves an annotation by its ID
func (r *RepositoryImpl) GetAnnotationByID(ctx context.Context, id uint) (*models.Annotation, error) {
	var annotation models.Annotation
	if err := r.db.WithContext(ctx).First(&annotation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("annotation", id)
		}
		return nil, apperrors.StoreUnavailable("get", err)
	}
	return &annotation, nil
}

// ListByMedia retrieves all annotations for a media source in canonical
// order: start_ms ascending, ties broken by created_at ascending. This
// is the ordering every exporter consumes.
func (r *RepositoryImpl) ListByMedia(ctx context.Context, mediaID string, filter ListFilter) ([]models.Annotation, error) {
	query := r.db.WithContext(ctx).Where("media_id = ?", mediaID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var annotations []models.Annotation
	if err := query.
		Order("start_ms ASC").
		Order("created_at ASC").
		Find(&annotations).Error; err != nil {
		return nil, apperrors.StoreUnavailable("list", err)
	}
	return annotations, nil
}

// UpdateAnnotation updates an existing annotation
func (r *RepositoryImpl) UpdateAnnotation(ctx context.Context, annotation *models.Annotation) error {
	result := r.db.WithContext(ctx).Save(annotation)
	if result.Error != nil {
		return apperrors.StoreUnavailable("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("annotation", annotation.ID)
	}
	return nil
}

// DeleteAnnotation deletes an annotation by its ID. Deleting a
// nonexistent id is a no-op so concurrent delete races from the UI never
// surface spurious failures.
func (r *RepositoryImpl) DeleteAnnotation(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Annotation{}, id)
	if result.Error != nil {
		return apperrors.StoreUnavailable("delete", result.Error)
	}
	return nil
}
