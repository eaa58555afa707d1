package annotations

import (
	"context"
	"sync"

	"github.com/marginote/annotator-api/internal/models"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// ServiceImpl implements the Service interface. It owns the per-media
// second-bucket indexes and serializes writes per media source: one
// writer at a time, readers see a consistent snapshot, and the index is
// patched before a mutating call returns.
type ServiceImpl struct {
	repository Repository

	mu    sync.Mutex
	media map[string]*mediaState
}

// mediaState serializes writes for one media source and holds its
// lazily built index.
type mediaState struct {
	mu    sync.RWMutex
	index *Index
}

// NewService creates a new annotation service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
		media:      make(map[string]*mediaState),
	}
}

func (s *ServiceImpl) state(mediaID string) *mediaState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.media[mediaID]
	if !ok {
		st = &mediaState{}
		s.media[mediaID] = st
	}
	return st
}

// Create validates and persists a new annotation, then patches the
// index before returning.
func (s *ServiceImpl) Create(ctx context.Context, mediaID string, req CreateRequest) (*models.Annotation, error) {
	if mediaID == "" {
		return nil, apperrors.ValidationError("media_id", "is required")
	}
	category := req.Category
	if category == "" {
		category = models.CategoryGeneral
	}
	if !models.ValidCategory(category) {
		return nil, apperrors.ValidationError("category", "unknown category "+category)
	}
	status := req.Status
	if status == "" {
		status = models.StatusOpen
	}
	if !models.ValidStatus(status) {
		return nil, apperrors.ValidationError("status", "unknown status "+status)
	}
	for _, shape := range req.Shapes {
		if err := shape.Validate(); err != nil {
			return nil, apperrors.ValidationError("shapes", err.Error())
		}
	}
	author := req.Author
	if author == "" {
		author = "anonymous"
	}

	annotation := &models.Annotation{
		MediaID:  mediaID,
		Text:     req.Text,
		Category: category,
		Status:   status,
		Author:   author,
	}
	annotation.SetTiming(req.Timing)
	if err := annotation.SetShapes(req.Shapes); err != nil {
		return nil, apperrors.ValidationError("shapes", err.Error())
	}

	st := s.state(mediaID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.repository.CreateAnnotation(ctx, annotation); err != nil {
		return nil, err
	}
	if st.index != nil {
		if err := st.index.Insert(annotation); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "patching index")
		}
	}
	return annotation, nil
}

// Get retrieves an annotation scoped to a media source.
func (s *ServiceImpl) Get(ctx context.Context, id uint, mediaID string) (*models.Annotation, error) {
	annotation, err := s.repository.GetAnnotationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if annotation.MediaID != mediaID {
		return nil, apperrors.NotFound("annotation", id)
	}
	return annotation, nil
}

// ListByMedia retrieves all annotations for a media source in canonical
// order.
func (s *ServiceImpl) ListByMedia(ctx context.Context, mediaID string, filter ListFilter) ([]models.Annotation, error) {
	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return nil, apperrors.ValidationError("category", "unknown category "+filter.Category)
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, apperrors.ValidationError("status", "unknown status "+filter.Status)
	}
	return s.repository.ListByMedia(ctx, mediaID, filter)
}

// Update applies a partial update. Timing is re-validated by
// construction of the patch's Timing value; a failed validation leaves
// the stored annotation unchanged.
func (s *ServiceImpl) Update(ctx context.Context, id uint, mediaID string, patch UpdatePatch) (*models.Annotation, error) {
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return nil, apperrors.ValidationError("category", "unknown category "+*patch.Category)
	}
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, apperrors.ValidationError("status", "unknown status "+*patch.Status)
	}
	if patch.Shapes != nil {
		for _, shape := range *patch.Shapes {
			if err := shape.Validate(); err != nil {
				return nil, apperrors.ValidationError("shapes", err.Error())
			}
		}
	}

	st := s.state(mediaID)
	st.mu.Lock()
	defer st.mu.Unlock()

	annotation, err := s.Get(ctx, id, mediaID)
	if err != nil {
		return nil, err
	}

	if patch.Timing != nil {
		annotation.SetTiming(*patch.Timing)
	}
	if patch.Text != nil {
		annotation.Text = *patch.Text
	}
	if patch.Category != nil {
		annotation.Category = *patch.Category
	}
	if patch.Status != nil {
		annotation.Status = *patch.Status
	}
	if patch.Author != nil {
		annotation.Author = *patch.Author
	}
	if patch.Shapes != nil {
		if err := annotation.SetShapes(*patch.Shapes); err != nil {
			return nil, apperrors.ValidationError("shapes", err.Error())
		}
	}

	if err := s.repository.UpdateAnnotation(ctx, annotation); err != nil {
		return nil, err
	}
	if st.index != nil {
		if err := st.index.Insert(annotation); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "patching index")
		}
	}
	return annotation, nil
}

// Delete removes an annotation. Deleting a missing id is a no-op: UI
// race conditions on delete are expected and harmless.
func (s *ServiceImpl) Delete(ctx context.Context, id uint, mediaID string) error {
	st := s.state(mediaID)
	st.mu.Lock()
	defer st.mu.Unlock()

	annotation, err := s.repository.GetAnnotationByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			return nil
		}
		return err
	}
	if annotation.MediaID != mediaID {
		return nil
	}

	if err := s.repository.DeleteAnnotation(ctx, id); err != nil {
		return err
	}
	if st.index != nil {
		st.index.Remove(id)
	}
	return nil
}

// ActiveAt answers "which annotations are active at playback time t"
// from the second-bucket index, building it from the store on first use.
func (s *ServiceImpl) ActiveAt(ctx context.Context, mediaID string, t timecode.Timestamp) ([]models.Annotation, error) {
	st := s.state(mediaID)

	st.mu.RLock()
	index := st.index
	st.mu.RUnlock()

	if index == nil {
		var err error
		index, err = s.buildIndex(ctx, mediaID, st)
		if err != nil {
			return nil, err
		}
	}

	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.index.ActiveAt(t), nil
}

func (s *ServiceImpl) buildIndex(ctx context.Context, mediaID string, st *mediaState) (*Index, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.index != nil {
		return st.index, nil
	}

	all, err := s.repository.ListByMedia(ctx, mediaID, ListFilter{})
	if err != nil {
		return nil, err
	}
	index, err := BuildIndex(all)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCorruptAnnotation, "building index")
	}
	st.index = index
	return index, nil
}
