package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/marginote/annotator-api/pkg/timecode"
	"gorm.io/gorm"
)

// Annotation categories for filtering and organization.
const (
	CategoryGeneral       = "general"
	CategoryPacing        = "pacing"
	CategoryPronunciation = "pronunciation"
	CategoryAudioQuality  = "audio_quality"
	CategoryTiming        = "timing"
	CategoryContent       = "content"
	CategoryTechnical     = "technical"
)

var validCategories = map[string]bool{
	CategoryGeneral:       true,
	CategoryPacing:        true,
	CategoryPronunciation: true,
	CategoryAudioQuality:  true,
	CategoryTiming:        true,
	CategoryContent:       true,
	CategoryTechnical:     true,
}

// ValidCategory reports whether s is a known annotation category.
func ValidCategory(s string) bool {
	return validCategories[s]
}

// Annotation workflow statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusWontFix    = "wont_fix"
)

var validStatuses = map[string]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusWontFix:    true,
}

// ValidStatus reports whether s is a known annotation status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Annotation represents a user-authored marker (point or range) over a
// media timeline. Timing is stored as integer milliseconds; the nullable
// end column exists only at the storage boundary and is surfaced through
// the tagged Timing accessor.
type Annotation struct {
	gorm.Model
	UUID     string `json:"uuid" gorm:"uniqueIndex"`
	MediaID  string `json:"media_id" gorm:"not null;index:idx_media_start,priority:1"`
	StartMs  int64  `json:"start_ms" gorm:"not null;index:idx_media_start,priority:2"`
	EndMs    *int64 `json:"end_ms"` // nil for point-in-time annotations
	Text     string `json:"text" gorm:"not null"`
	Category string `json:"category" gorm:"default:general"`
	Status   string `json:"status" gorm:"default:open"`
	Author   string `json:"author" gorm:"default:anonymous"`

	// ShapeData holds the JSON-encoded []Shape overlay list, insertion
	// order preserved.
	ShapeData []byte `json:"-" gorm:"type:blob"`
}

// BeforeCreate generates a UUID before creating a new annotation
func (a *Annotation) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Annotation model
func (Annotation) TableName() string {
	return "annotations"
}

// Timing returns the annotation's timing as a tagged point-or-range
// value, validating the stored columns on the way out.
func (a *Annotation) Timing() (timecode.Timing, error) {
	if a.EndMs == nil {
		return timecode.PointTiming(a.StartMs)
	}
	return timecode.RangeTiming(a.StartMs, *a.EndMs)
}

// SetTiming writes a tagged timing back into the storage columns.
func (a *Annotation) SetTiming(tm timecode.Timing) {
	a.StartMs = tm.Start().Milliseconds()
	if tm.IsPoint() {
		a.EndMs = nil
		return
	}
	end := tm.End().Milliseconds()
	a.EndMs = &end
}

// Shapes returns the decoded shape overlay list
func (a *Annotation) Shapes() ([]Shape, error) {
	if len(a.ShapeData) == 0 {
		return nil, nil
	}
	var shapes []Shape
	if err := json.Unmarshal(a.ShapeData, &shapes); err != nil {
		return nil, fmt.Errorf("decoding shapes for annotation %d: %w", a.ID, err)
	}
	return shapes, nil
}

// SetShapes encodes and sets the shape overlay list
func (a *Annotation) SetShapes(shapes []Shape) error {
	if len(shapes) == 0 {
		a.ShapeData = nil
		return nil
	}
	data, err := json.Marshal(shapes)
	if err != nil {
		return fmt.Errorf("encoding shapes: %w", err)
	}
	a.ShapeData = data
	return nil
}
