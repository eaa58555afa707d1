package types

import (
	"github.com/marginote/annotator-api/internal/database"
	"github.com/marginote/annotator-api/internal/services/annotations"
	"github.com/marginote/annotator-api/internal/services/media"
	"github.com/marginote/annotator-api/pkg/config"
	"go.uber.org/zap"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	Log               *zap.Logger
	AnnotationService annotations.Service
	MediaService      media.Service
	Export            config.ExportConfig
}

// Logger returns the configured logger, falling back to a no-op logger
// so handlers never need a nil check.
func (d *Dependencies) Logger() *zap.Logger {
	if d == nil || d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
