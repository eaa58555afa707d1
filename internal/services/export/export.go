// Package export renders the annotation model into external file
// formats. Exporters are pure functions over the store's canonical
// (start_ms, created_at) ordering and never reorder their input.
package export

import (
	"github.com/marginote/annotator-api/internal/models"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// Format identifies an export file format.
type Format string

const (
	FormatVTT  Format = "vtt"
	FormatSRT  Format = "srt"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatVTT, FormatSRT, FormatJSON:
		return Format(s), nil
	default:
		return "", apperrors.Newf(apperrors.ErrCodeInvalidInput, "unknown export format %q", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatVTT:
		return "text/vtt; charset=utf-8"
	case FormatSRT:
		return "text/plain; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Options controls export behavior.
type Options struct {
	// PointCueDurationMs is the rendered duration for point annotations
	// in VTT/SRT output. Points carry no duration of their own, and
	// dropping them would silently lose markers, so they are rendered as
	// minimum-duration cues. Ignored by JSON, which keeps a null end.
	PointCueDurationMs int64

	// RequireAnnotations makes an empty annotation set an EmptyExport
	// error instead of a minimal valid header-only file.
	RequireAnnotations bool
}

// DefaultPointCueDurationMs is used when Options leaves the point cue
// duration unset.
const DefaultPointCueDurationMs = 1000

func (o Options) pointCueDuration() int64 {
	if o.PointCueDurationMs <= 0 {
		return DefaultPointCueDurationMs
	}
	return o.PointCueDurationMs
}

// Export renders annotations in the given format.
func Export(format Format, annotations []models.Annotation, opts Options) ([]byte, error) {
	switch format {
	case FormatVTT:
		return VTT(annotations, opts)
	case FormatSRT:
		return SRT(annotations, opts)
	case FormatJSON:
		return JSON(annotations, opts)
	default:
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidInput, "unknown export format %q", format)
	}
}

// checkEmpty applies the EmptyExport policy.
func checkEmpty(annotations []models.Annotation, opts Options) error {
	if opts.RequireAnnotations && len(annotations) == 0 {
		return apperrors.New(apperrors.ErrCodeEmptyExport, "no annotations to export")
	}
	return nil
}

// cueRange returns the rendered cue interval for an annotation,
// materializing point annotations as minimum-duration cues. A stored
// row that violates the timing invariants aborts the export rather than
// emitting a partially valid file.
func cueRange(a *models.Annotation, opts Options) (timecode.Range, error) {
	tm, err := a.Timing()
	if err != nil {
		return timecode.Range{}, apperrors.CorruptAnnotation(a.ID, err.Error())
	}
	if !tm.IsPoint() {
		return tm.Span(), nil
	}
	start := tm.Start()
	return timecode.Range{
		Start: start,
		End:   start + timecode.Timestamp(opts.pointCueDuration()),
	}, nil
}
