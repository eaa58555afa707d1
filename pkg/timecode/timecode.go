// Package timecode provides millisecond-precision time primitives for
// media annotations. Timestamps are integer milliseconds from the start
// of the media, never float seconds, so repeated arithmetic and frame
// conversions cannot accumulate drift.
package timecode

import (
	"fmt"
	"math"

	"github.com/marginote/annotator-api/pkg/errors"
)

// Timestamp is an instant on the media timeline, in milliseconds from
// the start of the media. Always >= 0.
type Timestamp int64

// NewTimestamp validates and constructs a Timestamp.
func NewTimestamp(ms int64) (Timestamp, error) {
	if ms < 0 {
		return 0, errors.New(errors.ErrCodeInvalidTiming,
			fmt.Sprintf("timestamp must not be negative, got %d", ms))
	}
	return Timestamp(ms), nil
}

// Milliseconds returns the raw millisecond value.
func (t Timestamp) Milliseconds() int64 {
	return int64(t)
}

// Range is a closed interval [Start, End] on the media timeline.
// End == Start is a degenerate (point) range.
type Range struct {
	Start Timestamp
	End   Timestamp
}

// NewRange validates and constructs a Range.
func NewRange(startMs, endMs int64) (Range, error) {
	start, err := NewTimestamp(startMs)
	if err != nil {
		return Range{}, err
	}
	end, err := NewTimestamp(endMs)
	if err != nil {
		return Range{}, err
	}
	if end < start {
		return Range{}, errors.New(errors.ErrCodeInvalidTiming,
			fmt.Sprintf("range end %d precedes start %d", endMs, startMs))
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether t falls within the range, inclusive of both
// endpoints.
func (r Range) Contains(t Timestamp) bool {
	return r.Start <= t && t <= r.End
}

// IsPoint reports whether the range is degenerate (zero duration).
func (r Range) IsPoint() bool {
	return r.Start == r.End
}

// BucketKey returns the truncated-second bucket for a timestamp. This is
// the single bucketing policy shared by the index and its callers.
func BucketKey(t Timestamp) int64 {
	return int64(t) / 1000
}

// Timing is the tagged timing of an annotation: either an instantaneous
// point or a duration range, never both or neither.
type Timing struct {
	r       Range
	isPoint bool
}

// PointTiming constructs an instantaneous Timing.
func PointTiming(ms int64) (Timing, error) {
	t, err := NewTimestamp(ms)
	if err != nil {
		return Timing{}, err
	}
	return Timing{r: Range{Start: t, End: t}, isPoint: true}, nil
}

// RangeTiming constructs a duration Timing. A zero-length range collapses
// to a point.
func RangeTiming(startMs, endMs int64) (Timing, error) {
	r, err := NewRange(startMs, endMs)
	if err != nil {
		return Timing{}, err
	}
	return Timing{r: r, isPoint: r.IsPoint()}, nil
}

// IsPoint reports whether the timing is instantaneous.
func (tm Timing) IsPoint() bool {
	return tm.isPoint
}

// Start returns the start instant.
func (tm Timing) Start() Timestamp {
	return tm.r.Start
}

// End returns the end instant. For a point timing this equals Start.
func (tm Timing) End() Timestamp {
	return tm.r.End
}

// Span returns the timing as a Range; a point becomes a degenerate range.
func (tm Timing) Span() Range {
	return tm.r
}

// Contains reports whether t falls within the timing. Points match only
// their exact instant.
func (tm Timing) Contains(t Timestamp) bool {
	return tm.r.Contains(t)
}

// FrameDurationMs returns the duration of a single frame in milliseconds
// at the given frame rate.
func FrameDurationMs(fps float64) float64 {
	return 1000.0 / fps
}

// SnapToFrame snaps a timestamp to the nearest frame boundary at the
// given frame rate. Frame rates <= 0 leave the timestamp unchanged.
func SnapToFrame(t Timestamp, fps float64) Timestamp {
	if fps <= 0 {
		return t
	}
	frameDuration := FrameDurationMs(fps)
	frame := math.Round(float64(t) / frameDuration)
	return Timestamp(int64(frame * frameDuration))
}
