package timecode

import (
	"fmt"
	"regexp"
	"strconv"
)

// Timecode rendering for the subtitle exporters. WebVTT uses a dot as
// the millisecond separator, SRT uses a comma; editing suites reject
// output that deviates from either convention.

// FormatVTT renders a timestamp as a WebVTT timecode (HH:MM:SS.mmm).
func FormatVTT(t Timestamp) string {
	return format(t, '.')
}

// FormatSRT renders a timestamp as an SRT timecode (HH:MM:SS,mmm).
func FormatSRT(t Timestamp) string {
	return format(t, ',')
}

func format(t Timestamp, sep byte) string {
	ms := int64(t)
	hours := ms / 3600000
	ms -= hours * 3600000
	minutes := ms / 60000
	ms -= minutes * 60000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, sep, ms)
}

var timecodeRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})[.,](\d{3})$`)

// ParseTimecode parses a VTT or SRT timecode back into a Timestamp.
func ParseTimecode(s string) (Timestamp, error) {
	matches := timecodeRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid timecode %q", s)
	}

	hours, _ := strconv.ParseInt(matches[1], 10, 64)
	minutes, _ := strconv.ParseInt(matches[2], 10, 64)
	seconds, _ := strconv.ParseInt(matches[3], 10, 64)
	millis, _ := strconv.ParseInt(matches[4], 10, 64)

	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid timecode %q", s)
	}

	return Timestamp(hours*3600000 + minutes*60000 + seconds*1000 + millis), nil
}
