package export

import (
	"strconv"
	"strings"

	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// SRT renders annotations as a SubRip document: numbered cues starting
// at 1 in store order, each cue being the index line, the comma-separated
// millisecond timestamp line, the text, and a blank line separator.
// Editing suites are sensitive to the exact separator characters and
// padding, so the format is matched exactly.
func SRT(annotations []models.Annotation, opts Options) ([]byte, error) {
	if err := checkEmpty(annotations, opts); err != nil {
		return nil, err
	}

	var b strings.Builder
	for i := range annotations {
		r, err := cueRange(&annotations[i], opts)
		if err != nil {
			return nil, err
		}

		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(timecode.FormatSRT(r.Start))
		b.WriteString(" --> ")
		b.WriteString(timecode.FormatSRT(r.End))
		b.WriteString("\n")
		b.WriteString(annotations[i].Text)
		b.WriteString("\n\n")
	}

	return []byte(b.String()), nil
}
