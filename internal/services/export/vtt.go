package export

import (
	"strings"

	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// VTT renders annotations as a WebVTT document: the WEBVTT header, a
// blank line, then one cue block per annotation (timestamp line, text),
// blocks separated by one blank line. Timestamps are zero-padded
// millisecond-precision values taken directly from the stored integers.
func VTT(annotations []models.Annotation, opts Options) ([]byte, error) {
	if err := checkEmpty(annotations, opts); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("WEBVTT\n")

	for i := range annotations {
		r, err := cueRange(&annotations[i], opts)
		if err != nil {
			return nil, err
		}

		b.WriteString("\n")
		b.WriteString(timecode.FormatVTT(r.Start))
		b.WriteString(" --> ")
		b.WriteString(timecode.FormatVTT(r.End))
		b.WriteString("\n")
		b.WriteString(annotations[i].Text)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
