package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a declared transcript export format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatSRT  Format = "srt"
	FormatDOCX Format = "docx"
)

// ErrUnknownFormat is returned for formats outside the declared set.
var ErrUnknownFormat = errors.New("unknown export format")

// ErrExternalFormat is returned for declared formats whose concrete encoding
// is produced by the presentation layer from Cues rather than here.
var ErrExternalFormat = errors.New("format is encoded externally from the cue sequence")

// Cue is one segment with its estimated time range, the unit external
// encoders consume.
type Cue struct {
	Index        int
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

// ParseFormat validates a requested export format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatTXT:
		return FormatTXT, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", ErrUnknownFormat
	}
}

// Cues returns the segment sequence with estimated time ranges. Each cue
// ends where the next begins; the final cue ends at the media duration. When
// no timestamps were assigned, start and end stay zero.
func (s *Session) Cues() []Cue {
	cues := make([]Cue, len(s.segments))
	for i, seg := range s.segments {
		cue := Cue{Index: seg.Index, Text: seg.Text}
		if seg.HasTimestamp {
			cue.StartSeconds = seg.Timestamp
			if i+1 < len(s.segments) {
				cue.EndSeconds = s.segments[i+1].Timestamp
			} else {
				cue.EndSeconds = s.durationSeconds
			}
		}
		cues[i] = cue
	}
	return cues
}

// Export renders the session in the requested format. TXT is the byte-stable
// newline join of segment texts. SRT is encoded from the cue sequence. DOCX
// is declared for parity with the export menu, but its binary encoding is an
// external-collaborator concern, so requesting it here fails with
// ErrExternalFormat.
func (s *Session) Export(format Format) ([]byte, error) {
	switch format {
	case FormatTXT:
		return []byte(s.PlainText()), nil
	case FormatSRT:
		return encodeSRT(s.Cues()), nil
	case FormatDOCX:
		return nil, ErrExternalFormat
	default:
		return nil, ErrUnknownFormat
	}
}

// encodeSRT renders cues as numbered SubRip blocks.
func encodeSRT(cues []Cue) []byte {
	var b strings.Builder
	for _, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			cue.Index+1,
			formatSRTTime(cue.StartSeconds),
			formatSRTTime(cue.EndSeconds),
			cue.Text,
		)
	}
	return []byte(b.String())
}

// formatSRTTime renders seconds as the SubRip HH:MM:SS,mmm form.
func formatSRTTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
