package transcript

import (
	"strings"
	"unicode"
)

// Splitter breaks transcript text into sentence-like segments. The boundary
// predicate is injectable so segmentation rules stay independently testable
// and swappable.
type Splitter struct {
	isTerminal func(r rune) bool
}

// NewSplitter creates a splitter using sentence-terminal punctuation
// boundaries (., !, ?).
func NewSplitter() *Splitter {
	return &Splitter{
		isTerminal: func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		},
	}
}

// NewSplitterWithBoundary creates a splitter with a custom terminal-rune
// predicate.
func NewSplitterWithBoundary(isTerminal func(r rune) bool) *Splitter {
	return &Splitter{isTerminal: isTerminal}
}

// Split returns the ordered segment texts for the input. A boundary is a run
// of terminal punctuation followed by whitespace or end of text; the run
// counts as a single split point, so ellipses and repeated punctuation do not
// produce empty segments. Non-empty input always yields at least one segment;
// empty or whitespace-only input yields none.
//
// Split is a pure function: identical input always produces the identical
// segment sequence, which downstream timestamp assignment relies on.
func (sp *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var segments []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if !sp.isTerminal(r) {
			continue
		}

		// Consume the rest of the punctuation run as one boundary.
		for i+1 < len(runes) && sp.isTerminal(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
		}

		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			if seg := strings.TrimSpace(current.String()); seg != "" {
				segments = append(segments, seg)
			}
			current.Reset()
		}
	}

	// Trailing text without terminal punctuation is still a segment.
	if rest := strings.TrimSpace(current.String()); rest != "" {
		segments = append(segments, rest)
	}

	return segments
}
