package transcript

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Sagarm04/Sublyze/internal/language"
)

// ErrIndexOutOfRange is returned for edits addressing a missing ordinal.
var ErrIndexOutOfRange = errors.New("segment index out of range")

// ErrNotEditing is returned when a mutation is attempted outside edit mode.
var ErrNotEditing = errors.New("session is not in edit mode")

// secondsPerWord is the fixed speaking-speed assumption behind the derived
// duration estimate.
const secondsPerWord = 0.3

// Segment is one sentence-like unit of the transcript: the atomic
// addressable, editable, timestamped item.
type Segment struct {
	Index        int
	Text         string
	Timestamp    float64
	HasTimestamp bool
	Edited       bool
}

// Span is one run of rendered segment text, marked when it matches the
// active search term.
type Span struct {
	Text  string
	Match bool
}

// RenderedSegment is the display view of one segment.
type RenderedSegment struct {
	Index     int
	Text      string
	Timestamp string
	Spans     []Span
	Edited    bool
}

// Stats holds derived read-only transcript statistics. They are recomputed
// on demand and never cached.
type Stats struct {
	Words                    int
	Characters               int
	EstimatedDurationSeconds float64
	SpeakingRate             int
}

// Session holds the current, possibly edited, segment sequence for a single
// transcription result. A session is owned by exactly one view context and is
// not safe for concurrent use; a new transcription replaces the session
// wholesale rather than merging into it.
type Session struct {
	segments        []Segment
	durationSeconds float64
	version         int

	searchTerm string
	editing    bool
	draft      []string
}

// NewSession segments the transcript text and assigns proportional
// timestamps from the media duration. Ordinals are contiguous from zero.
func NewSession(text string, durationSeconds float64) *Session {
	texts := NewSplitter().Split(text)
	timestamps := Synchronize(len(texts), durationSeconds)

	segments := make([]Segment, len(texts))
	for i, segText := range texts {
		segments[i] = Segment{Index: i, Text: segText}
		if timestamps != nil {
			segments[i].Timestamp = timestamps[i]
			segments[i].HasTimestamp = true
		}
	}

	return &Session{segments: segments, durationSeconds: durationSeconds}
}

// Segments returns a copy of the current segment sequence.
func (s *Session) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the segment count.
func (s *Session) Len() int {
	return len(s.segments)
}

// Duration returns the media duration used for synchronization.
func (s *Session) Duration() float64 {
	return s.durationSeconds
}

// Version returns the commit counter used for staleness detection.
func (s *Session) Version() int {
	return s.version
}

// Editing reports whether the session is in edit mode.
func (s *Session) Editing() bool {
	return s.editing
}

// EnterEdit switches the session to edit mode, materializing each segment
// text as an independently mutable draft line. No-op when already editing.
func (s *Session) EnterEdit() {
	if s.editing {
		return
	}

	s.draft = make([]string, len(s.segments))
	for i, seg := range s.segments {
		s.draft[i] = seg.Text
	}
	s.editing = true
}

// SetSegmentText replaces the draft text at the given ordinal. Valid only in
// edit mode; ordinals and timestamps are never affected.
func (s *Session) SetSegmentText(index int, text string) error {
	if !s.editing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(s.draft) {
		return ErrIndexOutOfRange
	}

	s.draft[index] = text
	return nil
}

// Commit leaves edit mode and makes the draft texts authoritative.
// Timestamps are not recomputed: editing individual lines is assumed to keep
// the segment count unchanged. Each changed segment is flagged as edited.
// No-op when not editing.
func (s *Session) Commit() {
	if !s.editing {
		return
	}

	for i := range s.segments {
		if s.segments[i].Text != s.draft[i] {
			s.segments[i].Text = s.draft[i]
			s.segments[i].Edited = true
		}
	}
	s.draft = nil
	s.editing = false
	s.version++
}

// Search stores the active search term. An empty term clears highlighting.
func (s *Session) Search(term string) {
	s.searchTerm = term
}

// SearchTerm returns the active search term.
func (s *Session) SearchTerm() string {
	return s.searchTerm
}

// Render produces the display view of every segment: formatted timestamp and
// text spans with case-insensitive highlighting of the search term. The term
// is escaped so characters with pattern meaning match literally.
func (s *Session) Render() []RenderedSegment {
	var matcher *regexp.Regexp
	if s.searchTerm != "" {
		matcher = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s.searchTerm))
	}

	out := make([]RenderedSegment, len(s.segments))
	for i, seg := range s.segments {
		rendered := RenderedSegment{
			Index:  seg.Index,
			Text:   seg.Text,
			Spans:  highlight(seg.Text, matcher),
			Edited: seg.Edited,
		}
		if seg.HasTimestamp {
			rendered.Timestamp = FormatTimestamp(seg.Timestamp)
		}
		out[i] = rendered
	}
	return out
}

// highlight splits text into spans around every match of the term.
func highlight(text string, matcher *regexp.Regexp) []Span {
	if matcher == nil {
		return []Span{{Text: text}}
	}

	var spans []Span
	last := 0
	for _, loc := range matcher.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	if spans == nil {
		spans = []Span{{Text: text}}
	}
	return spans
}

// PlainText joins the segment texts with line breaks. This concatenation is
// the byte-stable representation behind the txt export.
func (s *Session) PlainText() string {
	texts := make([]string, len(s.segments))
	for i, seg := range s.segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, "\n")
}

// Stats recomputes the derived transcript statistics. All values are zero
// for an empty transcript.
func (s *Session) Stats() Stats {
	text := s.PlainText()
	words := len(strings.Fields(text))
	if words == 0 {
		return Stats{}
	}

	estimated := float64(words) * secondsPerWord
	return Stats{
		Words:                    words,
		Characters:               utf8.RuneCountInString(text),
		EstimatedDurationSeconds: estimated,
		SpeakingRate:             int(math.Round(float64(words) / estimated * 60)),
	}
}

// TranslationView is a translated rendering of the transcript tied to the
// session version it was produced from. It is not auto-invalidated when the
// transcript changes afterwards; Stale makes the divergence detectable.
type TranslationView struct {
	Locale  language.Locale
	Text    string
	Version int
}

// NewTranslationView snapshots the session version alongside the translated
// text.
func (s *Session) NewTranslationView(locale language.Locale, translated string) TranslationView {
	return TranslationView{Locale: locale, Text: translated, Version: s.version}
}

// Stale reports whether the session text has changed since translation.
func (v TranslationView) Stale(s *Session) bool {
	return v.Version != s.version
}
