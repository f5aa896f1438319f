package transcript

import (
	"reflect"
	"strings"
	"testing"
)

// TestSplitSentenceBoundaries covers boundary handling across punctuation.
func TestSplitSentenceBoundaries(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three sentences",
			text: "Hi there. How are you? Great.",
			want: []string{"Hi there.", "How are you?", "Great."},
		},
		{
			name: "punctuation run is one boundary",
			text: "Wait... really?! Yes.",
			want: []string{"Wait...", "really?!", "Yes."},
		},
		{
			name: "no boundary yields whole text",
			text: "a transcript with no terminal punctuation",
			want: []string{"a transcript with no terminal punctuation"},
		},
		{
			name: "trailing unterminated text kept",
			text: "First sentence. trailing words",
			want: []string{"First sentence.", "trailing words"},
		},
		{
			name: "period inside token does not split",
			text: "Version 3.5 shipped today. It works.",
			want: []string{"Version 3.5 shipped today.", "It works."},
		},
		{
			name: "newline after punctuation is a boundary",
			text: "One.\nTwo.",
			want: []string{"One.", "Two."},
		},
		{
			name: "only punctuation",
			text: "...",
			want: []string{"..."},
		},
	}

	sp := NewSplitter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sp.Split(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Split(%q) = %#v, want %#v", tc.text, got, tc.want)
			}
		})
	}
}

// TestSplitEmptyInput verifies only empty input yields no segments.
func TestSplitEmptyInput(t *testing.T) {
	sp := NewSplitter()
	if got := sp.Split(""); got != nil {
		t.Fatalf("Split(\"\") = %#v, want nil", got)
	}
	if got := sp.Split("   \n "); got != nil {
		t.Fatalf("whitespace input = %#v, want nil", got)
	}
}

// TestSplitIsDeterministic checks repeat runs produce identical sequences.
func TestSplitIsDeterministic(t *testing.T) {
	sp := NewSplitter()
	text := "Same input. Same output! Every time?"

	first := sp.Split(text)
	second := sp.Split(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("segmentation not deterministic: %#v vs %#v", first, second)
	}
}

// TestSplitPreservesContent checks the concat property: joining segments
// reproduces the input text modulo split whitespace.
func TestSplitPreservesContent(t *testing.T) {
	sp := NewSplitter()
	text := "Hi there.  How are you?\nGreat."

	joined := strings.Join(sp.Split(text), " ")
	want := strings.Join(strings.Fields(text), " ")
	if joined != want {
		t.Fatalf("joined = %q, want %q", joined, want)
	}
}

// TestSplitCustomBoundary checks the predicate is swappable.
func TestSplitCustomBoundary(t *testing.T) {
	sp := NewSplitterWithBoundary(func(r rune) bool { return r == ';' })
	got := sp.Split("alpha; beta; gamma")
	want := []string{"alpha;", "beta;", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %#v, want %#v", got, want)
	}
}
