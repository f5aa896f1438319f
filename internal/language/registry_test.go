package language

import (
	"errors"
	"testing"
)

// TestRegistryLookupKnownCode verifies display-name resolution.
func TestRegistryLookupKnownCode(t *testing.T) {
	r := NewRegistry()

	name, err := r.DisplayName("es")
	if err != nil {
		t.Fatalf("DisplayName() error = %v", err)
	}
	if name != "Spanish" {
		t.Fatalf("name = %q, want Spanish", name)
	}
	if !r.IsSupported("es") {
		t.Fatal("expected es to be supported")
	}
}

// TestRegistryNormalizesCode checks case and whitespace tolerance.
func TestRegistryNormalizesCode(t *testing.T) {
	r := NewRegistry()
	if !r.IsSupported(" EN ") {
		t.Fatal("expected trimmed, lowercased code to match")
	}
}

// TestRegistryRejectsUnknownCode verifies the sentinel error.
func TestRegistryRejectsUnknownCode(t *testing.T) {
	r := NewRegistry()

	if r.IsSupported("xx") {
		t.Fatal("xx should not be supported")
	}
	if _, err := r.Lookup("xx"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("Lookup error = %v, want ErrUnknownLanguage", err)
	}
}

// TestRegistryAllPreservesRegistrationOrder checks listing order stability.
func TestRegistryAllPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	all := r.All()

	if len(all) != 11 {
		t.Fatalf("locale count = %d, want 11", len(all))
	}
	if all[0].Code != "en" || all[len(all)-1].Code != "zh" {
		t.Fatalf("unexpected ordering: first=%s last=%s", all[0].Code, all[len(all)-1].Code)
	}
}
