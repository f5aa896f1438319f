package language

import (
	"errors"
	"strings"
)

// ErrUnknownLanguage is returned when a locale code is not registered.
var ErrUnknownLanguage = errors.New("unknown language code")

// Locale is a supported target-language code with its display name.
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Registry maps locale codes to display names. It is read-only after
// construction; there is no runtime mutation path.
type Registry struct {
	order  []string
	byCode map[string]Locale
}

// supportedLocales lists every locale the service accepts, in the order the
// API presents them.
var supportedLocales = []Locale{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "hi", Name: "Hindi"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ru", Name: "Russian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "zh", Name: "Chinese"},
}

// NewRegistry builds the process-wide registry of supported locales.
func NewRegistry() *Registry {
	r := &Registry{byCode: make(map[string]Locale, len(supportedLocales))}
	for _, loc := range supportedLocales {
		r.order = append(r.order, loc.Code)
		r.byCode[loc.Code] = loc
	}
	return r
}

// IsSupported reports whether a locale code is registered.
func (r *Registry) IsSupported(code string) bool {
	_, ok := r.byCode[normalizeCode(code)]
	return ok
}

// Lookup returns the locale for a code or ErrUnknownLanguage.
func (r *Registry) Lookup(code string) (Locale, error) {
	loc, ok := r.byCode[normalizeCode(code)]
	if !ok {
		return Locale{}, ErrUnknownLanguage
	}
	return loc, nil
}

// DisplayName returns the human-readable name for a code.
func (r *Registry) DisplayName(code string) (string, error) {
	loc, err := r.Lookup(code)
	if err != nil {
		return "", err
	}
	return loc.Name, nil
}

// All returns every registered locale in registration order. The order is
// used for listing only and carries no other meaning.
func (r *Registry) All() []Locale {
	out := make([]Locale, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// normalizeCode trims and lowercases a request-supplied locale code.
func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
