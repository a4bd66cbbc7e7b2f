// Package render resolves user-facing bot copy through locale catalogs.
//
// It decouples conversation text from flow logic so the bot can change
// language without touching state transitions.
package render

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.Arabic,
	language.English,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Default returns the default language tag.
func Default() language.Tag {
	return language.Arabic
}

// Renderer resolves message keys to localized copy.
type Renderer struct {
	printer *message.Printer
}

// New returns a renderer for the requested language, falling back to the
// default when the tag is unknown.
func New(lang string) *Renderer {
	tag := Default()
	if trimmed := strings.TrimSpace(lang); trimmed != "" {
		if parsed, err := language.Parse(trimmed); err == nil {
			tag, _, _ = tagMatcher.Match(parsed)
		}
	}
	return &Renderer{printer: message.NewPrinter(tag)}
}

// T returns the localized message for key, formatted with args.
func (r *Renderer) T(key string, args ...any) string {
	if r == nil || r.printer == nil {
		return key
	}
	return r.printer.Sprintf(key, args...)
}
