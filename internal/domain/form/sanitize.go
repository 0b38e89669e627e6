package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeText strips markup from user supplied text. Entities produced by the
// policy are decoded again because the text is escaped once more on render.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return html.UnescapeString(textSanitizer().Sanitize(trimmed))
}

// SanitizeElements returns a copy of elements with labels, placeholders and
// options cleaned. Patterns are left untouched.
func SanitizeElements(elements []Element) []Element {
	out := CloneElements(elements)
	for i := range out {
		out[i].Label = SanitizeText(out[i].Label)
		out[i].Placeholder = SanitizeText(out[i].Placeholder)
		for j, opt := range out[i].Options {
			out[i].Options[j] = SanitizeText(opt)
		}
	}
	return out
}
