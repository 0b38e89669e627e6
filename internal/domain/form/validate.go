package form

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"
)

var patternCache sync.Map // pattern -> *regexp.Regexp, nil when it does not compile

func compilePattern(pattern string) *regexp.Regexp {
	if cached, ok := patternCache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	patternCache.Store(pattern, re)
	return re
}

// PatternCompiles reports whether pattern is a usable regular expression.
func PatternCompiles(pattern string) bool {
	return compilePattern(pattern) != nil
}

// Validate checks one value against its element and returns the first failing
// rule's message, or "" when the value is acceptable. A nil value is absent.
// Length and pattern rules only look at non-empty strings, and a pattern that
// does not compile never fails a value.
func Validate(el Element, v *Value) string {
	if el.Required && (v == nil || !v.Filled()) {
		return fmt.Sprintf("%s is required", el.Label)
	}
	if v == nil || v.Kind != KindString || v.Str == "" || el.Validation == nil {
		return ""
	}

	rules := el.Validation
	n := utf8.RuneCountInString(v.Str)
	if rules.MinLength > 0 && n < rules.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", el.Label, rules.MinLength)
	}
	if rules.MaxLength > 0 && n > rules.MaxLength {
		return fmt.Sprintf("%s must be no more than %d characters", el.Label, rules.MaxLength)
	}
	if rules.Pattern != "" {
		if re := compilePattern(rules.Pattern); re != nil && !re.MatchString(v.Str) {
			return fmt.Sprintf("%s format is invalid", el.Label)
		}
	}
	return ""
}

// ValidateAll validates every element and returns the failures keyed by
// element id. An empty map means the values are acceptable.
func ValidateAll(elements []Element, values Values) map[string]string {
	errs := make(map[string]string)
	for _, el := range elements {
		if msg := Validate(el, values.Get(el.ID)); msg != "" {
			errs[el.ID] = msg
		}
	}
	return errs
}
