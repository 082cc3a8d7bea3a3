// Package textutils provides the shared text normalization and field removal
// helpers used by the extractor and the categorizer.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText is the shared normalization transform: runs of whitespace collapse
// to a single space, text is lowercased, en/em dashes become a plain hyphen,
// and the ends are trimmed.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "–", "-")
	text = strings.ReplaceAll(text, "—", "-")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CollapseWhitespace reduces whitespace runs to single spaces and trims the
// ends, without changing case.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// RemoveFirstOccurrence removes the first occurrence of sub from text.
// Removal is substring-based, not position-based: if a numeric substring also
// appears inside free text the earlier occurrence is the one removed, which
// can clip the description. That is the established baseline behavior and is
// kept here behind one routine so it can be replaced in isolation.
func RemoveFirstOccurrence(text, sub string) string {
	if sub == "" {
		return text
	}
	idx := strings.Index(text, sub)
	if idx < 0 {
		return text
	}
	return text[:idx] + text[idx+len(sub):]
}
