package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis is appended to truncated labels.
const Ellipsis = "…"

// Truncate shortens s to at most budget runes. Strings over budget keep their
// first budget-1 runes followed by Ellipsis. A budget below 1 returns s.
func Truncate(s string, budget int) string {
	if budget < 1 || utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget-1]) + Ellipsis
}

// TitleCase converts a hyphenated identifier ("main-speaker") into a display
// label ("Main Speaker").
func TitleCase(id string) string {
	id = strings.TrimSpace(strings.ReplaceAll(id, "-", " "))
	if id == "" {
		return ""
	}
	return cases.Title(language.Und).String(id)
}

// SentenceCase capitalises only the first word of a hyphenated identifier.
func SentenceCase(id string) string {
	id = strings.TrimSpace(strings.ReplaceAll(id, "-", " "))
	if id == "" {
		return ""
	}
	first, rest, _ := strings.Cut(id, " ")
	out := cases.Title(language.Und).String(first)
	if rest != "" {
		out += " " + strings.ToLower(rest)
	}
	return out
}

// FirstName returns the first whitespace-separated word of name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// OrDash returns s, or an em dash placeholder when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
