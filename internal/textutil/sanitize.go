package textutil

import "strings"

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename and
// collapses whitespace runs into single dashes. Returns fallback when nothing
// usable remains.
func SanitizeFileName(name, fallback string) string {
	cleaned := fileNameReplacer.Replace(strings.TrimSpace(name))
	cleaned = strings.Join(strings.Fields(cleaned), "-")
	cleaned = strings.Trim(cleaned, "-.")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}
