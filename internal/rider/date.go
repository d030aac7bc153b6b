package rider

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

var dateLanguages = []language.Tag{language.English, language.Spanish, language.German, language.French}

var dateMatcher = language.NewMatcher(dateLanguages)

var monthNames = [][12]string{
	1: {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	2: {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	3: {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

// FormatDate writes t as a long date in the closest supported language.
// Unknown or malformed tags fall back to English. A zero time yields "".
func FormatDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	_, idx, confidence := dateMatcher.Match(tag)
	if confidence == language.No {
		idx = 0
	}
	month := t.Month() - 1
	switch idx {
	case 1:
		return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[1][month], t.Year())
	case 2:
		return fmt.Sprintf("%d. %s %d", t.Day(), monthNames[2][month], t.Year())
	case 3:
		return fmt.Sprintf("%d %s %d", t.Day(), monthNames[3][month], t.Year())
	}
	return t.Format("January 2, 2006")
}
