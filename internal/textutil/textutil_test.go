package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		budget int
		want   string
	}{
		{"Les Paul", 14, "Les Paul"},
		{"Exactly14Chars", 14, "Exactly14Chars"},
		{"Fender Stratocaster", 14, "Fender Strato…"},
		{"Ñandú eléctrico largo", 6, "Ñandú…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.budget); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.budget, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"main-speaker": "Main Speaker",
		"guitar":       "Guitar",
		"":             "",
		" back-left ":  "Back Left",
	}
	for in, want := range tests {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
	if got := SentenceCase("power-amp"); got != "Power amp" {
		t.Errorf("SentenceCase = %q", got)
	}
}

func TestFirstNameAndDash(t *testing.T) {
	if got := FirstName("  Ana María López"); got != "Ana" {
		t.Errorf("FirstName = %q", got)
	}
	if got := FirstName(""); got != "" {
		t.Errorf("FirstName(empty) = %q", got)
	}
	if got := OrDash(" "); got != "—" {
		t.Errorf("OrDash(blank) = %q", got)
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("Bohemian Rhapsody", "bohemian rhapsody"); got < 0.999 {
		t.Errorf("identical similarity = %v", got)
	}
	if got := Similarity("apple banana", "dog frog"); got != 0 {
		t.Errorf("disjoint similarity = %v", got)
	}
	partial := Similarity("Bohemian Rhapsody Queen", "Bohemian Rhapsody (Live)")
	if partial <= 0 || partial >= 1 {
		t.Errorf("partial similarity = %v", partial)
	}
	if got := Similarity("", "x"); got != 0 {
		t.Errorf("empty similarity = %v", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"AC/DC Tribute", "AC-DC-Tribute"},
		{"  What?  ", "What"},
		{"***", "rider"},
		{"", "rider"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in, "rider"); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
