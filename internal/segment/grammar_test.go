package segment

import "testing"

func TestTokenBefore(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"Dr", "Dr"},
		{"Meet Dr", "Dr"},
		{"see (Fig", "Fig"},
		{"«См", "См"},
		{"an extraordinarily", ""},
		{"abcdefghij", "abcdefghij"},
		{"word ", ""},
	}
	for _, tt := range tests {
		if got := tokenBefore([]byte(tt.src), len(tt.src)); got != tt.want {
			t.Errorf("tokenBefore(%q): expected %q, got %q", tt.src, tt.want, got)
		}
	}
}

func TestIsAbbreviation(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"Mr", true},
		{"MRS", true},
		{"etc", true},
		{"ул", true},
		{"J", true},
		{"j", false},
		{"I", false},
		{"A", false},
		{"U.S", true},
		{"e.g", true},
		{"т.е", true},
		{"a.bcd", false},
		{"Blvd", true},
		{"Ltd", true},
		{"BBC", false},
		{"Xyz", false},
		{"world", false},
		{"3", false},
		{"1990", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isAbbreviation(defaultAbbreviationSet, tt.tok); got != tt.want {
			t.Errorf("isAbbreviation(%q): expected %v, got %v", tt.tok, tt.want, got)
		}
	}
}

func TestNewAbbreviationSet_NormalisesExtras(t *testing.T) {
	set := newAbbreviationSet([]string{" Ex. ", "", "."})
	if _, ok := set["ex"]; !ok {
		t.Error("expected extra abbreviation to be stored lowercase without period")
	}
	if _, ok := set[""]; ok {
		t.Error("expected empty entries to be ignored")
	}
	if _, ok := set["mr"]; !ok {
		t.Error("expected defaults to be kept")
	}
	if _, ok := defaultAbbreviationSet["ex"]; ok {
		t.Error("extras must not leak into the default set")
	}
}

func TestClassifiers(t *testing.T) {
	for _, r := range []rune{'\n', '\r', '\u0085', '\u2028', '\u2029'} {
		if !isLineBreak(r) {
			t.Errorf("expected %U to be a line break", r)
		}
	}
	if isLineBreak(' ') || isLineBreak('\t') {
		t.Error("horizontal whitespace is not a line break")
	}
	for _, r := range []rune{'.', '!', '?', '…', '。', '！'} {
		if !isTerminal(r) {
			t.Errorf("expected %q to be terminal", r)
		}
	}
	if isCJKTerminal('.') {
		t.Error("ASCII period is not a CJK terminal")
	}
	if !isCloser('»') || !isOpener('«') {
		t.Error("guillemets must be classified")
	}
}
