package match

import (
	"testing"

	"github.com/bkellow/domainhawk/internal/store"
)

func TestCompile_UnsafePatternNeverMatches(t *testing.T) {
	m := Compile("(a+)+", true)

	if m == nil {
		t.Fatal("Compile must never return nil")
	}
	if m.Reason() == "" {
		t.Error("expected a rejection reason for an unsafe pattern")
	}

	// An always-false matcher, never a panic.
	for _, name := range []string{"", "a", "aaaaaaaaaaaaaaaaaaaaaaaaaaaa", "cloudbank"} {
		if m.Test(name) {
			t.Errorf("unsafe pattern matched %q, want false", name)
		}
	}
}

func TestCompile_CaseInsensitive(t *testing.T) {
	m := Compile("^crypto", true)
	if m.Reason() != "" {
		t.Fatalf("unexpected rejection: %s", m.Reason())
	}
	if !m.Test("CryptoBank") {
		t.Error("case-insensitive compile should match mixed case input")
	}

	sensitive := Compile("^crypto", false)
	if sensitive.Test("CryptoBank") {
		t.Error("case-sensitive compile should not match mixed case input")
	}
}

func TestEngine_MatchesDomain(t *testing.T) {
	regex := func(pattern string, enabled bool) store.Pattern {
		return store.Pattern{Pattern: pattern, Kind: store.KindRegex, Enabled: enabled}
	}

	tests := []struct {
		name     string
		patterns []store.Pattern
		domain   string
		want     bool
	}{
		{
			name:     "Empty set matches everything",
			patterns: nil,
			domain:   "anything.com",
			want:     true,
		},
		{
			name:     "All patterns disabled matches everything",
			patterns: []store.Pattern{regex("^crypto", false)},
			domain:   "plainname.com",
			want:     true,
		},
		{
			name:     "Single match",
			patterns: []store.Pattern{regex("^crypto", true)},
			domain:   "cryptobank.com",
			want:     true,
		},
		{
			name:     "Single miss",
			patterns: []store.Pattern{regex("^crypto", true)},
			domain:   "cloudbank.com",
			want:     false,
		},
		{
			name:     "Any pattern suffices",
			patterns: []store.Pattern{regex("^zzz", true), regex("bank$", true)},
			domain:   "cloudbank.com",
			want:     true,
		},
		{
			name:     "Matches second-level name only",
			patterns: []store.Pattern{regex("com", true)},
			domain:   "cloudbank.com",
			want:     false,
		},
		{
			name:     "Unsafe pattern in set is a silent non-match",
			patterns: []store.Pattern{regex("(a+)+", true)},
			domain:   "aaaa.com",
			want:     false,
		},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.MatchesDomain(tt.patterns, tt.domain); got != tt.want {
				t.Errorf("MatchesDomain(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestEngine_MatchesKinds(t *testing.T) {
	e := NewEngine()

	structure := store.Pattern{Pattern: "CVCV", Kind: store.KindStructure, Enabled: true}
	if !e.Matches(structure, "toga") {
		t.Error("CVCV should match toga")
	}
	if e.Matches(structure, "abcd") {
		t.Error("CVCV should not match abcd")
	}
	if e.Matches(structure, "togas") {
		t.Error("structure patterns are anchored; CVCV should not match a 5-letter name")
	}

	// A long shape expands each C token into a 23-char class, pushing the
	// generated regex well past the length cap on typed patterns. Generated
	// regexes must not be gated like user input.
	long := store.Pattern{Pattern: "CCCCCCCCC", Kind: store.KindStructure, Enabled: true}
	if !e.Matches(long, "strngthbr") {
		t.Error("CCCCCCCCC should match a 9-consonant name")
	}
	if e.Matches(long, "cloudbank") {
		t.Error("CCCCCCCCC should not match a name with vowels")
	}

	pron := store.Pattern{Kind: store.KindPronounceable, Enabled: true}
	if !e.Matches(pron, "cloudbank") {
		t.Error("cloudbank should be pronounceable")
	}
	if e.Matches(pron, "xzqrtv") {
		t.Error("xzqrtv should not be pronounceable")
	}
}

func TestSecondLevelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CloudBank.com", "cloudbank"},
		{"sub.example.co.uk", "sub"},
		{"barename", "barename"},
		{"  spaced.net  ", "spaced"},
		{"trailingdot.org.", "trailingdot"},
	}

	for _, tt := range tests {
		if got := SecondLevelName(tt.in); got != tt.want {
			t.Errorf("SecondLevelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTLD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cloudbank.com", "com"},
		{"example.co.uk", "uk"},
		{"MIXED.IO", "io"},
		{"barename", "com"},
	}

	for _, tt := range tests {
		if got := TLD(tt.in); got != tt.want {
			t.Errorf("TLD(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPronounceable(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"cloudbank", true},
		{"toga", true},
		{"brand", true},
		{"xzqrtv", false}, // consonant run
		{"aaa", false},    // vowel run
		{"bcdf", false},   // no vowel
		{"ab12", false},   // digits
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPronounceable(tt.in); got != tt.want {
			t.Errorf("IsPronounceable(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
