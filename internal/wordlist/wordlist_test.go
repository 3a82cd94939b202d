package wordlist

import (
	"reflect"
	"testing"
)

func TestKnown(t *testing.T) {
	for _, w := range []string{"crypto", "bank", "hawk", "the"} {
		if !Known(w) {
			t.Errorf("expected %q to be known", w)
		}
	}
	for _, w := range []string{"xqzv", "", "CRYPTO"} {
		if Known(w) {
			t.Errorf("expected %q to be unknown", w)
		}
	}
}

func TestIsPremium(t *testing.T) {
	if !IsPremium("crypto") {
		t.Error("crypto should be premium")
	}
	if IsPremium("hawk") {
		t.Error("hawk is a dictionary word, not premium")
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "Two known words",
			in:   "cloudbank",
			want: []string{"cloud", "bank"},
		},
		{
			name: "Longest match wins",
			in:   "wallet",
			want: []string{"wallet"}, // not "wall"+"et"; "wallet" is premium
		},
		{
			name: "Leftover run",
			in:   "zzcloudzz",
			want: []string{"zz", "cloud", "zz"},
		},
		{
			name: "All unknown",
			in:   "xqzvw",
			want: []string{"xqzvw"},
		},
		{
			name: "Empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
