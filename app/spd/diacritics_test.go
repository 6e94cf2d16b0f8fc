package spd

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Příliš žluťoučký kůň úpěl ďábelské ódy", want: "Prilis zlutoucky kun upel dabelske ody"},
		{in: "PŘÍLIŠ ŽLUŤOUČKÝ KŮŇ", want: "PRILIS ZLUTOUCKY KUN"},
		{in: "Ľubomír Ĺľ ŕ Ŕ ô ä", want: "Lubomir Ll r R o a"},
		{in: "Łódź Gdańsk Köln Győr", want: "Lodz Gdansk Koln Gyor"},
		{in: "faktura 2024/15", want: "faktura 2024/15"},
		{in: "Привет 日本", want: "Привет 日本"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := StripDiacritics(tt.in); got != tt.want {
			t.Fatalf("StripDiacritics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripDiacriticsSinglePass(t *testing.T) {
	for from, to := range diacritics {
		if _, chained := diacritics[to]; chained {
			t.Fatalf("%q maps to %q which is itself mapped", from, to)
		}
		if to >= utf8.RuneSelf {
			t.Fatalf("%q maps to non-ASCII %q", from, to)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("abc", 5); got != "abc" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := truncateRunes("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected: %q", got)
	}
	long := strings.Repeat("ж", 70)
	got := truncateRunes(long, 60)
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 60 {
		t.Fatalf("expected 60 valid runes, got %d (valid=%v)", utf8.RuneCountInString(got), utf8.ValidString(got))
	}
}
