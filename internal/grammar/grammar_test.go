package grammar_test

import (
	"strings"
	"testing"

	"github.com/ghettovoice/httpauth/internal/grammar"
)

func TestIsTokenChar(t *testing.T) {
	t.Parallel()

	const tchars = "!#$%&'*+-.^_`|~0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	for i := range 256 {
		c := byte(i)
		if got, want := grammar.IsTokenChar(c), strings.IndexByte(tchars, c) >= 0; got != want {
			t.Errorf("grammar.IsTokenChar(%#02x) = %v, want %v", c, got, want)
		}
	}
}

func TestIsToken68Char(t *testing.T) {
	t.Parallel()

	const chars = "-._~+/0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	for i := range 256 {
		c := byte(i)
		if got, want := grammar.IsToken68Char(c), strings.IndexByte(chars, c) >= 0; got != want {
			t.Errorf("grammar.IsToken68Char(%#02x) = %v, want %v", c, got, want)
		}
	}
}

func TestIsQuotedTextChar(t *testing.T) {
	t.Parallel()

	for i := range 256 {
		c := byte(i)
		want := c == '\t' || c == ' ' || c == '!' ||
			(c >= 0x23 && c <= 0x5B) || (c >= 0x5D && c <= 0x7E) || c >= 0x80
		if got := grammar.IsQuotedTextChar(c); got != want {
			t.Errorf("grammar.IsQuotedTextChar(%#02x) = %v, want %v", c, got, want)
		}
	}
}

func TestIsQuotedPairChar(t *testing.T) {
	t.Parallel()

	for i := range 256 {
		c := byte(i)
		want := c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80
		if got := grammar.IsQuotedPairChar(c); got != want {
			t.Errorf("grammar.IsQuotedPairChar(%#02x) = %v, want %v", c, got, want)
		}
	}
}

func TestIsLegacyValueChar(t *testing.T) {
	t.Parallel()

	for i := range 256 {
		c := byte(i)
		want := grammar.IsTokenChar(c) || c == '/' || c == ';'
		if got := grammar.IsLegacyValueChar(c); got != want {
			t.Errorf("grammar.IsLegacyValueChar(%#02x) = %v, want %v", c, got, want)
		}
	}
}

func TestIsToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want bool
	}{
		{"empty", "", false},
		{"alpha", "Bearer", true},
		{"all specials", "!#$%&'*+-.^_`|~", true},
		{"digits", "09", true},
		{"space", "a b", false},
		{"quote", `a"b`, false},
		{"slash", "a/b", false},
		{"separators", "()<>@,;:\\\"/[]?={}", false},
		{"del", "a\x7f", false},
		{"obs-text", "a\x80", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsToken(c.str), c.want; got != want {
				t.Errorf("grammar.IsToken(%q) = %v, want %v", c.str, got, want)
			}
			if got, want := grammar.IsToken([]byte(c.str)), c.want; got != want {
				t.Errorf("grammar.IsToken([]byte(%q)) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestIsToken68(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want bool
	}{
		{"empty", "", false},
		{"single", "a", true},
		{"base64", "QWxhZGRpbjpvcGVuIHNlc2FtZQ==", true},
		{"all chars", "09AZaz-._~+/", true},
		{"padding only", "==", false},
		{"many paddings", "aaaaa===", true},
		{"padding in the middle", "aa=bb", false},
		{"space", "aa bb", false},
		{"trailing space", "aa ", false},
		{"param", "a=1", false},
		{"comma", "a,b", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsToken68(c.str), c.want; got != want {
				t.Errorf("grammar.IsToken68(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestIsQuotable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want bool
	}{
		{"empty", "", true},
		{"text", `with "quote" and \ slash`, true},
		{"tab", "a\tb", true},
		{"obs-text", "\x80\xcc\xff", true},
		{"newline", "a\nb", false},
		{"del", "a\x7fb", false},
		{"nul", "\x00", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsQuotable(c.str), c.want; got != want {
				t.Errorf("grammar.IsQuotable(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", `""`},
		{"no quote", "abc", `"abc"`},
		{"with quote", `"ab"c"`, `"\"ab\"c\""`},
		{"with backslash quote", `ab\"c`, `"ab\\\"c"`},
		{"spaces", " a b ", `" a b "`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Quote(c.str), c.want; got != want {
				t.Errorf("grammar.Quote(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func BenchmarkIsToken(b *testing.B) {
	s := strings.Repeat("SCRAM-SHA-256", 8)
	for b.Loop() {
		if !grammar.IsToken(s) {
			b.Fatalf("grammar.IsToken(%q) = false, want true", s)
		}
	}
}
