package ffmpeg

import (
	"strings"
	"testing"
)

func TestEscapeFilterPathSpecials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/tmp/subs.srt", "/tmp/subs.srt"},
		{"colon", "C:/subs.srt", `C\\\:/subs.srt`},
		{"quote", "/tmp/it's.srt", `/tmp/it\\\'s.srt`},
		{"backslash", `C:\subs.srt`, `C\\\:\\\\subs.srt`},
		{"comma", "/tmp/a,b.srt", `/tmp/a\,b.srt`},
		{"semicolon", "/tmp/a;b.srt", `/tmp/a\;b.srt`},
		{"brackets", "/tmp/[a].srt", `/tmp/\[a\].srt`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeFilterPath(tt.in); got != tt.want {
				t.Errorf("EscapeFilterPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeFilterPathRoundTrip(t *testing.T) {
	// Full must-escape set for both parser levels, plus benign characters.
	paths := []string{
		"/tmp/plain.srt",
		`C:\Users\u\subs.srt`,
		"/tmp/o'brien's subs.srt",
		"/tmp/[track],part;two:three.srt",
		`:';,[]\`,
		strings.Repeat(`:\'`, 50),
		"/tmp/üñïçödé.srt",
	}
	for _, p := range paths {
		if got := UnescapeFilterPath(EscapeFilterPath(p)); got != p {
			t.Errorf("round trip of %q yielded %q", p, got)
		}
	}
}

func TestQuoteFilterValue(t *testing.T) {
	got := quoteFilterValue("FontSize=24,PrimaryColour=&Hffffff&")
	want := "'FontSize=24,PrimaryColour=&Hffffff&'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = quoteFilterValue(`Fontname=D'Ni`)
	want = `'Fontname=D\'Ni'`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
