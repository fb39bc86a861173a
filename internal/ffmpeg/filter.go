package ffmpeg

import "strings"

// Filter expression values pass through two parsers before a filter sees
// them. The option parser treats ':' as the key/value separator and honors
// backslash escapes and single quotes; the filtergraph parser additionally
// treats '[', ']', ',' and ';' as structural. A path is therefore escaped
// twice, innermost level first, per the escaping rules in ffmpeg-utils(1).

const escapeChar = `\`

// Characters significant to the filter option parser.
const optionSpecials = `\':`

// Characters significant to the filtergraph parser. ':' separates filter
// options at this level too, so it is escaped again; ffmpeg's filtergraph
// escaping notes show exactly this double escape for colons.
const graphSpecials = `\':[],;`

func escapeSet(s, specials string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(specials, r) {
			b.WriteString(escapeChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unescapeOnce strips one level of backslash escaping.
func unescapeOnce(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && string(r) == escapeChar {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeFilterPath escapes a filesystem path for embedding as a filter
// option value inside a filtergraph expression, e.g. the filename argument
// of the subtitles filter. The transform is pure; re-parsing the result at
// both levels yields the original path.
func EscapeFilterPath(path string) string {
	return escapeSet(escapeSet(path, optionSpecials), graphSpecials)
}

// UnescapeFilterPath reverses EscapeFilterPath. It exists so the escaping
// round-trip is testable against the full special-character set.
func UnescapeFilterPath(s string) string {
	return unescapeOnce(unescapeOnce(s))
}

// quoteFilterValue wraps a filter option value in single quotes so embedded
// commas survive both parser levels, escaping quote and backslash
// characters inside the value.
func quoteFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
