// Package tokenize implements the delimiter splitting, quote-aware
// splitting, escaping and typed-value parsing the evaluator needs to turn
// one logical configuration line into a verb and its arguments. It is
// grounded on original_source/src/lib/strutils.c's
// lagopus_str_tokenize(_with_limit)/lagopus_str_tokenize_quote/
// lagopus_str_(un)escape/lagopus_str_parse_bool and the SI-prefixed integer
// parsers.
package tokenize

import (
	"strings"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// Tokenize splits s on any of the bytes in delim, collapsing runs of
// delimiters and ignoring leading/trailing delimiters, with no quoting.
func Tokenize(s, delim string) []string {
	return TokenizeWithLimit(s, delim, 0)
}

// TokenizeWithLimit behaves like Tokenize but after limit tokens have been
// produced (limit <= 0 means unlimited), the remainder of s (from the next
// non-delimiter run onward) is returned unsplit as the final token.
func TokenizeWithLimit(s, delim string, limit int) []string {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && strings.IndexByte(delim, s[i]) >= 0 {
			i++
		}
		if i >= len(s) {
			break
		}
		if limit > 0 && len(out) >= limit {
			out = append(out, s[i:])
			return out
		}
		start := i
		for i < len(s) && strings.IndexByte(delim, s[i]) < 0 {
			i++
		}
		out = append(out, s[start:i])
	}
	return out
}

// TokenizeQuote splits s on delim bytes as Tokenize does, but any byte in
// quote opens a quoted run that is not itself split on delim, continuing
// until an unescaped (not preceded by '\') occurrence of the same quote
// byte. An unterminated quoted run yields QuoteNotClosed.
func TokenizeQuote(s, delim, quote string) ([]string, error) {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && strings.IndexByte(delim, s[i]) >= 0 {
			i++
		}
		if i >= len(s) {
			break
		}

		var tok strings.Builder
		for i < len(s) && strings.IndexByte(delim, s[i]) < 0 {
			if strings.IndexByte(quote, s[i]) >= 0 {
				q := s[i]
				i++
				end := -1
				for j := i; j < len(s); j++ {
					if s[j] == q && (j == 0 || s[j-1] != '\\') {
						end = j
						break
					}
				}
				if end < 0 {
					return nil, result.New(result.QuoteNotClosed)
				}
				tok.WriteString(Unescape(s[i:end], quote))
				i = end + 1
				continue
			}
			tok.WriteByte(s[i])
			i++
		}
		out = append(out, tok.String())
	}
	return out, nil
}

// Unescape removes a single backslash before any byte in escaped, and
// collapses "\\" to a single backslash. A backslash before a byte not in
// escaped is passed through unchanged (including the backslash itself).
func Unescape(s, escaped string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			next := s[i+1]
			if next == '\\' || strings.IndexByte(escaped, next) >= 0 {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Escape inserts a backslash before any byte in toEscape (and before any
// literal backslash), the inverse of Unescape.
func Escape(s, toEscape string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || strings.IndexByte(toEscape, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ParseBool accepts the original's case-insensitive true/yes/on/1 and
// false/no/off/0 spellings; anything else is InvalidArgs.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, result.Newf(result.InvalidArgs, "not a boolean: %q", s)
	}
}
