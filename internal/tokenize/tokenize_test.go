package tokenize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/result"
)

func TestTokenizeCollapsesDelimiterRuns(t *testing.T) {
	out := Tokenize("  bridge   br0  create ", " \t")
	require.Equal(t, []string{"bridge", "br0", "create"}, out)
}

func TestTokenizeWithLimitLeavesTailUnsplit(t *testing.T) {
	out := TokenizeWithLimit("channel ch0 create -dst 127.0.0.1", " ", 2)
	require.Equal(t, []string{"channel", "ch0", "create -dst 127.0.0.1"}, out)
}

func TestTokenizeQuoteKeepsQuotedSpaces(t *testing.T) {
	out, err := TokenizeQuote(`bridge br0 set -description "a long name"`, " ", `"`)
	require.NoError(t, err)
	require.Equal(t, []string{"bridge", "br0", "set", "-description", "a long name"}, out)
}

func TestTokenizeQuoteHandlesEscapedQuote(t *testing.T) {
	out, err := TokenizeQuote(`set -name "a \"quoted\" word"`, " ", `"`)
	require.NoError(t, err)
	require.Equal(t, []string{"set", "-name", `a "quoted" word`}, out)
}

func TestTokenizeQuoteUnterminatedIsQuoteNotClosed(t *testing.T) {
	_, err := TokenizeQuote(`set -name "unterminated`, " ", `"`)
	require.True(t, errors.Is(err, result.New(result.QuoteNotClosed)))
}

func TestUnescapeAndEscapeRoundTrip(t *testing.T) {
	escaped := Escape(`a "quoted" value`, `"`)
	require.Equal(t, `a \"quoted\" value`, escaped)
	require.Equal(t, `a "quoted" value`, Unescape(escaped, `"`))
}

func TestParseBoolAcceptsKnownSpellings(t *testing.T) {
	for _, s := range []string{"true", "YES", "On", "1"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		require.True(t, v)
	}
	for _, s := range []string{"false", "NO", "Off", "0"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		require.False(t, v)
	}
	_, err := ParseBool("maybe")
	require.True(t, errors.Is(err, result.New(result.InvalidArgs)))
}

func TestParseInt64WithSIMultiplier(t *testing.T) {
	v, err := ParseInt64("4k")
	require.NoError(t, err)
	require.Equal(t, int64(4000), v)

	v, err = ParseInt64("2ki")
	require.NoError(t, err)
	require.Equal(t, int64(2048), v)

	v, err = ParseInt64("-5")
	require.NoError(t, err)
	require.Equal(t, int64(-5), v)
}

func TestParseUint64OutOfRangeOnNegative(t *testing.T) {
	_, err := ParseUint64("-1")
	require.True(t, errors.Is(err, result.New(result.OutOfRange)))
}

func TestParseInt32OutOfRange(t *testing.T) {
	_, err := ParseInt32("99999999999")
	require.True(t, errors.Is(err, result.New(result.OutOfRange)))
}

func TestParseUnknownSuffixIsNotANumber(t *testing.T) {
	_, err := ParseInt64("5zz")
	require.True(t, errors.Is(err, result.New(result.NotANumber)))
}
