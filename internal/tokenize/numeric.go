package tokenize

import (
	"math/big"
	"strings"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// siMultipliers mirrors s_mult_tbl: decimal (k/m/g/t/p/x/z/y, powers of
// 1000) and binary (ki/mi/gi/ti/pi/xi/zi/yi, powers of 1024) SI prefixes,
// case-insensitively.
var siMultipliers = buildMultipliers()

func buildMultipliers() map[string]*big.Int {
	dec := big.NewInt(1000)
	bin := big.NewInt(1024)
	names := []string{"k", "m", "g", "t", "p", "x", "z", "y"}
	out := make(map[string]*big.Int, len(names)*2)
	decPow := big.NewInt(1)
	binPow := big.NewInt(1)
	for _, n := range names {
		decPow = new(big.Int).Mul(decPow, dec)
		binPow = new(big.Int).Mul(binPow, bin)
		out[n] = new(big.Int).Set(decPow)
		out[n+"i"] = new(big.Int).Set(binPow)
	}
	return out
}

// splitMultiplierSuffix peels a trailing SI-prefix suffix (case-insensitive)
// off buf, returning the numeric prefix, the multiplier (nil if none), and
// an error (an unrecognised trailing alphabetic suffix returns
// NotANumber).
func splitMultiplierSuffix(buf string) (numeric string, mult *big.Int, err error) {
	trimmed := strings.TrimSpace(buf)
	i := len(trimmed)
	for i > 0 && isAlpha(trimmed[i-1]) {
		i--
	}
	if i == len(trimmed) {
		return trimmed, nil, nil
	}
	suffix := strings.ToLower(trimmed[i:])
	m, ok := siMultipliers[suffix]
	if !ok {
		return "", nil, result.Newf(result.NotANumber, "unrecognised multiplier suffix %q", suffix)
	}
	return trimmed[:i], m, nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ParseBigInt parses buf as a base-10 integer with an optional trailing SI
// multiplier suffix, computing the product at arbitrary precision before
// the caller narrows it to a fixed-width type.
func ParseBigInt(buf string) (*big.Int, error) {
	numeric, mult, err := splitMultiplierSuffix(buf)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(numeric, 10)
	if !ok {
		return nil, result.Newf(result.NotANumber, "not a number: %q", buf)
	}
	if mult != nil {
		n = new(big.Int).Mul(n, mult)
	}
	return n, nil
}

// fits reports whether n lies within [lo, hi] inclusive.
func fits(n, lo, hi *big.Int) bool {
	return n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0
}

// ParseInt64 parses a base-10 integer with an optional SI suffix and
// range-checks it against int64, returning OutOfRange on overflow.
func ParseInt64(buf string) (int64, error) {
	n, err := ParseBigInt(buf)
	if err != nil {
		return 0, err
	}
	lo := big.NewInt(-9223372036854775808)
	hi := big.NewInt(9223372036854775807)
	if !fits(n, lo, hi) {
		return 0, result.Newf(result.OutOfRange, "%s out of int64 range", n.String())
	}
	return n.Int64(), nil
}

// ParseUint64 parses a base-10 unsigned integer with an optional SI suffix.
func ParseUint64(buf string) (uint64, error) {
	n, err := ParseBigInt(buf)
	if err != nil {
		return 0, err
	}
	lo := big.NewInt(0)
	hi := new(big.Int).SetUint64(18446744073709551615)
	if !fits(n, lo, hi) {
		return 0, result.Newf(result.OutOfRange, "%s out of uint64 range", n.String())
	}
	return n.Uint64(), nil
}

// ParseInt32 and ParseUint32 narrow ParseInt64/ParseUint64 further, as the
// original's per-width wrappers do atop their 64-bit primitives.
func ParseInt32(buf string) (int32, error) {
	n, err := ParseInt64(buf)
	if err != nil {
		return 0, err
	}
	if n < -2147483648 || n > 2147483647 {
		return 0, result.Newf(result.OutOfRange, "%d out of int32 range", n)
	}
	return int32(n), nil
}

func ParseUint32(buf string) (uint32, error) {
	n, err := ParseUint64(buf)
	if err != nil {
		return 0, err
	}
	if n > 4294967295 {
		return 0, result.Newf(result.OutOfRange, "%d out of uint32 range", n)
	}
	return uint32(n), nil
}

func ParseInt16(buf string) (int16, error) {
	n, err := ParseInt64(buf)
	if err != nil {
		return 0, err
	}
	if n < -32768 || n > 32767 {
		return 0, result.Newf(result.OutOfRange, "%d out of int16 range", n)
	}
	return int16(n), nil
}

func ParseUint16(buf string) (uint16, error) {
	n, err := ParseUint64(buf)
	if err != nil {
		return 0, err
	}
	if n > 65535 {
		return 0, result.Newf(result.OutOfRange, "%d out of uint16 range", n)
	}
	return uint16(n), nil
}
