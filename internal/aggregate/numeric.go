package aggregate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	arabicIndicZero         = '٠'
	extendedArabicIndicZero = '۰'
	arabicThousandsSep      = '٬'
	arabicDecimalSep        = '٫'
)

// ParseNumber turns a spreadsheet cell into a number. Anything that does not
// carry a number (nil, blank, free text, NaN) yields 0.
func ParseNumber(v any) float64 {
	f, ok := ParseOptionalNumber(v)
	if !ok {
		return 0
	}
	return f
}

// ParseOptionalNumber is the flexible variant of ParseNumber: ok is false when
// the cell holds no usable number, so averages can leave it out of the
// denominator.
func ParseOptionalNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		return parseNumericString(string(t))
	case string:
		return parseNumericString(t)
	default:
		return 0, false
	}
}

// Finite maps NaN and the infinities to 0. Sums of large finite cells can
// still overflow, and the JSON encoder rejects non-finite numbers.
func Finite(f float64) float64 {
	v, _ := finite(f)
	return v
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeDigits rewrites Eastern Arabic and Extended Arabic-Indic digits as
// ASCII digits and leaves every other rune alone.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= arabicIndicZero && r <= arabicIndicZero+9:
			return '0' + (r - arabicIndicZero)
		case r >= extendedArabicIndicZero && r <= extendedArabicIndicZero+9:
			return '0' + (r - extendedArabicIndicZero)
		}
		return r
	}, s)
}

func parseNumericString(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', arabicThousandsSep:
			return -1
		case arabicDecimalSep:
			return '.'
		}
		return r
	}, NormalizeDigits(s))
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return 0, false
	}
	prefix := leadingFloat(s)
	if prefix == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// leadingFloat returns the longest prefix of s that reads as a decimal number
// with optional sign, fraction and exponent.
func leadingFloat(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// formatCount prints integral values without a fraction.
func formatCount(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
