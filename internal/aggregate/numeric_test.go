package aggregate

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseNumber tests cell to number conversion
func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"whitespace", "   ", 0},
		{"free text", "لا يوجد", 0},
		{"plain integer string", "42", 42},
		{"thousands separator", "1,234", 1234},
		{"arabic thousands separator", "١٬٢٣٤", 1234},
		{"eastern arabic digits", "١٢٣", 123},
		{"extended arabic-indic digits", "۴۵", 45},
		{"arabic decimal separator", "٣٫٥", 3.5},
		{"trailing unit", "12.5 ساعة", 12.5},
		{"negative", "-4", -4},
		{"exponent", "1e3", 1000},
		{"int", 7, 7},
		{"int64", int64(9), 9},
		{"float", 3.5, 3.5},
		{"json number", json.Number("42.25"), 42.25},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestParseNumberRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 1, -1, 0.5, 1500, 123456.789, -42.125} {
		assert.Equal(t, n, ParseNumber(strconv.FormatFloat(n, 'f', -1, 64)))
	}
}

// TestParseOptionalNumber tests that blank cells are reported as missing
func TestParseOptionalNumber(t *testing.T) {
	t.Run("zero is a value", func(t *testing.T) {
		v, ok := ParseOptionalNumber("0")
		assert.True(t, ok)
		assert.Equal(t, 0.0, v)
	})

	t.Run("blank is missing", func(t *testing.T) {
		_, ok := ParseOptionalNumber("  ")
		assert.False(t, ok)
	})

	t.Run("text is missing", func(t *testing.T) {
		_, ok := ParseOptionalNumber("abc")
		assert.False(t, ok)
	})

	t.Run("unsupported type is missing", func(t *testing.T) {
		_, ok := ParseOptionalNumber([]int{1})
		assert.False(t, ok)
	})
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "2025-01-09", NormalizeDigits("٢٠٢٥-٠١-٠٩"))
	assert.Equal(t, "1447", NormalizeDigits("۱۴۴۷"))
	assert.Equal(t, "وفود 2024", NormalizeDigits("وفود 2024"))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "1500", Number(1500).String())
	assert.Equal(t, "2.50", Number(2.5).String())
	assert.Equal(t, "87.3%", Percent(87.34).String())
	assert.Equal(t, "جديد", Text("جديد").String())
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Value{Number(12), Percent(80)})
	assert.NoError(t, err)
	assert.JSONEq(t, `[12, "80.0%"]`, string(data))

	var back []Value
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.False(t, back[0].IsText())
	assert.Equal(t, 12.0, back[0].Float())
	assert.True(t, back[1].IsText())
	assert.Equal(t, "80.0%", back[1].String())

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}
