package source

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

// TestDecodeJSON tests the accepted export shapes
func TestDecodeJSON(t *testing.T) {
	t.Run("flat array", func(t *testing.T) {
		ds, err := DecodeJSON(strings.NewReader(`[{"عدد المستفيدين": 10}, {"عدد المستفيدين": "٥"}, 3]`))

		require.NoError(t, err)
		require.Len(t, ds.Sheets, 1)
		assert.Equal(t, "", ds.Sheets[0].Name)
		assert.Len(t, ds.Records(), 2)
		assert.Equal(t, json.Number("10"), ds.Records()[0]["عدد المستفيدين"])
		assert.Equal(t, 15.0, aggregate.Sum(ds.Records(), "عدد المستفيدين"))
	})

	t.Run("sheet map", func(t *testing.T) {
		ds, err := DecodeJSON(strings.NewReader(`{"2025": [{"a": 1}], "2024": [{"a": 2}, {"a": 3}]}`))

		require.NoError(t, err)
		require.Len(t, ds.Sheets, 2)
		assert.Equal(t, "2024", ds.Sheets[0].Name)
		assert.Len(t, ds.Sheets[0].Records, 2)
		assert.Equal(t, "2025", ds.Sheets[1].Name)
	})

	t.Run("data envelope", func(t *testing.T) {
		ds, err := DecodeJSON(strings.NewReader(`{"data": [{"a": 1}]}`))

		require.NoError(t, err)
		assert.Len(t, ds.Records(), 1)
	})

	t.Run("remote error", func(t *testing.T) {
		_, err := DecodeJSON(strings.NewReader(`{"error": "quota exceeded"}`))

		assert.ErrorIs(t, err, ErrMalformedPayload)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("sheet is not an array", func(t *testing.T) {
		_, err := DecodeJSON(strings.NewReader(`{"2024": 5}`))

		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeJSON(strings.NewReader(`[{`))

		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("scalar", func(t *testing.T) {
		_, err := DecodeJSON(strings.NewReader(`"hello"`))

		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("null", func(t *testing.T) {
		ds, err := DecodeJSON(strings.NewReader(`null`))

		require.NoError(t, err)
		assert.Empty(t, ds.Sheets)
	})
}
