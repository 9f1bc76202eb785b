package source

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

// envelope keys used by web exports
const (
	keyData  = "data"
	keyError = "error"
)

// DecodeJSON reads an export in any of the shapes the web exports produce:
// a flat array of row objects, an object mapping tab name to rows, or either
// of those wrapped as {"data": ...}. Numbers are kept as json.Number so the
// original text reaches the number parser.
func DecodeJSON(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return fromPayload(payload)
}

func fromPayload(payload any) (Dataset, error) {
	switch v := payload.(type) {
	case nil:
		return Dataset{}, nil
	case []any:
		return Dataset{Sheets: []aggregate.Sheet{{Records: toRecords(v)}}}, nil
	case map[string]any:
		if msg, ok := v[keyError]; ok && msg != nil {
			return Dataset{}, fmt.Errorf("%w: remote error: %v", ErrMalformedPayload, msg)
		}
		if data, ok := v[keyData]; ok {
			return fromPayload(data)
		}
		return fromSheetMap(v)
	}
	return Dataset{}, fmt.Errorf("%w: unexpected %T at top level", ErrMalformedPayload, payload)
}

func fromSheetMap(m map[string]any) (Dataset, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	ds := Dataset{Sheets: make([]aggregate.Sheet, 0, len(names))}
	for _, name := range names {
		rows, ok := m[name].([]any)
		if !ok {
			return Dataset{}, fmt.Errorf("%w: sheet %q is %T, want array", ErrMalformedPayload, name, m[name])
		}
		ds.Sheets = append(ds.Sheets, aggregate.Sheet{Name: strings.TrimSpace(name), Records: toRecords(rows)})
	}
	return ds, nil
}

// toRecords keeps object rows and drops anything else.
func toRecords(rows []any) []aggregate.Record {
	out := make([]aggregate.Record, 0, len(rows))
	for _, row := range rows {
		if obj, ok := row.(map[string]any); ok {
			out = append(out, aggregate.Record(obj))
		}
	}
	return out
}
