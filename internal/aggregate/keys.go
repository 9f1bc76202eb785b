package aggregate

import (
	"strings"
)

// CleanKey trims a column label and collapses internal whitespace runs,
// newlines included, to a single space.
func CleanKey(label string) string {
	return strings.Join(strings.Fields(label), " ")
}

// CleanKeys returns copies of records with cleaned labels. Values are kept as
// they are and the input is not modified. When two raw labels clean to the
// same label, a non-empty value beats an empty one and otherwise the raw label
// that sorts first wins.
func CleanKeys(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = cleanRecord(rec)
	}
	return out
}

func cleanRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	cleaned := make(Record, len(rec))
	owner := make(map[string]string, len(rec))
	for _, raw := range sortedKeys(rec) {
		key := CleanKey(raw)
		val := rec[raw]
		prevRaw, seen := owner[key]
		if seen && (isBlank(val) || !isBlank(rec[prevRaw])) {
			continue
		}
		cleaned[key] = val
		owner[key] = raw
	}
	return cleaned
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}
