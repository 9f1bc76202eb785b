package aggregate

import (
	"strings"
)

// Field maps a canonical field id to the labels it appears under upstream.
// Labels are matched exactly (after cleaning); Contains is the fallback for
// label drift and matches the first key holding every fragment.
type Field struct {
	ID       string
	Labels   []string
	Contains []string
}

// Schema is the ordered field list of one project's sheet.
type Schema []Field

// Columns is a resolved schema: field id to the label present in the batch.
type Columns map[string]string

// Label returns the resolved label of id, or "" when the batch lacks it.
func (c Columns) Label(id string) string {
	return c[id]
}

// Resolve matches the schema once against every key seen in records.
func (s Schema) Resolve(records []Record) Columns {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	keys := sortedKeys(seen)

	cols := make(Columns, len(s))
	for _, f := range s {
		cols[f.ID] = f.resolve(seen, keys)
	}
	return cols
}

func (f Field) resolve(seen map[string]struct{}, keys []string) string {
	for _, l := range f.Labels {
		if _, ok := seen[CleanKey(l)]; ok {
			return CleanKey(l)
		}
	}
	if len(f.Contains) == 0 {
		return ""
	}
	for _, k := range keys {
		if containsAll(k, f.Contains) {
			return k
		}
	}
	return ""
}

func containsAll(s string, fragments []string) bool {
	for _, frag := range fragments {
		if !strings.Contains(s, frag) {
			return false
		}
	}
	return true
}
