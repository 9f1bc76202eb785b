package aggregate

import (
	"math"
	"strconv"
	"strings"
)

// Normalizer canonicalises a text cell before it is counted as unique.
type Normalizer func(string) string

// Sum adds up key across records; missing or malformed cells count as zero.
func Sum(records []Record, key string) float64 {
	if key == "" {
		return 0
	}
	var total float64
	for _, r := range records {
		total += ParseNumber(r[key])
	}
	return Finite(total)
}

// SumAll sums several columns at once.
func SumAll(records []Record, keys ...string) float64 {
	var total float64
	for _, k := range keys {
		total += Sum(records, k)
	}
	return Finite(total)
}

// Max is for point-in-time headcounts that must not be added up across
// report rows.
func Max(records []Record, key string) float64 {
	if key == "" {
		return 0
	}
	var best float64
	for _, r := range records {
		if v := ParseNumber(r[key]); v > best {
			best = v
		}
	}
	return best
}

// Average is the mean over records whose cell carries a number. Blank and
// non-numeric cells are left out of the denominator.
func Average(records []Record, key string) float64 {
	if key == "" {
		return 0
	}
	var total float64
	var n int
	for _, r := range records {
		v, ok := ParseOptionalNumber(r[key])
		if !ok {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return 0
	}
	return Finite(total / float64(n))
}

// UniqueValues collects the distinct normalised values of key. Empty values
// and values that merely repeat the column label are skipped.
func UniqueValues(records []Record, key string, normalize Normalizer) map[string]struct{} {
	set := make(map[string]struct{})
	addUnique(set, records, key, normalize, nil)
	return set
}

// CountUnique is len(UniqueValues(...)).
func CountUnique(records []Record, key string, normalize Normalizer) int {
	return len(UniqueValues(records, key, normalize))
}

// CountUniqueSplit counts distinct entries of a multi-valued cell such as a
// list of languages.
func CountUniqueSplit(records []Record, key string, normalize Normalizer) int {
	set := make(map[string]struct{})
	addUnique(set, records, key, normalize, splitList)
	return len(set)
}

func addUnique(set map[string]struct{}, records []Record, key string, normalize Normalizer, split func(string) []string) {
	if key == "" {
		return
	}
	header := CleanKey(key)
	for _, r := range records {
		raw := cellText(r[key])
		if raw == "" {
			continue
		}
		parts := []string{raw}
		if split != nil {
			parts = split(raw)
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" || CleanKey(p) == header {
				continue
			}
			if normalize != nil {
				p = normalize(p)
			}
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
	}
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '،', ',', '/', ';', '؛', '\n', '|':
			return true
		}
		return false
	})
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := ParseOptionalNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
