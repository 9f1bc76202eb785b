package aggregate

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// UnknownYear buckets rows whose year cannot be determined.
const UnknownYear = "unknown"

// Stats is a flat set of named figures.
type Stats map[string]float64

// YearlyStats keeps the per-year breakdown and the overall total apart so
// iterating the years never picks up the total by accident.
type YearlyStats struct {
	PerYear map[string]Stats `json:"perYear" yaml:"perYear"`
	Total   Stats            `json:"total" yaml:"total"`

	rows map[string][]Record
}

// Years returns the years in ascending order with UnknownYear last.
func (y *YearlyStats) Years() []string {
	if y == nil {
		return nil
	}
	years := make([]string, 0, len(y.PerYear))
	for k := range y.PerYear {
		years = append(years, k)
	}
	sort.Slice(years, func(i, j int) bool {
		if years[i] == UnknownYear {
			return false
		}
		if years[j] == UnknownYear {
			return true
		}
		return years[i] < years[j]
	})
	return years
}

// UniqueField is a statistic counted as distinct values of Column.
type UniqueField struct {
	Key       string
	Column    string
	Normalize Normalizer
}

// YearFunc picks the year of a record; sheet is the tab it came from.
type YearFunc func(sheet string, rec Record) string

// BuildYearly sums additive figures per year and derives the total as the sum
// over years. Unique counts are taken per year and recomputed over all rows
// for the total, so an entity seen in two years counts once overall.
func BuildYearly(sheets []Sheet, yearOf YearFunc, additive func(Record) Stats, uniques []UniqueField) *YearlyStats {
	ys := &YearlyStats{PerYear: make(map[string]Stats), Total: make(Stats)}
	byYear := make(map[string][]Record)
	var all []Record

	for _, sh := range sheets {
		for _, rec := range sh.Records {
			year := yearOf(sh.Name, rec)
			if year == "" {
				year = UnknownYear
			}
			if ys.PerYear[year] == nil {
				ys.PerYear[year] = make(Stats)
			}
			for k, v := range additive(rec) {
				ys.PerYear[year][k] = Finite(ys.PerYear[year][k] + v)
			}
			byYear[year] = append(byYear[year], rec)
			all = append(all, rec)
		}
	}

	for _, year := range ys.Years() {
		for k, v := range ys.PerYear[year] {
			ys.Total[k] = Finite(ys.Total[k] + v)
		}
	}

	for _, u := range uniques {
		for year, recs := range byYear {
			ys.PerYear[year][u.Key] = float64(CountUnique(recs, u.Column, u.Normalize))
		}
		ys.Total[u.Key] = float64(CountUnique(all, u.Column, u.Normalize))
	}
	ys.rows = byYear
	return ys
}

// UniqueAcross counts distinct values of column over the union of the given
// years' rows.
func (y *YearlyStats) UniqueAcross(years []string, column string, normalize Normalizer) int {
	if y == nil {
		return 0
	}
	var recs []Record
	for _, yr := range years {
		recs = append(recs, y.rows[yr]...)
	}
	return CountUnique(recs, column, normalize)
}

// YearFromSheetOrColumn prefers a year in the sheet name ("2024", "وفود 2025")
// and falls back to the date held in column.
func YearFromSheetOrColumn(column string) YearFunc {
	return func(sheet string, rec Record) string {
		if y := ExtractYear(sheet); y != "" {
			return y
		}
		if column == "" {
			return UnknownYear
		}
		if y := YearOfCell(rec[column]); y != "" {
			return y
		}
		return UnknownYear
	}
}

// ExtractYear returns the first run of exactly four digits in s (after digit
// normalisation), or "".
func ExtractYear(s string) string {
	s = NormalizeDigits(s)
	run := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && isDigit(s[i]) {
			run++
			continue
		}
		if run == 4 {
			return s[i-4 : i]
		}
		run = 0
	}
	return ""
}

// Spreadsheet serial dates count days from 1899-12-30.
var sheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// YearOfCell reads a year from a date cell: ISO or d/m/y strings, a bare
// year, or a spreadsheet serial day number (as a number or as raw cell text).
func YearOfCell(v any) string {
	if s, ok := v.(string); ok {
		if y := ExtractYear(s); y != "" {
			return y
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(NormalizeDigits(s)), 64)
		if err != nil {
			return ""
		}
		v = f
	}
	f, ok := ParseOptionalNumber(v)
	switch {
	case !ok:
		return ""
	case f >= 1900 && f <= 2100:
		return strconv.Itoa(int(f))
	case f > 2100 && f < 2958466:
		return sheetEpoch.AddDate(0, 0, int(f)).Format("2006")
	}
	return ""
}
