package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYear(t *testing.T) {
	assert.Equal(t, "2024", ExtractYear("2024"))
	assert.Equal(t, "2025", ExtractYear("وفود ٢٠٢٥"))
	assert.Equal(t, "2025", ExtractYear("15/03/2025"))
	assert.Equal(t, "", ExtractYear("20245"))
	assert.Equal(t, "", ExtractYear("Sheet1"))
}

func TestYearOfCell(t *testing.T) {
	assert.Equal(t, "2024", YearOfCell("2024-03-01"))
	assert.Equal(t, "2024", YearOfCell(2024))
	assert.Equal(t, "2024", YearOfCell(45300.0))
	assert.Equal(t, "2024", YearOfCell("45356"))
	assert.Equal(t, "2025", YearOfCell("45721.5"))
	assert.Equal(t, "", YearOfCell("3000 ريال"))
	assert.Equal(t, "", YearOfCell(nil))
	assert.Equal(t, "", YearOfCell(12))
}

// TestBuildYearly tests the per-year breakdown and its total
func TestBuildYearly(t *testing.T) {
	sheets := []Sheet{
		{Name: "2024", Records: []Record{
			{"name": "الوفد الصيني", "n": 100},
			{"name": "الهندي", "n": 20},
		}},
		{Name: "وفود 2025", Records: []Record{
			{"name": "الصيني", "n": 150},
		}},
		{Name: "", Records: []Record{
			{"name": "التركي", "n": 5, "date": "2025-02-01"},
			{"name": "الماليزي", "n": 7},
		}},
	}

	ys := BuildYearly(
		sheets,
		YearFromSheetOrColumn("date"),
		func(r Record) Stats { return Stats{"n": ParseNumber(r["n"])} },
		[]UniqueField{{Key: "names", Column: "name", Normalize: NormalizeDelegationName}},
	)

	assert.Equal(t, []string{"2024", "2025", UnknownYear}, ys.Years())
	assert.Equal(t, 120.0, ys.PerYear["2024"]["n"])
	assert.Equal(t, 155.0, ys.PerYear["2025"]["n"])
	assert.Equal(t, 7.0, ys.PerYear[UnknownYear]["n"])

	t.Run("additive total is the sum over years", func(t *testing.T) {
		var sum float64
		for _, y := range ys.Years() {
			sum += ys.PerYear[y]["n"]
		}
		assert.Equal(t, sum, ys.Total["n"])
	})

	t.Run("unique total counts the union", func(t *testing.T) {
		assert.Equal(t, 2.0, ys.PerYear["2024"]["names"])
		assert.Equal(t, 2.0, ys.PerYear["2025"]["names"])
		assert.Equal(t, 4.0, ys.Total["names"])
		assert.Equal(t, 3, ys.UniqueAcross([]string{"2024", "2025"}, "name", NormalizeDelegationName))
	})
}

func TestBuildYearlyEmpty(t *testing.T) {
	ys := BuildYearly(nil, YearFromSheetOrColumn(""), func(Record) Stats { return nil }, nil)

	assert.Empty(t, ys.PerYear)
	assert.Empty(t, ys.Total)
	assert.Empty(t, ys.Years())
}
