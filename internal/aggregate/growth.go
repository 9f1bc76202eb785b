package aggregate

import (
	"fmt"
	"math"
)

// NewGrowthCap is what a metric that went from zero to something contributes
// to a pooled growth average.
const NewGrowthCap = 200.0

// NewGrowthLabel is shown instead of a percentage for a metric with no
// previous value.
const NewGrowthLabel = "جديد"

// Growth is a period-over-period change. New marks a metric whose previous
// value was zero; Percent is then meaningless and left at 0.
type Growth struct {
	Percent float64 `json:"percent" yaml:"percent"`
	New     bool    `json:"new" yaml:"new"`
	Display string  `json:"display" yaml:"display"`
}

// ComputeGrowth compares current against previous.
func ComputeGrowth(previous, current float64) Growth {
	switch {
	case previous != 0:
		p := (current - previous) / previous * 100
		if math.IsNaN(p) || math.IsInf(p, 0) {
			p = 0
		}
		return Growth{Percent: p, Display: formatGrowth(p)}
	case current > 0:
		return Growth{New: true, Display: NewGrowthLabel}
	default:
		return Growth{Display: "0%"}
	}
}

// formatGrowth rounds to a whole percent; a change that rounds to zero is
// shown as "0%" whatever its sign.
func formatGrowth(p float64) string {
	r := math.Round(p)
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%.0f%%", r)
}

// AverageGrowth pools several growth figures. New metrics count as
// NewGrowthCap so a single new metric cannot dominate the average.
func AverageGrowth(gs []Growth) float64 {
	if len(gs) == 0 {
		return 0
	}
	var total float64
	for _, g := range gs {
		if g.New {
			total += NewGrowthCap
			continue
		}
		total += g.Percent
	}
	return Finite(total / float64(len(gs)))
}
