package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGrowth(t *testing.T) {
	tests := []struct {
		name string
		prev float64
		cur  float64
		want Growth
	}{
		{"increase", 100, 150, Growth{Percent: 50, Display: "50%"}},
		{"decrease", 100, 50, Growth{Percent: -50, Display: "-50%"}},
		{"from zero", 0, 10, Growth{New: true, Display: NewGrowthLabel}},
		{"both zero", 0, 0, Growth{Display: "0%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeGrowth(tt.prev, tt.cur))
		})
	}
}

func TestComputeGrowthDisplayRounding(t *testing.T) {
	g := ComputeGrowth(1000, 999)
	assert.InDelta(t, -0.1, g.Percent, 1e-9)
	assert.Equal(t, "0%", g.Display)

	assert.Equal(t, "-1%", ComputeGrowth(1000, 990).Display)
	assert.Equal(t, "3%", ComputeGrowth(1000, 1030).Display)
}

func TestAverageGrowth(t *testing.T) {
	assert.Equal(t, 0.0, AverageGrowth(nil))
	assert.Equal(t, 125.0, AverageGrowth([]Growth{{Percent: 50}, {New: true}}))
	assert.Equal(t, NewGrowthCap, AverageGrowth([]Growth{{New: true}, {New: true}}))
}
