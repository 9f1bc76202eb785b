package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

func result(beneficiaries, hours, satisfaction float64) ProjectResult {
	return ProjectResult{Stats: &aggregate.ProjectStats{Summary: aggregate.Summary{
		Beneficiaries:  beneficiaries,
		VolunteerHours: hours,
		Satisfaction:   satisfaction,
	}}}
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)

		assert.Equal(t, 0, s.ProjectCount)
		assert.Equal(t, 0.0, s.OverallSatisfaction)
		assert.Len(t, s.Items, 4)
		assert.Equal(t, "0%", s.Items[3].Value.String())
	})

	t.Run("satisfaction averages only reporting projects", func(t *testing.T) {
		s := Summarize([]ProjectResult{
			result(100, 5, 80),
			result(50, 0, 0),
			result(25, 1, 91),
			{Error: "fetch failed"},
		})

		assert.Equal(t, 175.0, s.TotalBeneficiaries)
		assert.Equal(t, 6.0, s.TotalVolunteerHours)
		assert.Equal(t, 4, s.ProjectCount)
		assert.Equal(t, 1, s.FailedCount)
		assert.Equal(t, 86.0, s.OverallSatisfaction)
		assert.Equal(t, "86%", s.Items[3].Value.String())
		assert.Equal(t, "175", s.Items[0].Value.String())
	})
}
