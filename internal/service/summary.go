package service

import (
	"fmt"
	"math"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

// Summarize merges project results into the dashboard header. Failed
// projects count towards ProjectCount only. The overall satisfaction is the
// plain mean of the projects that reported one, rounded to a whole percent.
func Summarize(results []ProjectResult) HeaderSummary {
	sum := HeaderSummary{ProjectCount: len(results)}

	var satTotal float64
	var satCount int
	for _, r := range results {
		if r.Stats == nil {
			sum.FailedCount++
			continue
		}
		s := r.Stats.Summary
		sum.TotalBeneficiaries = aggregate.Finite(sum.TotalBeneficiaries + s.Beneficiaries)
		sum.TotalVolunteerHours = aggregate.Finite(sum.TotalVolunteerHours + s.VolunteerHours)
		if s.Satisfaction > 0 {
			satTotal += s.Satisfaction
			satCount++
		}
	}
	if satCount > 0 {
		sum.OverallSatisfaction = math.Round(satTotal / float64(satCount))
	}

	sum.Items = []aggregate.StatItem{
		{ID: "totalBeneficiaries", Label: "إجمالي المستفيدين", Value: aggregate.Number(sum.TotalBeneficiaries), Icon: aggregate.IconUsers},
		{ID: "totalVolunteerHours", Label: "إجمالي الساعات التطوعية", Value: aggregate.Number(sum.TotalVolunteerHours), Icon: aggregate.IconHourglass},
		{ID: "projectCount", Label: "عدد المشاريع", Value: aggregate.Number(float64(sum.ProjectCount)), Icon: aggregate.IconBriefcase},
		{ID: "overallSatisfaction", Label: "متوسط رضا المستفيدين", Value: aggregate.Text(fmt.Sprintf("%.0f%%", sum.OverallSatisfaction)), Icon: aggregate.IconHeart},
	}
	return sum
}
