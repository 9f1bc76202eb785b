package aggregate

const (
	wofoodBeneficiaries = "totalBeneficiaries"
	wofoodDelegations   = "implementedDelegations"
	wofoodPrograms      = "implementedPrograms"
	wofoodHours         = "enrichmentHours"
	wofoodNationalities = "nationalities"
)

var wofoodSchema = Schema{
	{ID: "date", Labels: []string{"تاريخ التنفيذ"}, Contains: []string{"تاريخ"}},
	{ID: "delegation", Labels: []string{"اسم الوفد"}, Contains: []string{"الوفد"}},
	{ID: "nationality", Labels: []string{"الجنسية"}, Contains: []string{"الجنسية"}},
	{ID: "beneficiaries", Labels: []string{"عدد المستفيدين", "اجمالي المستفيدين"}, Contains: []string{"المستفيدين"}},
	{ID: "hours", Labels: []string{"عدد الساعات", "عدد الساعات الإثرائية", "عدد الساعات التطوعية"}, Contains: []string{"الساعات"}},
	{ID: "scientific", Labels: []string{"عدد البرامج العلمية"}},
	{ID: "cultural", Labels: []string{"عدد البرامج الثقافية"}},
	{ID: "social", Labels: []string{"عدد البرامج الاجتماعية"}},
	{ID: "tours", Labels: []string{"عدد الجولات"}},
	{ID: "programs", Labels: []string{"عدد البرامج", "عدد البرامج المنفذة"}},
	{ID: "programName", Labels: []string{"اسم البرنامج"}},
}

type wofoodMetric struct {
	key   string
	label string
	icon  Icon
}

var wofoodMetrics = []wofoodMetric{
	{wofoodBeneficiaries, "اجمالي المستفيدين", IconUsers},
	{wofoodDelegations, "الوفود المنفذة", IconFlag},
	{wofoodPrograms, "عدد البرامج المنفذة", IconBriefcase},
	{wofoodHours, "عدد الساعات الإثرائية", IconHourglass},
}

// aggregateWofood handles the delegations project whose rows span several
// years (either one sheet per year or a date column).
func aggregateWofood(in Input) ProjectStats {
	cols := wofoodSchema.Resolve(in.Records())

	breakdown := []string{
		cols.Label("scientific"), cols.Label("cultural"),
		cols.Label("social"), cols.Label("tours"),
	}
	hasBreakdown := false
	for _, c := range breakdown {
		if c != "" {
			hasBreakdown = true
		}
	}

	programsOf := func(rec Record) float64 {
		if hasBreakdown {
			var n float64
			for _, c := range breakdown {
				if c != "" {
					n += ParseNumber(rec[c])
				}
			}
			return Finite(n)
		}
		if c := cols.Label("programs"); c != "" {
			return ParseNumber(rec[c])
		}
		if c := cols.Label("programName"); c != "" && cellText(rec[c]) != "" {
			return 1
		}
		return 0
	}

	yearly := BuildYearly(
		in.Sheets,
		YearFromSheetOrColumn(cols.Label("date")),
		func(rec Record) Stats {
			s := Stats{wofoodPrograms: programsOf(rec)}
			if c := cols.Label("beneficiaries"); c != "" {
				s[wofoodBeneficiaries] = ParseNumber(rec[c])
			}
			if c := cols.Label("hours"); c != "" {
				s[wofoodHours] = ParseNumber(rec[c])
			}
			return s
		},
		[]UniqueField{
			{Key: wofoodDelegations, Column: cols.Label("delegation"), Normalize: NormalizeDelegationName},
			{Key: wofoodNationalities, Column: cols.Label("nationality"), Normalize: NormalizeArabicName},
		},
	)

	total := yearly.Total
	items := []StatItem{
		count(wofoodBeneficiaries, "اجمالي المستفيدين", IconUsers, total[wofoodBeneficiaries]),
		count(wofoodDelegations, "الوفود المنفذة", IconFlag, total[wofoodDelegations]),
		count(wofoodNationalities, "عدد الجنسيات", IconGlobe, total[wofoodNationalities]),
		count(wofoodPrograms, "عدد البرامج المنفذة", IconBriefcase, total[wofoodPrograms]),
		count(wofoodHours, "عدد الساعات الإثرائية", IconHourglass, total[wofoodHours]),
	}

	stats := ProjectStats{
		Items:  items,
		Yearly: yearly,
		Summary: Summary{
			Beneficiaries:  total[wofoodBeneficiaries],
			VolunteerHours: total[wofoodHours],
		},
	}

	known := knownYears(yearly)
	if len(known) >= 2 {
		prev, cur := known[len(known)-2], known[len(known)-1]
		stats.Comparison = wofoodComparison(yearly, cols, prev, cur)
		growths := make([]Growth, len(stats.Comparison))
		for i, row := range stats.Comparison {
			growths[i] = row.Growth
		}
		stats.AverageGrowth = AverageGrowth(growths)
		stats.Chart = wofoodChart(yearly, prev, cur)
	} else {
		stats.Chart = chartOf("bar", "الإجمالي", items,
			wofoodBeneficiaries, wofoodDelegations, wofoodPrograms, wofoodHours)
	}
	return stats
}

func knownYears(y *YearlyStats) []string {
	var out []string
	for _, yr := range y.Years() {
		if yr != UnknownYear {
			out = append(out, yr)
		}
	}
	return out
}

func wofoodComparison(y *YearlyStats, cols Columns, prev, cur string) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(wofoodMetrics))
	for _, m := range wofoodMetrics {
		p, c := y.PerYear[prev][m.key], y.PerYear[cur][m.key]
		total := p + c
		if m.key == wofoodDelegations {
			total = float64(y.UniqueAcross([]string{prev, cur}, cols.Label("delegation"), NormalizeDelegationName))
		}
		rows = append(rows, ComparisonRow{
			ID:       m.key,
			Label:    m.label,
			Previous: p,
			Current:  c,
			Total:    total,
			Growth:   ComputeGrowth(p, c),
		})
	}
	return rows
}

func wofoodChart(y *YearlyStats, prev, cur string) *Chart {
	c := &Chart{Type: "bar"}
	for _, m := range wofoodMetrics {
		c.Labels = append(c.Labels, m.label)
	}
	for _, yr := range []string{prev, cur} {
		s := Series{Name: yr}
		for _, m := range wofoodMetrics {
			s.Data = append(s.Data, y.PerYear[yr][m.key])
		}
		c.Series = append(c.Series, s)
	}
	return c
}
