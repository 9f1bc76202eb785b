package aggregate

const (
	idSatisfaction    = "satisfactionPercentage"
	labelSatisfaction = "مؤشر رضا المستفيدين"
)

func count(id, label string, icon Icon, v float64) StatItem {
	return StatItem{ID: id, Label: label, Value: Number(v), Icon: icon}
}

func satisfactionItem(p float64) StatItem {
	return StatItem{ID: idSatisfaction, Label: labelSatisfaction, Value: Percent(p), Icon: IconHeart}
}

// scoreSurvey appends the satisfaction card. Projects that always run a
// survey pass always=true and get a 0.0% card when no answers arrived.
func scoreSurvey(items []StatItem, summary *Summary, survey []Record, qs QuestionSet, always bool) []StatItem {
	if len(survey) == 0 && !always {
		return items
	}
	p := CalculateSatisfaction(survey, qs)
	summary.Satisfaction = p
	summary.HasSatisfaction = len(survey) > 0
	return append(items, satisfactionItem(p))
}

// chartOf builds a single-series chart from the numeric items listed in ids.
func chartOf(typ, series string, items []StatItem, ids ...string) *Chart {
	c := &Chart{Type: typ, Series: []Series{{Name: series}}}
	for _, id := range ids {
		for _, it := range items {
			if it.ID != id || it.Value.IsText() {
				continue
			}
			c.Labels = append(c.Labels, it.Label)
			c.Series[0].Data = append(c.Series[0].Data, it.Value.Float())
		}
	}
	return c
}
