package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratings(questions []string, value any, rows int) []Record {
	out := make([]Record, rows)
	for i := range out {
		rec := Record{"ملاحظات": "لا يوجد"}
		for _, q := range questions {
			rec[CleanKey(q)] = value
		}
		out[i] = rec
	}
	return out
}

// TestCalculateSatisfaction tests the pooled rating average
func TestCalculateSatisfaction(t *testing.T) {
	questions := []string{"ما مدى رضاك عن الخدمة؟", "ما مدى رضاك عن الوقت؟"}
	qs := NewQuestionSet(questions, nil)

	t.Run("no records", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateSatisfaction(nil, qs))
	})

	t.Run("all fives", func(t *testing.T) {
		assert.Equal(t, 100.0, CalculateSatisfaction(ratings(questions, 5, 4), qs))
	})

	t.Run("all ones", func(t *testing.T) {
		assert.Equal(t, 20.0, CalculateSatisfaction(ratings(questions, "1", 2), qs))
	})

	t.Run("out of range ratings ignored", func(t *testing.T) {
		records := []Record{
			{CleanKey(questions[0]): 0, CleanKey(questions[1]): 6},
			{CleanKey(questions[0]): "٤", CleanKey(questions[1]): ""},
		}

		assert.Equal(t, 80.0, CalculateSatisfaction(records, qs))
	})

	t.Run("keyword fallback", func(t *testing.T) {
		records := []Record{{"مدى رضاك عن الخدمة": 4, "ملاحظات": "3"}}

		assert.Equal(t, 80.0, CalculateSatisfaction(records, NewQuestionSet(nil, nil)))
	})
}

func TestIftarSurveyScore(t *testing.T) {
	survey := make([]Record, 3)
	for i := range survey {
		rec := Record{}
		for q := range iftarQuestions.labels {
			rec[q] = 4
		}
		survey[i] = rec
	}

	p := CalculateSatisfaction(survey, iftarQuestions)

	assert.Len(t, iftarQuestions.labels, 8)
	assert.Equal(t, 80.0, p)
	assert.Equal(t, "80.0%", FormatPercent(p))
}
