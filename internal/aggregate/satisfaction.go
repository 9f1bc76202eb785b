package aggregate

import (
	"fmt"
	"strings"
)

const (
	minRating = 0
	maxRating = 5
)

// DefaultRatingKeywords pick rating questions when a survey row carries none
// of the labels a project expects.
var DefaultRatingKeywords = []string{"رضا", "تقييم", "satisfaction", "rating"}

// QuestionSet lists the rating questions of one survey.
type QuestionSet struct {
	labels   map[string]struct{}
	keywords []string
}

// NewQuestionSet cleans the given labels the same way record keys are
// cleaned. A nil keywords slice means DefaultRatingKeywords.
func NewQuestionSet(labels []string, keywords []string) QuestionSet {
	if keywords == nil {
		keywords = DefaultRatingKeywords
	}
	qs := QuestionSet{
		labels:   make(map[string]struct{}, len(labels)),
		keywords: make([]string, 0, len(keywords)),
	}
	for _, l := range labels {
		qs.labels[CleanKey(l)] = struct{}{}
	}
	for _, k := range keywords {
		qs.keywords = append(qs.keywords, strings.ToLower(k))
	}
	return qs
}

// ratingFields returns the labels of rec that hold rating answers.
func (q QuestionSet) ratingFields(rec Record) []string {
	var listed []string
	for _, k := range sortedKeys(rec) {
		if _, ok := q.labels[k]; ok {
			listed = append(listed, k)
		}
	}
	if len(listed) > 0 {
		return listed
	}
	var matched []string
	for _, k := range sortedKeys(rec) {
		lower := strings.ToLower(k)
		for _, kw := range q.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, k)
				break
			}
		}
	}
	return matched
}

// CalculateSatisfaction pools every valid 1..5 rating of every record into a
// single average and returns it as a share of the maximum rating (0..100).
func CalculateSatisfaction(records []Record, questions QuestionSet) float64 {
	var total float64
	var count int
	for _, rec := range records {
		for _, field := range questions.ratingFields(rec) {
			v := ParseNumber(rec[field])
			if v <= minRating || v > maxRating {
				continue
			}
			total += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return (total / float64(count)) / maxRating * 100
}

// FormatPercent renders p as "87.3%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
