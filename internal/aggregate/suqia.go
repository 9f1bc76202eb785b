package aggregate

var suqiaSchema = Schema{
	{ID: "bottles", Labels: []string{"كم العـدد الكلي للعبوات؟", "كم العدد الكلي للعبوات؟"}, Contains: []string{"العبوات"}},
	{ID: "workers", Labels: []string{"عدد العمال"}, Contains: []string{"العمال"}},
	{ID: "points", Labels: []string{"عدد نقاط التوزيع"}, Contains: []string{"نقاط"}},
	{ID: "location", Labels: []string{"مكان توزيع سقيا الماء؟"}, Contains: []string{"مكان"}},
	{ID: "reporter", Labels: []string{"مُعد التقرير"}, Contains: []string{"التقرير"}},
}

var suqiaQuestions = NewQuestionSet([]string{
	"ما مدى رضاك عن تواصل المشرف مع العمال والمستفيدين؟ ",
	"ما مدى رضاك عن مظهر فريق العمل ؟ ",
	"ما مدى رضاك عن تعامل العمال مع المستفيدين؟",
	"ما مدى رضاك عن أداء فريق العمل أثناء التوزيـــع؟",
	"ما مدى رضاك عن الوقت المستغرق في التوزيع؟",
	"ما مدى رضاك عن مكان تقديم الخدمة ونظافته وتنظيمه؟",
	"ما مدى رضاك عن عبـــوات المياه ؟",
	"هل المياه مُبردة بشكل مناسب؟",
}, nil)

// aggregateSuqia covers water distribution. Distribution points are the
// distinct places reported; the numeric column is only used when no place
// column exists.
func aggregateSuqia(in Input) ProjectStats {
	records := in.Records()
	cols := suqiaSchema.Resolve(records)

	bottles := Sum(records, cols.Label("bottles"))
	points := float64(CountUnique(records, cols.Label("location"), NormalizeWhitespace))
	if cols.Label("location") == "" {
		points = Sum(records, cols.Label("points"))
	}

	items := []StatItem{
		count("beneficiaries", "عدد العبوات الموزعة", IconDroplet, bottles),
		count("distributionPoints", "عدد نقاط التوزيع", IconMapPin, points),
		count("workers", "عدد العمال", IconWorker, Max(records, cols.Label("workers"))),
		count("reporters", "عدد معدي التقارير", IconUsers, float64(CountUnique(records, cols.Label("reporter"), NormalizeArabicName))),
	}

	summary := Summary{Beneficiaries: bottles}
	items = scoreSurvey(items, &summary, in.Satisfaction, suqiaQuestions, true)

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("bar", "السقيا", items, "beneficiaries", "distributionPoints", "workers"),
		Summary: summary,
	}
}
