package aggregate

var iftarSchema = Schema{
	{ID: "meals", Labels: []string{"العـدد الكلي للوجبات؟", "العدد الكلي للوجبات؟"}, Contains: []string{"الكلي", "الوجبات"}},
	{ID: "workers", Labels: []string{"اجمالي عدد العمال والمشرفين"}, Contains: []string{"العمال"}},
	{ID: "lowCalorie", Labels: []string{"عـدد الوجبات ذات السعرات الحرارية المُنخفضة؟"}, Contains: []string{"السعرات"}},
	{ID: "reporter", Labels: []string{"مُعد التقرير"}, Contains: []string{"التقرير"}},
}

var iftarQuestions = NewQuestionSet([]string{
	"ما مدى رضاك عن تعامل المشرف مع العمال والمستفيدين؟ ",
	"ما مدى رضاك عن تعامل العمال مع المستفيدين؟",
	"ما مدى رضاك عن مظهر فريق العمل ؟ ",
	"ما مدى رضاك عن أداء فريق العمل أثناء التوزيـــع؟\n(فريق العمل : المشرفين - الموزعين أو العمال) ",
	"ما مدى رضاك عن الوقت المستغرق  لتوزيع الوجبات؟",
	"ما مدى رضاك عن مكان تقديم الخدمة ونظافته وتنظيمه؟",
	"ما مدى رضاك عن نظافة المكان بعد الانتهاء من التوزيع؟",
	"ما مدى رضاك عن وجبات الإفطار ؟",
}, nil)

// aggregateIftar covers meal distribution. Workers are a per-day headcount so
// the busiest day is reported.
func aggregateIftar(in Input) ProjectStats {
	records := in.Records()
	cols := iftarSchema.Resolve(records)

	meals := Sum(records, cols.Label("meals"))
	items := []StatItem{
		count("beneficiaries", "عدد الوجبات الموزعة", IconFood, meals),
		count("lowCalorieMeals", "وجبات منخفضة السعرات", IconLeaf, Sum(records, cols.Label("lowCalorie"))),
		count("workers", "العمال والمشرفون", IconWorker, Max(records, cols.Label("workers"))),
		count("reports", "عدد التقارير", IconClipboard, float64(len(records))),
		count("reporters", "عدد معدي التقارير", IconUsers, float64(CountUnique(records, cols.Label("reporter"), NormalizeArabicName))),
	}

	summary := Summary{Beneficiaries: meals}
	items = scoreSurvey(items, &summary, in.Satisfaction, iftarQuestions, true)

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("bar", "الوجبات", items, "beneficiaries", "lowCalorieMeals"),
		Summary: summary,
	}
}
