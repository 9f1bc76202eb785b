package aggregate

var tamkeenSchema = Schema{
	{ID: "course", Labels: []string{"اسم الدورة", "اسم البرنامج التدريبي"}, Contains: []string{"اسم", "الدورة"}},
	{ID: "trainer", Labels: []string{"اسم المدرب"}, Contains: []string{"المدرب"}},
	{ID: "trainees", Labels: []string{"عدد المتدربين"}, Contains: []string{"المتدربين"}},
	{ID: "trainingHours", Labels: []string{"عدد الساعات التدريبية"}, Contains: []string{"الساعات", "التدريب"}},
	{ID: "volunteerHours", Labels: []string{"عدد الساعات التطوعية"}, Contains: []string{"الساعات", "التطوع"}},
}

var tamkeenQuestions = NewQuestionSet(nil, nil)

func aggregateTamkeen(in Input) ProjectStats {
	records := in.Records()
	cols := tamkeenSchema.Resolve(records)

	trainees := Sum(records, cols.Label("trainees"))
	volunteerHours := Sum(records, cols.Label("volunteerHours"))

	items := []StatItem{
		count("beneficiaries", "عدد المتدربين", IconGraduation, trainees),
		count("programs", "البرامج التدريبية", IconBriefcase, float64(CountUnique(records, cols.Label("course"), NormalizeArabicName))),
		count("trainers", "عدد المدربين", IconUsers, float64(CountUnique(records, cols.Label("trainer"), NormalizeArabicName))),
		count("trainingHours", "الساعات التدريبية", IconHourglass, Sum(records, cols.Label("trainingHours"))),
		count("volunteerHours", "ساعات العمل التطوعية", IconHourglass, volunteerHours),
		count("averageTrainees", "متوسط المتدربين لكل برنامج", IconTrendingUp, Average(records, cols.Label("trainees"))),
	}

	summary := Summary{Beneficiaries: trainees, VolunteerHours: volunteerHours}
	items = scoreSurvey(items, &summary, in.Satisfaction, tamkeenQuestions, true)

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("bar", "التمكين", items, "beneficiaries", "programs", "trainers", "trainingHours"),
		Summary: summary,
	}
}
