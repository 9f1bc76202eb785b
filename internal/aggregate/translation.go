package aggregate

var translationSchema = Schema{
	{ID: "translator", Labels: []string{"اسم المترجم:", "اسم المترجم"}, Contains: []string{"المترجم"}},
	{ID: "questions", Labels: []string{"عدد الأسئلة؟"}, Contains: []string{"الأسئلة"}},
	{ID: "beneficiaries", Labels: []string{"عدد المستفيدين:"}, Contains: []string{"المستفيدين"}},
	{ID: "hours", Labels: []string{"عدد الساعات التطوعية:"}, Contains: []string{"الساعات"}},
	{ID: "languages", Labels: []string{"ماهي اللغات المستخدمة في الترجمة؟"}, Contains: []string{"اللغات"}},
	{ID: "guidance", Labels: []string{"عدد مرات الإرشاد المكاني:"}, Contains: []string{"الإرشاد"}},
	{ID: "books", Labels: []string{"عدد الكتب التي تم توزيعها:"}, Contains: []string{"الكتب"}},
}

// The translation survey has no fixed question list; rating questions are
// picked by keyword.
var translationQuestions = NewQuestionSet(nil, nil)

func aggregateTranslation(in Input) ProjectStats {
	records := in.Records()
	cols := translationSchema.Resolve(records)

	beneficiaries := Sum(records, cols.Label("beneficiaries"))
	hours := Sum(records, cols.Label("hours"))

	items := []StatItem{
		count("beneficiaries", "عدد المستفيدين", IconUsers, beneficiaries),
		count("questionsAnswered", "عدد الأسئلة المجابة", IconChat, Sum(records, cols.Label("questions"))),
		count("volunteerHours", "ساعات العمل التطوعية", IconHourglass, hours),
		count("guidanceCount", "مرات الإرشاد المكاني", IconMapPin, Sum(records, cols.Label("guidance"))),
		count("booksDistributed", "عدد الكتب الموزعة", IconBook, Sum(records, cols.Label("books"))),
		count("translators", "عدد المترجمين", IconUsers, float64(CountUnique(records, cols.Label("translator"), NormalizeArabicName))),
		count("languages", "عدد اللغات", IconGlobe, float64(CountUniqueSplit(records, cols.Label("languages"), NormalizeArabicName))),
	}

	summary := Summary{Beneficiaries: beneficiaries, VolunteerHours: hours}
	items = scoreSurvey(items, &summary, in.Satisfaction, translationQuestions, false)

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("bar", "الإنجاز", items, "beneficiaries", "questionsAnswered", "guidanceCount", "booksDistributed"),
		Summary: summary,
	}
}
