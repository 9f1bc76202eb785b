package aggregate

var quranSchema = Schema{
	{ID: "copies", Labels: []string{"عدد المصاحف الموزعة", "عدد المصاحف"}, Contains: []string{"المصاحف"}},
	{ID: "books", Labels: []string{"عدد الكتب الموزعة", "عدد الكتب"}, Contains: []string{"الكتب"}},
	{ID: "beneficiaries", Labels: []string{"عدد المستفيدين"}, Contains: []string{"المستفيدين"}},
	{ID: "hours", Labels: []string{"عدد الساعات التطوعية"}, Contains: []string{"الساعات"}},
	{ID: "languages", Labels: []string{"لغة المصحف", "اللغة"}, Contains: []string{"اللغ"}},
	{ID: "location", Labels: []string{"مكان التوزيع"}, Contains: []string{"مكان"}},
	{ID: "volunteers", Labels: []string{"عدد المتطوعين"}, Contains: []string{"المتطوعين"}},
}

var quranQuestions = NewQuestionSet(nil, nil)

// aggregateQuranDistribution counts copies and books handed out. Rows that
// carry no beneficiary column count one beneficiary per copy or book.
func aggregateQuranDistribution(in Input) ProjectStats {
	records := in.Records()
	cols := quranSchema.Resolve(records)

	copies := Sum(records, cols.Label("copies"))
	books := Sum(records, cols.Label("books"))
	beneficiaries := copies + books
	if c := cols.Label("beneficiaries"); c != "" {
		beneficiaries = Sum(records, c)
	}
	hours := Sum(records, cols.Label("hours"))

	items := []StatItem{
		count("beneficiaries", "عدد المستفيدين", IconUsers, beneficiaries),
		count("quranCopies", "المصاحف الموزعة", IconBook, copies),
		count("booksDistributed", "الكتب الموزعة", IconBook, books),
		count("languages", "عدد اللغات", IconGlobe, float64(CountUniqueSplit(records, cols.Label("languages"), NormalizeArabicName))),
		count("distributionPoints", "مواقع التوزيع", IconMapPin, float64(CountUnique(records, cols.Label("location"), NormalizeWhitespace))),
		count("volunteers", "المتطوعون", IconUsers, Max(records, cols.Label("volunteers"))),
		count("volunteerHours", "ساعات العمل التطوعية", IconHourglass, hours),
	}

	summary := Summary{Beneficiaries: beneficiaries, VolunteerHours: hours}
	items = scoreSurvey(items, &summary, in.Satisfaction, quranQuestions, true)

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("pie", "التوزيع", items, "quranCopies", "booksDistributed"),
		Summary: summary,
	}
}
