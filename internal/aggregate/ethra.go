package aggregate

var ethraSchema = Schema{
	{ID: "gifts", Labels: []string{"عدد الهدايا الموزعة", "عدد الهدايا"}, Contains: []string{"الهدايا"}},
	{ID: "beneficiaries", Labels: []string{"عدد المستفيدين"}, Contains: []string{"المستفيدين"}},
	{ID: "hours", Labels: []string{"عدد الساعات التطوعية"}, Contains: []string{"الساعات"}},
	{ID: "location", Labels: []string{"مكان التوزيع", "الموقع"}, Contains: []string{"مكان"}},
	{ID: "volunteers", Labels: []string{"عدد المتطوعين"}, Contains: []string{"المتطوعين"}},
	{ID: "giftType", Labels: []string{"نوع الهدية"}, Contains: []string{"نوع"}},
}

var ethraQuestions = NewQuestionSet(nil, nil)

// aggregateEthraAndAthar covers gift distribution. Each gift is one
// beneficiary unless the batch reports beneficiaries separately.
func aggregateEthraAndAthar(in Input) ProjectStats {
	records := in.Records()
	cols := ethraSchema.Resolve(records)

	gifts := Sum(records, cols.Label("gifts"))
	beneficiaries := gifts
	if c := cols.Label("beneficiaries"); c != "" {
		beneficiaries = Sum(records, c)
	}
	hours := Sum(records, cols.Label("hours"))

	items := []StatItem{
		count("beneficiaries", "عدد المستفيدين", IconUsers, beneficiaries),
		count("giftsDistributed", "الهدايا الموزعة", IconGift, gifts),
		count("giftTypes", "أنواع الهدايا", IconPackage, float64(CountUnique(records, cols.Label("giftType"), NormalizeArabicName))),
		count("distributionPoints", "مواقع التوزيع", IconMapPin, float64(CountUnique(records, cols.Label("location"), NormalizeWhitespace))),
		count("volunteers", "المتطوعون", IconUsers, Max(records, cols.Label("volunteers"))),
		count("volunteerHours", "ساعات العمل التطوعية", IconHourglass, hours),
	}

	summary := Summary{Beneficiaries: beneficiaries, VolunteerHours: hours}
	items = scoreSurvey(items, &summary, in.Satisfaction, ethraQuestions, true)

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("bar", "إثراء وأثر", items, "beneficiaries", "giftsDistributed", "distributionPoints"),
		Summary: summary,
	}
}
