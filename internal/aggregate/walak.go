package aggregate

var walakSchema = Schema{
	{ID: "hours1", Labels: []string{"الساعات التطوعية للفترة الأولى"}, Contains: []string{"الساعات", "الأولى"}},
	{ID: "hours2", Labels: []string{"عدد الساعات التطوعية (الفترة الثانية)"}, Contains: []string{"الساعات", "الثانية"}},
	{ID: "funerals1", Labels: []string{"عدد المستفيدين من الجنائز في الفترة الأولى"}, Contains: []string{"الجنائز", "الأولى"}},
	{ID: "funerals2", Labels: []string{"عدد المستفيدين من الجنائز للفترة الثانية"}, Contains: []string{"الجنائز", "الثانية"}},
	{ID: "carts1", Labels: []string{"عدد المستفيدين من العربات في الفترة الأولى"}, Contains: []string{"العربات", "الأولى"}},
	{ID: "carts2", Labels: []string{"عدد المستفيدين في العربات للفترة الثانية"}, Contains: []string{"العربات", "الثانية"}},
	{ID: "wristbands1", Labels: []string{"عدد المستفيدين في الأساور للفترة الأولى"}, Contains: []string{"الأساور", "الأولى"}},
	{ID: "wristbands2", Labels: []string{"عدد المستفيدين من الأساور للفترة الثانية"}, Contains: []string{"الأساور", "الثانية"}},
	{ID: "perfume1", Labels: []string{"عدد المستفيدين من التطيب في الفترة الأولى"}, Contains: []string{"التطيب", "الأولى"}},
	{ID: "perfume2", Labels: []string{"عدد المستفيدين من التطيب للفترة الثانية"}, Contains: []string{"التطيب", "الثانية"}},
}

type walakService struct {
	id     string
	label  string
	icon   Icon
	period [2]string
}

var walakServices = []walakService{
	{"funeralBeneficiaries", "مستفيدو خدمة الجنائز", IconCoffin, [2]string{"funerals1", "funerals2"}},
	{"wheelchairBeneficiaries", "مستفيدو خدمة العربات", IconWheelchair, [2]string{"carts1", "carts2"}},
	{"wristbandBeneficiaries", "مستفيدو خدمة الأساور", IconWristband, [2]string{"wristbands1", "wristbands2"}},
	{"perfumeBeneficiaries", "مستفيدو خدمة التطيب", IconIncense, [2]string{"perfume1", "perfume2"}},
}

// aggregateWalakAlAjer sums each service over its two reporting periods.
// The grand total adds volunteer hours to the service totals, as the
// project reports achievements rather than people.
func aggregateWalakAlAjer(in Input) ProjectStats {
	records := in.Records()
	cols := walakSchema.Resolve(records)

	hours := SumAll(records, cols.Label("hours1"), cols.Label("hours2"))

	var beneficiaries float64
	serviceItems := make([]StatItem, 0, len(walakServices))
	for _, svc := range walakServices {
		v := SumAll(records, cols.Label(svc.period[0]), cols.Label(svc.period[1]))
		beneficiaries = Finite(beneficiaries + v)
		serviceItems = append(serviceItems, count(svc.id, svc.label, svc.icon, v))
	}

	items := []StatItem{
		count("beneficiaries", "إجمالي المستفيدين", IconUsers, beneficiaries),
		count("volunteerHours", "ساعات العمل التطوعية", IconHourglass, hours),
	}
	items = append(items, serviceItems...)
	items = append(items, count("grandTotal", "إجمالي المنجزات", IconTrendingUp, beneficiaries+hours))

	ids := make([]string, len(walakServices))
	for i, svc := range walakServices {
		ids[i] = svc.id
	}
	return ProjectStats{
		Items: items,
		Chart: chartOf("doughnut", "المستفيدون حسب الخدمة", items, ids...),
		Summary: Summary{
			Beneficiaries:  beneficiaries,
			VolunteerHours: hours,
		},
	}
}
