package aggregate

var logisticsSchema = Schema{
	{ID: "shipments", Labels: []string{"عدد الشحنات"}, Contains: []string{"الشحنات"}},
	{ID: "trips", Labels: []string{"عدد الرحلات"}, Contains: []string{"الرحلات"}},
	{ID: "cartons", Labels: []string{"عدد الكراتين"}, Contains: []string{"الكراتين"}},
	{ID: "hours", Labels: []string{"عدد الساعات التطوعية", "عدد ساعات العمل"}, Contains: []string{"ساع"}},
	{ID: "workers", Labels: []string{"عدد العمال الحاضرين", "عدد العمال"}, Contains: []string{"العمال"}},
	{ID: "supervisors", Labels: []string{"عدد المشرفين"}, Contains: []string{"المشرفين"}},
	{ID: "drivers", Labels: []string{"عدد السائقين"}, Contains: []string{"السائقين"}},
	{ID: "vehicles", Labels: []string{"عدد المركبات"}, Contains: []string{"المركبات"}},
}

// aggregateLogistics reports daily logs. Moved quantities add up across
// days; staffing is a per-day headcount so the peak day is reported.
func aggregateLogistics(in Input) ProjectStats {
	records := in.Records()
	cols := logisticsSchema.Resolve(records)

	hours := Sum(records, cols.Label("hours"))
	items := []StatItem{
		count("shipments", "عدد الشحنات", IconTruck, Sum(records, cols.Label("shipments"))),
		count("trips", "عدد الرحلات", IconTruck, Sum(records, cols.Label("trips"))),
		count("cartons", "عدد الكراتين", IconPackage, Sum(records, cols.Label("cartons"))),
		count("workers", "أقصى عدد للعمال", IconWorker, Max(records, cols.Label("workers"))),
		count("supervisors", "عدد المشرفين", IconUsers, Max(records, cols.Label("supervisors"))),
		count("drivers", "عدد السائقين", IconUsers, Max(records, cols.Label("drivers"))),
		count("vehicles", "عدد المركبات", IconTruck, Max(records, cols.Label("vehicles"))),
		count("volunteerHours", "ساعات العمل التطوعية", IconHourglass, hours),
		count("operatingDays", "أيام التشغيل", IconClipboard, float64(len(records))),
	}

	return ProjectStats{
		Items:   items,
		Chart:   chartOf("bar", "الخدمات اللوجستية", items, "shipments", "trips", "cartons"),
		Summary: Summary{VolunteerHours: hours},
	}
}
