package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Record is one spreadsheet row keyed by its (Arabic) column label.
type Record map[string]any

// Icon identifies the glyph a presentation layer shows next to a statistic.
type Icon string

const (
	IconUsers       Icon = "users"
	IconHourglass   Icon = "hourglass"
	IconHeart       Icon = "heart"
	IconGlobe       Icon = "globe"
	IconFood        Icon = "food"
	IconDroplet     Icon = "droplet"
	IconBook        Icon = "book"
	IconGift        Icon = "gift"
	IconTruck       Icon = "truck"
	IconWheelchair  Icon = "wheelchair"
	IconWristband   Icon = "wristband"
	IconIncense     Icon = "incense"
	IconBriefcase   Icon = "briefcase"
	IconFlag        Icon = "flag"
	IconGraduation  Icon = "graduation"
	IconMapPin      Icon = "map-pin"
	IconChat        Icon = "chat"
	IconTrendingUp  Icon = "trending-up"
	IconClipboard   Icon = "clipboard"
	IconWorker      Icon = "worker"
	IconPackage     Icon = "package"
	IconCoffin      Icon = "funeral"
	IconLeaf        Icon = "leaf"
)

type valueKind uint8

const (
	kindNumber valueKind = iota
	kindText
)

// Value is a statistic value: either a plain count or a pre-formatted string
// such as a percentage.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// Number wraps a count. Non-finite input becomes 0.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: Finite(f)}
}

// Percent formats p with one decimal place and a trailing percent sign.
func Percent(p float64) Value {
	p = Finite(p)
	return Value{kind: kindText, num: p, text: FormatPercent(p)}
}

// Text wraps an already formatted value.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

func (v Value) IsText() bool { return v.kind == kindText }

func (v Value) Float() float64 { return v.num }

func (v Value) String() string {
	if v.kind == kindText {
		return v.text
	}
	return formatCount(v.num)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == kindText {
		return json.Marshal(v.text)
	}
	return json.Marshal(v.num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("statistic value: %w", err)
	}
	*v = Number(f)
	return nil
}

// StatItem is the unit a dashboard card renders.
type StatItem struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Value Value  `json:"value" yaml:"value"`
	Icon  Icon   `json:"icon" yaml:"icon"`
}

// MarshalYAML renders the value the same way JSON does.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == kindText {
		return v.text, nil
	}
	return v.num, nil
}

// Series is one named numeric series of a chart.
type Series struct {
	Name string    `json:"name" yaml:"name"`
	Data []float64 `json:"data" yaml:"data"`
}

// Chart describes chart content; rendering belongs to the caller.
type Chart struct {
	Type   string   `json:"type" yaml:"type"`
	Labels []string `json:"labels" yaml:"labels"`
	Series []Series `json:"series" yaml:"series"`
}

// ComparisonRow compares one metric across the two latest years.
type ComparisonRow struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Previous float64 `json:"previous" yaml:"previous"`
	Current  float64 `json:"current" yaml:"current"`
	Total    float64 `json:"total" yaml:"total"`
	Growth   Growth  `json:"growth" yaml:"growth"`
}

// Summary carries the figures the dashboard header merges across projects.
type Summary struct {
	Beneficiaries   float64 `json:"beneficiaries" yaml:"beneficiaries"`
	VolunteerHours  float64 `json:"volunteerHours" yaml:"volunteerHours"`
	Satisfaction    float64 `json:"satisfaction" yaml:"satisfaction"`
	HasSatisfaction bool    `json:"hasSatisfaction" yaml:"hasSatisfaction"`
}

// ProjectStats is the aggregated result for one project.
type ProjectStats struct {
	Kind       Kind            `json:"kind" yaml:"kind"`
	Name       string          `json:"name" yaml:"name"`
	Items      []StatItem      `json:"items" yaml:"items"`
	Yearly     *YearlyStats    `json:"yearly,omitempty" yaml:"yearly,omitempty"`
	Comparison []ComparisonRow `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	// AverageGrowth pools the comparison rows; only meaningful when
	// Comparison is non-empty.
	AverageGrowth float64 `json:"averageGrowth,omitempty" yaml:"averageGrowth,omitempty"`
	Chart         *Chart  `json:"chart,omitempty" yaml:"chart,omitempty"`
	Summary       Summary `json:"summary" yaml:"summary"`
}

// Item returns the statistic with the given id.
func (p ProjectStats) Item(id string) (StatItem, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return StatItem{}, false
}

// Input is what an aggregator consumes: the main activity log, possibly split
// across several sheets, and an optional satisfaction survey.
type Input struct {
	Sheets       []Sheet
	Satisfaction []Record
}

// Sheet is one named tab of an export. Plain arrays arrive as a single sheet
// with an empty name.
type Sheet struct {
	Name    string   `json:"name" yaml:"name"`
	Records []Record `json:"records" yaml:"records"`
}

// FromRecords builds an Input from a single unnamed sheet.
func FromRecords(records []Record, satisfaction []Record) Input {
	return Input{Sheets: []Sheet{{Records: records}}, Satisfaction: satisfaction}
}

// Records flattens all sheets in order.
func (in Input) Records() []Record {
	n := 0
	for _, s := range in.Sheets {
		n += len(s.Records)
	}
	out := make([]Record, 0, n)
	for _, s := range in.Sheets {
		out = append(out, s.Records...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
