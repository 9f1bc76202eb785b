package aggregate

import (
	"errors"
	"fmt"
)

// Kind names a project type.
type Kind string

const (
	KindWofood            Kind = "wofood"
	KindWalakAlAjer       Kind = "walak-al-ajer"
	KindTranslation       Kind = "translation"
	KindIftar             Kind = "iftar"
	KindSuqia             Kind = "suqia"
	KindQuranDistribution Kind = "quran-distribution"
	KindTamkeen           Kind = "tamkeen"
	KindEthraAndAthar     Kind = "ethra-and-athar"
	KindLogistics         Kind = "logistics"
)

var ErrUnknownKind = errors.New("unknown project kind")

// Aggregator turns cleaned records into a project's statistics.
type Aggregator func(in Input) ProjectStats

type project struct {
	name string
	agg  Aggregator
}

var projects = map[Kind]project{
	KindWofood:            {name: "مشروع وفود الحرم", agg: aggregateWofood},
	KindWalakAlAjer:       {name: "مشروع ولك الأجر", agg: aggregateWalakAlAjer},
	KindTranslation:       {name: "مشروع الترجمة والإرشاد", agg: aggregateTranslation},
	KindIftar:             {name: "مشروع تفطير الصائمين", agg: aggregateIftar},
	KindSuqia:             {name: "مشروع السقيا", agg: aggregateSuqia},
	KindQuranDistribution: {name: "مشروع توزيع المصاحف", agg: aggregateQuranDistribution},
	KindTamkeen:           {name: "مشروع تمكين", agg: aggregateTamkeen},
	KindEthraAndAthar:     {name: "مشروع إثراء وأثر", agg: aggregateEthraAndAthar},
	KindLogistics:         {name: "مشروع الخدمات اللوجستية", agg: aggregateLogistics},
}

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{
		KindWofood,
		KindWalakAlAjer,
		KindIftar,
		KindSuqia,
		KindTranslation,
		KindQuranDistribution,
		KindTamkeen,
		KindEthraAndAthar,
		KindLogistics,
	}
}

// Valid reports whether k has an aggregator.
func (k Kind) Valid() bool {
	_, ok := projects[k]
	return ok
}

// DefaultName is the Arabic display name of a kind.
func (k Kind) DefaultName() string {
	return projects[k].name
}

// Lookup returns the aggregator for kind.
func Lookup(kind Kind) (Aggregator, error) {
	p, ok := projects[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return p.agg, nil
}

// Aggregate cleans the record keys of every sheet and of the survey and runs
// the aggregator registered for kind.
func Aggregate(kind Kind, in Input) (ProjectStats, error) {
	agg, err := Lookup(kind)
	if err != nil {
		return ProjectStats{}, err
	}
	cleaned := Input{
		Sheets:       make([]Sheet, len(in.Sheets)),
		Satisfaction: CleanKeys(in.Satisfaction),
	}
	for i, sh := range in.Sheets {
		cleaned.Sheets[i] = Sheet{Name: sh.Name, Records: CleanKeys(sh.Records)}
	}
	stats := agg(cleaned)
	stats.Kind = kind
	if stats.Name == "" {
		stats.Name = kind.DefaultName()
	}
	return stats, nil
}
