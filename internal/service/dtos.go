package service

import (
	"time"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

// ProjectSource is one configured project and where its exports live.
type ProjectSource struct {
	Name            string
	Kind            aggregate.Kind
	DataURL         string
	SatisfactionURL string
}

// ProjectResult is one project's slot in the dashboard. Exactly one of
// Stats and Error is set.
type ProjectResult struct {
	Kind  aggregate.Kind          `json:"kind"`
	Name  string                  `json:"name"`
	Stats *aggregate.ProjectStats `json:"stats,omitempty"`
	Error string                  `json:"error,omitempty"`
}

type Partner struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// HeaderSummary is the cross-project header of the dashboard.
type HeaderSummary struct {
	TotalBeneficiaries  float64              `json:"totalBeneficiaries"`
	TotalVolunteerHours float64              `json:"totalVolunteerHours"`
	ProjectCount        int                  `json:"projectCount"`
	FailedCount         int                  `json:"failedCount"`
	OverallSatisfaction float64              `json:"overallSatisfaction"`
	Items               []aggregate.StatItem `json:"items"`
}

type Dashboard struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Summary     HeaderSummary   `json:"summary"`
	Projects    []ProjectResult `json:"projects"`
	Partners    []Partner       `json:"partners,omitempty"`
}
