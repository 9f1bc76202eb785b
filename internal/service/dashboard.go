package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository/models"
)

const (
	dbTimeout = 1 * time.Second

	defaultFetchTimeout   = 20 * time.Second
	defaultConcurrency    = 4
	defaultKeepSnapshots  = 20
	defaultSnapshotMaxAge = 5 * time.Minute

	partnerNameKey = "الشريك"
	partnerLogoKey = "الشعار"
)

var (
	ErrUnknownProjectKind   = errors.New("unknown project kind in configuration")
	ErrProjectNotConfigured = errors.New("project not configured")
	ErrNoSnapshot           = errors.New("no dashboard snapshot")
	ErrSourceFailure        = errors.New("source failure")
	ErrStorageFailure       = errors.New("storage failure")
)

// Settings configures a DashboardService. Zero values get defaults.
type Settings struct {
	Projects    []ProjectSource
	PartnersURL string
	// FetchTimeout bounds each project's fetches.
	FetchTimeout time.Duration
	// Concurrency bounds how many projects are fetched at once.
	Concurrency int
	// SnapshotMaxAge is how long a stored dashboard is served before
	// GetDashboard rebuilds it.
	SnapshotMaxAge time.Duration
	KeepSnapshots  int
}

// DashboardService fetches every project's exports, aggregates them and
// merges the results into a dashboard.
type DashboardService struct {
	loader   DatasetLoader
	storage  SnapshotRepository
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(loader DatasetLoader, storage SnapshotRepository, settings Settings, logger *zap.Logger) *DashboardService {
	if loader == nil {
		panic("loader must not be nil")
	}
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = defaultFetchTimeout
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = defaultConcurrency
	}
	if settings.SnapshotMaxAge <= 0 {
		settings.SnapshotMaxAge = defaultSnapshotMaxAge
	}
	if settings.KeepSnapshots <= 0 {
		settings.KeepSnapshots = defaultKeepSnapshots
	}
	return &DashboardService{
		loader:   loader,
		storage:  storage,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateProjects fails on the first project whose kind has no aggregator.
func ValidateProjects(projects []ProjectSource) error {
	for _, p := range projects {
		if !p.Kind.Valid() {
			return fmt.Errorf("%w: %q (%s)", ErrUnknownProjectKind, p.Kind, p.Name)
		}
	}
	return nil
}

// GetDashboard serves the latest snapshot while it is younger than
// SnapshotMaxAge and builds a fresh dashboard otherwise.
func (s *DashboardService) GetDashboard(ctx context.Context) (Dashboard, error) {
	d, err := s.LatestSnapshot(ctx)
	switch {
	case err == nil && s.now().Sub(d.GeneratedAt) < s.settings.SnapshotMaxAge:
		return d, nil
	case err != nil && !errors.Is(err, ErrNoSnapshot):
		s.logger.Warn("snapshot unavailable, rebuilding", zap.Error(err))
	}
	return s.BuildDashboard(ctx)
}

// Refresh rebuilds the dashboard regardless of the stored snapshot.
func (s *DashboardService) Refresh(ctx context.Context) (Dashboard, error) {
	s.logger.Info("dashboard refresh requested")
	return s.BuildDashboard(ctx)
}

// BuildDashboard fetches and aggregates every configured project
// concurrently. A failing project is reported in its slot and never fails
// the build; an unknown kind in the configuration does.
func (s *DashboardService) BuildDashboard(ctx context.Context) (Dashboard, error) {
	if err := ValidateProjects(s.settings.Projects); err != nil {
		return Dashboard{}, err
	}

	start := s.now()
	results := make([]ProjectResult, len(s.settings.Projects))
	var partners []Partner

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Concurrency)
	for i, p := range s.settings.Projects {
		g.Go(func() error {
			results[i] = s.buildProject(gctx, p)
			return nil
		})
	}
	if s.settings.PartnersURL != "" {
		g.Go(func() error {
			partners = s.loadPartners(gctx)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Summary:     Summarize(results),
		Projects:    results,
		Partners:    partners,
	}

	s.logger.Info("dashboard built",
		zap.String("id", d.ID),
		zap.Int("projects", d.Summary.ProjectCount),
		zap.Int("failed", d.Summary.FailedCount),
		zap.Float64("beneficiaries", d.Summary.TotalBeneficiaries),
		zap.Duration("duration", s.now().Sub(start)))

	s.storeSnapshot(ctx, d)
	return d, nil
}

// GetProject builds a single configured project.
func (s *DashboardService) GetProject(ctx context.Context, kind aggregate.Kind) (ProjectResult, error) {
	if !kind.Valid() {
		return ProjectResult{}, fmt.Errorf("%w: %q", aggregate.ErrUnknownKind, kind)
	}
	for _, p := range s.settings.Projects {
		if p.Kind == kind {
			return s.buildProject(ctx, p), nil
		}
	}
	return ProjectResult{}, fmt.Errorf("%w: %s", ErrProjectNotConfigured, kind)
}

// LatestSnapshot returns the last dashboard that was built successfully.
func (s *DashboardService) LatestSnapshot(ctx context.Context) (Dashboard, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	snap, err := s.storage.Latest(dbCtx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if snap == nil {
		return Dashboard{}, ErrNoSnapshot
	}

	var d Dashboard
	if err := json.Unmarshal(snap.Payload, &d); err != nil {
		return Dashboard{}, fmt.Errorf("%w: decode snapshot %s: %v", ErrStorageFailure, snap.ID, err)
	}
	return d, nil
}

func (s *DashboardService) buildProject(ctx context.Context, p ProjectSource) (res ProjectResult) {
	res = ProjectResult{Kind: p.Kind, Name: p.Name}
	logger := s.logger.With(zap.String("project", string(p.Kind)))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("aggregation panicked", zap.Any("panic", r))
			res.Stats = nil
			res.Error = fmt.Sprintf("aggregation failed: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.settings.FetchTimeout)
	defer cancel()

	ds, err := s.loader.Load(ctx, p.DataURL)
	if err != nil {
		logger.Warn("project fetch failed", zap.Error(err))
		res.Error = fmt.Errorf("%w: %v", ErrSourceFailure, err).Error()
		return res
	}

	var survey []aggregate.Record
	if p.SatisfactionURL != "" {
		sds, err := s.loader.Load(ctx, p.SatisfactionURL)
		if err != nil {
			logger.Warn("satisfaction fetch failed", zap.Error(err))
			res.Error = fmt.Errorf("%w: satisfaction: %v", ErrSourceFailure, err).Error()
			return res
		}
		survey = sds.Records()
	}

	stats, err := aggregate.Aggregate(p.Kind, ds.Input(survey))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if p.Name != "" {
		stats.Name = p.Name
	}
	res.Name = stats.Name
	res.Stats = &stats

	logger.Debug("project aggregated",
		zap.Int("records", len(ds.Records())),
		zap.Int("survey", len(survey)))
	return res
}

func (s *DashboardService) loadPartners(ctx context.Context) []Partner {
	ctx, cancel := context.WithTimeout(ctx, s.settings.FetchTimeout)
	defer cancel()

	ds, err := s.loader.Load(ctx, s.settings.PartnersURL)
	if err != nil {
		s.logger.Warn("partners fetch failed", zap.Error(err))
		return nil
	}

	var out []Partner
	for _, rec := range aggregate.CleanKeys(ds.Records()) {
		name := textOf(rec[partnerNameKey])
		if name == "" {
			continue
		}
		out = append(out, Partner{Name: name, Logo: textOf(rec[partnerLogoKey])})
	}
	return out
}

func (s *DashboardService) storeSnapshot(ctx context.Context, d Dashboard) {
	payload, err := json.Marshal(d)
	if err != nil {
		s.logger.Error("encode snapshot", zap.Error(err))
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	snap := models.Snapshot{
		ID:           d.ID,
		CreatedAt:    d.GeneratedAt,
		ProjectCount: d.Summary.ProjectCount,
		FailedCount:  d.Summary.FailedCount,
		Payload:      payload,
	}
	if err := s.storage.Save(dbCtx, snap); err != nil {
		s.logger.Warn("failed to store snapshot", zap.String("id", d.ID), zap.Error(err))
		return
	}
	if n, err := s.storage.Prune(dbCtx, s.settings.KeepSnapshots); err != nil {
		s.logger.Warn("failed to prune snapshots", zap.Error(err))
	} else if n > 0 {
		s.logger.Debug("pruned snapshots", zap.Int64("removed", n))
	}
}

func textOf(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
