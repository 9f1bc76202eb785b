package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"APP_ENV", "GRPC_PORT", "HTTP_PORT", "CACHE_ENABLED", "FETCH_TIMEOUT", "FETCH_CONCURRENCY"} {
			t.Setenv(k, "")
		}

		cfg := LoadFromEnv()

		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, 50051, cfg.GRPCPort)
		assert.Equal(t, 8080, cfg.HTTPPort)
		assert.True(t, cfg.CacheEnabled)
		assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
		assert.Equal(t, 4, cfg.FetchConcurrency)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("GRPC_PORT", "6000")
		t.Setenv("CACHE_ENABLED", "false")
		t.Setenv("FETCH_TIMEOUT", "45")
		t.Setenv("SNAPSHOT_MAX_AGE", "90s")
		t.Setenv("ALLOWED_ORIGINS", "https://dash.example")

		cfg := LoadFromEnv()

		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, 6000, cfg.GRPCPort)
		assert.False(t, cfg.CacheEnabled)
		assert.Equal(t, 45*time.Second, cfg.FetchTimeout)
		assert.Equal(t, 90*time.Second, cfg.SnapshotMaxAge)
		assert.Equal(t, "https://dash.example", cfg.AllowedOrigins)
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		t.Setenv("GRPC_PORT", "grpc")
		t.Setenv("GRPC_REFLECTION_ENABLED", "maybe")
		t.Setenv("FETCH_TIMEOUT", "-3s")

		cfg := LoadFromEnv()

		assert.Equal(t, 50051, cfg.GRPCPort)
		assert.False(t, cfg.GRPCReflectionEnabled)
		assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	})
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(&Config{AppEnv: env})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestDefaultCatalogue(t *testing.T) {
	c, err := DefaultCatalogue()
	require.NoError(t, err)

	assert.NotEmpty(t, c.PartnersURL)
	require.Len(t, c.Projects, 8)

	sources := c.Sources()
	assert.Equal(t, aggregate.KindWofood, sources[0].Kind)
	assert.Equal(t, "مشروع وفود الحرم", sources[0].Name)
	for _, s := range sources {
		assert.True(t, s.Kind.Valid(), s.Kind)
		assert.True(t, strings.HasPrefix(s.DataURL, "https://"), s.Kind)
	}
	assert.Empty(t, sources[1].SatisfactionURL)
	assert.NotEmpty(t, sources[2].SatisfactionURL)
}

func TestParseCatalogue(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := ParseCatalogue(strings.NewReader(`
projects:
  - name: " لوجستيات "
    kind: logistics
    data_url: ./data/logistics.xlsx
`))
		require.NoError(t, err)
		sources := c.Sources()
		require.Len(t, sources, 1)
		assert.Equal(t, "لوجستيات", sources[0].Name)
		assert.Equal(t, aggregate.KindLogistics, sources[0].Kind)
	})

	t.Run("empty document", func(t *testing.T) {
		c, err := ParseCatalogue(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, c.Projects)
	})

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", "projects:\n  - kind: bazaar\n    data_url: x.json\n"},
		{"missing data url", "projects:\n  - kind: iftar\n"},
		{"duplicate kind", "projects:\n  - kind: iftar\n    data_url: a.json\n  - kind: iftar\n    data_url: b.json\n"},
		{"unknown field", "projects:\n  - kind: iftar\n    data_uri: a.json\n"},
		{"not yaml", "projects: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalogue(strings.NewReader(tt.doc))
			assert.True(t, errors.Is(err, ErrInvalidCatalogue), "got %v", err)
		})
	}
}

func TestLoadCatalogue(t *testing.T) {
	t.Run("empty path uses the default", func(t *testing.T) {
		c, err := LoadCatalogue("")
		require.NoError(t, err)
		assert.Len(t, c.Projects, 8)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projects.yaml")
		require.NoError(t, os.WriteFile(path, []byte("partners_url: p.json\nprojects:\n  - kind: suqia\n    data_url: s.json\n"), 0o600))

		c, err := LoadCatalogue(path)
		require.NoError(t, err)
		assert.Equal(t, "p.json", c.PartnersURL)
		assert.Len(t, c.Projects, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalogue(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSettings(t *testing.T) {
	cfg := &Config{FetchTimeout: time.Second, FetchConcurrency: 2, KeepSnapshots: 3}
	c := Catalogue{
		PartnersURL: " p.json ",
		Projects:    []ProjectEntry{{Kind: "iftar", DataURL: "i.json"}},
	}

	s := cfg.Settings(c)

	assert.Equal(t, "p.json", s.PartnersURL)
	assert.Equal(t, time.Second, s.FetchTimeout)
	assert.Equal(t, 2, s.Concurrency)
	assert.Equal(t, 3, s.KeepSnapshots)
	require.Len(t, s.Projects, 1)
	assert.Equal(t, aggregate.KindIftar, s.Projects[0].Kind)
}
