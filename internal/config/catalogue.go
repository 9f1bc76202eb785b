package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/service"
)

//go:embed projects.yaml
var defaultCatalogue []byte

var ErrInvalidCatalogue = errors.New("invalid project catalogue")

// Catalogue lists the projects shown on the dashboard and where their
// exports live.
type Catalogue struct {
	PartnersURL string         `yaml:"partners_url"`
	Projects    []ProjectEntry `yaml:"projects"`
}

type ProjectEntry struct {
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind"`
	DataURL         string `yaml:"data_url"`
	SatisfactionURL string `yaml:"satisfaction_url,omitempty"`
}

// DefaultCatalogue returns the built-in catalogue.
func DefaultCatalogue() (Catalogue, error) {
	return ParseCatalogue(bytes.NewReader(defaultCatalogue))
}

// LoadCatalogue reads the catalogue at path, or the built-in one when path
// is empty.
func LoadCatalogue(path string) (Catalogue, error) {
	if path == "" {
		return DefaultCatalogue()
	}
	f, err := os.Open(path)
	if err != nil {
		return Catalogue{}, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return ParseCatalogue(f)
}

// ParseCatalogue decodes and validates a YAML catalogue. Unknown fields are
// rejected so typos do not silently drop a source.
func ParseCatalogue(r io.Reader) (Catalogue, error) {
	var c Catalogue
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Catalogue{}, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	if err := c.Validate(); err != nil {
		return Catalogue{}, err
	}
	return c, nil
}

// Validate checks every entry names a known kind and a data source.
func (c Catalogue) Validate() error {
	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		kind := aggregate.Kind(strings.TrimSpace(p.Kind))
		if !kind.Valid() {
			return fmt.Errorf("%w: project %d: %w", ErrInvalidCatalogue, i+1, aggregate.ErrUnknownKind)
		}
		if strings.TrimSpace(p.DataURL) == "" {
			return fmt.Errorf("%w: project %d (%s): data_url is required", ErrInvalidCatalogue, i+1, kind)
		}
		if seen[string(kind)] {
			return fmt.Errorf("%w: project %d: duplicate kind %s", ErrInvalidCatalogue, i+1, kind)
		}
		seen[string(kind)] = true
	}
	return nil
}

// Sources converts the catalogue to what the dashboard service consumes.
func (c Catalogue) Sources() []service.ProjectSource {
	out := make([]service.ProjectSource, len(c.Projects))
	for i, p := range c.Projects {
		out[i] = service.ProjectSource{
			Name:            strings.TrimSpace(p.Name),
			Kind:            aggregate.Kind(strings.TrimSpace(p.Kind)),
			DataURL:         strings.TrimSpace(p.DataURL),
			SatisfactionURL: strings.TrimSpace(p.SatisfactionURL),
		}
	}
	return out
}

// Settings builds the dashboard service settings from the environment and
// the catalogue.
func (cfg *Config) Settings(c Catalogue) service.Settings {
	return service.Settings{
		Projects:       c.Sources(),
		PartnersURL:    strings.TrimSpace(c.PartnersURL),
		FetchTimeout:   cfg.FetchTimeout,
		Concurrency:    cfg.FetchConcurrency,
		SnapshotMaxAge: cfg.SnapshotMaxAge,
		KeepSnapshots:  cfg.KeepSnapshots,
	}
}
