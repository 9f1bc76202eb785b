// Package source loads spreadsheet exports into records the aggregators
// consume. Exports arrive as JSON from a web endpoint or as local JSON and
// xlsx files.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

var (
	ErrUnsupportedSource = errors.New("unsupported source")
	ErrMalformedPayload  = errors.New("malformed payload")
)

// Dataset is one export: a single sheet for flat arrays, one sheet per tab
// for workbooks.
type Dataset struct {
	Sheets []aggregate.Sheet
}

// Records flattens all sheets in order.
func (d Dataset) Records() []aggregate.Record {
	return aggregate.Input{Sheets: d.Sheets}.Records()
}

// Input pairs the dataset with a satisfaction survey.
func (d Dataset) Input(satisfaction []aggregate.Record) aggregate.Input {
	return aggregate.Input{Sheets: d.Sheets, Satisfaction: satisfaction}
}

// Loader fetches the dataset found at location.
type Loader interface {
	Load(ctx context.Context, location string) (Dataset, error)
}

// Router sends http(s) locations to the web loader and everything else to
// the file loader.
type Router struct {
	web   Loader
	files Loader
}

func NewRouter(web, files Loader) *Router {
	if web == nil || files == nil {
		panic("router requires both loaders")
	}
	return &Router{web: web, files: files}
}

func (r *Router) Load(ctx context.Context, location string) (Dataset, error) {
	if location == "" {
		return Dataset{}, fmt.Errorf("%w: empty location", ErrUnsupportedSource)
	}
	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return r.web.Load(ctx, location)
		case "file":
			return r.files.Load(ctx, u.Path)
		}
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case extJSON, extXLSX:
		return r.files.Load(ctx, location)
	}
	return Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, location)
}
