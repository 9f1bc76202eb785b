package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	extJSON = ".json"
	extXLSX = ".xlsx"
)

// FileSource reads exports saved on disk.
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

func (s *FileSource) Load(ctx context.Context, location string) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	ext := strings.ToLower(filepath.Ext(location))
	if ext != extJSON && ext != extXLSX {
		return Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, location)
	}

	f, err := os.Open(location)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", location, err)
	}
	defer f.Close()

	var ds Dataset
	if ext == extXLSX {
		ds, err = DecodeWorkbook(f)
	} else {
		ds, err = DecodeJSON(f)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("decode %s: %w", location, err)
	}
	return ds, nil
}
