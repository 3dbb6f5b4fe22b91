// Package fixtures provides the datasets the store is seeded with: the built-in sample
// school and YAML files of the same shape.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
)

//go:embed sample.yaml
var sampleYAML []byte

// Sample returns a fresh copy of the built-in sample dataset.
func Sample() school.Dataset {
	ds, err := Decode(sampleYAML)
	if err != nil {
		panic(errors.Wrap(err, "decoding embedded sample"))
	}
	return ds
}

// Decode parses a YAML dataset. Unknown keys are rejected.
func Decode(data []byte) (school.Dataset, error) {
	var ds school.Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return school.Dataset{}, errors.Wrap(err, "decoding dataset")
	}
	return ds, nil
}

// Encode renders ds as YAML.
func Encode(ds school.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return nil, errors.Wrap(err, "encoding dataset")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding dataset")
	}
	return buf.Bytes(), nil
}

// SampleSource serves Sample().
func SampleSource() store.Source {
	return store.SourceFunc(func(ctx context.Context) (school.Dataset, error) {
		if err := ctx.Err(); err != nil {
			return school.Dataset{}, err
		}
		return Sample(), nil
	})
}

// FileSource reads a YAML dataset from Path on every Load.
type FileSource struct {
	Path string
}

func (fs FileSource) Load(ctx context.Context) (school.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return school.Dataset{}, err
	}
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return school.Dataset{}, errors.Wrapf(err, "reading %s", fs.Path)
	}
	return Decode(data)
}

// NewSource returns a FileSource for path, or the sample source when path is empty.
func NewSource(path string) store.Source {
	if path == "" {
		return SampleSource()
	}
	return FileSource{Path: path}
}
