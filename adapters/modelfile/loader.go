// Package modelfile loads factor models from YAML, JSON, xlsx and CSV files.
package modelfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopairs/adapters/excel"
	"gopairs/domain/factor"

	"gopkg.in/yaml.v3"
)

// Loader dispatches on file extension.
type Loader struct {
	sheets *excel.DataReader
}

// NewLoader creates a loader that reads spreadsheets with reader.
func NewLoader(reader *excel.DataReader) *Loader {
	return &Loader{sheets: reader}
}

// Load reads a model with the default spreadsheet settings.
func Load(ctx context.Context, path string) (factor.Model, error) {
	return NewLoader(excel.NewDataReader(excel.DefaultReaderConfig())).ReadModel(ctx, path)
}

// ReadModel implements ports.ModelReader.
func (l *Loader) ReadModel(ctx context.Context, path string) (factor.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.readDocument(path, decodeYAML)
	case ".json":
		return l.readDocument(path, decodeJSON)
	case ".xlsx", ".xlsm", ".csv":
		return l.sheets.ReadModel(ctx, path)
	default:
		return factor.Model{}, fmt.Errorf("unsupported model file %q", filepath.Base(path))
	}
}

func (l *Loader) readDocument(path string, decode func([]byte) (factor.Model, error)) (factor.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return factor.Model{}, fmt.Errorf("failed to read model file: %w", err)
	}
	m, err := decode(data)
	if err != nil {
		return factor.Model{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if err := factor.Validate(m); err != nil {
		return factor.Model{}, err
	}
	return m, nil
}

// decodeYAML accepts either {factors: [...]} or a bare list of factors.
func decodeYAML(data []byte) (factor.Model, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return factor.Model{}, err
	}
	if len(node.Content) == 0 {
		return factor.Model{}, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var factors []factor.Factor
		if err := root.Decode(&factors); err != nil {
			return factor.Model{}, err
		}
		return factor.New(factors...), nil
	}
	var m factor.Model
	if err := root.Decode(&m); err != nil {
		return factor.Model{}, err
	}
	return m, nil
}

func decodeJSON(data []byte) (factor.Model, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var factors []factor.Factor
		if err := json.Unmarshal(trimmed, &factors); err != nil {
			return factor.Model{}, err
		}
		return factor.New(factors...), nil
	}
	var m factor.Model
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return factor.Model{}, err
	}
	return m, nil
}

// Encode renders a model in the YAML layout Load accepts.
func Encode(m factor.Model) ([]byte, error) {
	return yaml.Marshal(m)
}
