package study

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Studies []Record `yaml:"studies"`
}

// LoadFile reads a study catalog from a YAML or JSON file. The document may
// be a bare list of studies or a mapping with a "studies" list.
func LoadFile(path string) ([]Study, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported catalog file extension %q", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	records, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	studies, err := Decode(records)
	if err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}
	return studies, nil
}

// parseCatalog decodes YAML; JSON documents parse as YAML flow style.
func parseCatalog(data []byte) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []Record
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	case yaml.MappingNode:
		var file catalogFile
		if err := root.Decode(&file); err != nil {
			return nil, err
		}
		return file.Studies, nil
	default:
		return nil, fmt.Errorf("catalog must be a list or a mapping with a studies key, line %d", root.Line)
	}
}
