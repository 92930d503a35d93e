package typetable

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromJSON builds a Table from the JSON interchange format: an object mapping signed decimal
// hash keys to kind strings.
//
//	{"-1349479423": "s32", "1092766519": "string_array"}
func FromJSON(data []byte, opts ...Option) (*Table, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse type table: %w", err)
	}

	return fromEntries(entries, opts...)
}

// FromYAML builds a Table from a YAML mapping with the same shape as the JSON format.
func FromYAML(data []byte, opts ...Option) (*Table, error) {
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse type table: %w", err)
	}

	return fromEntries(entries, opts...)
}

// Load reads a type table file, choosing the decoder by extension (.yaml/.yml, otherwise JSON).
func Load(path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type table: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data, opts...)
	default:
		return FromJSON(data, opts...)
	}
}

// LoadNames reads a field name list: a JSON array of strings, or one name per line.
func LoadNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field names: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		return names, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}

	return names, nil
}

func fromEntries(entries map[string]string, opts ...Option) (*Table, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if err := b.AddEntry(key, entries[key]); err != nil {
			return nil, err
		}
	}

	return b.Build()
}
