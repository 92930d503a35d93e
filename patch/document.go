package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/savkit/errs"
)

// Decode parses a patch document. Input starting with '{' is read as JSON with numbers kept
// as json.Number; anything else as YAML.
func Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	if trimmed[0] == '{' {
		return decodeJSON(trimmed)
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidDocument, err)
	}

	return doc, nil
}

// Load reads a patch document from path. JSON is expected for .json files, YAML otherwise.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch document: %w", err)
	}

	decode := Decode
	if strings.EqualFold(filepath.Ext(path), ".json") {
		decode = decodeJSON
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidDocument, err)
	}

	return doc, nil
}
