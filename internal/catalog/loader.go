package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a catalog as a flat list of strings. The format follows the
// extension: .json and .yaml/.yml hold a top-level list, .xlsx lists values in
// the first column of the first sheet.
func LoadFile(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return loadXLSX(path)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext {
	case ".json":
		return parseJSON(blob)
	case ".yaml", ".yml":
		return parseYAML(blob)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %q", ext)
	}
}

func parseJSON(blob []byte) ([]string, error) {
	var values []string
	if err := json.Unmarshal(blob, &values); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings: %w", err)
	}
	return values, nil
}

func parseYAML(blob []byte) ([]string, error) {
	var values []string
	if err := yaml.Unmarshal(blob, &values); err != nil {
		return nil, fmt.Errorf("expected a YAML sequence of strings: %w", err)
	}
	return values, nil
}

func loadXLSX(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if v := strings.TrimSpace(row[0]); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}
