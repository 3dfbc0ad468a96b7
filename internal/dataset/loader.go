// Package dataset loads labeled training samples from files.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/baitcheck/internal/model"
)

// Load reads samples from a file, dispatching on the extension:
// .yaml/.yml, .csv (label,text), .html (unlabeled stripped text is not
// supported - HTML must be converted first), anything else is treated as
// tab-separated "label<TAB>text" lines.
func Load(path string) ([]model.TrainingSample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return LoadLines(path)
	}
}

// LoadYAML reads a YAML list of {text, label} entries
func LoadYAML(path string) ([]model.TrainingSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var samples []model.TrainingSample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return validate(samples)
}

// LoadCSV reads "label,text" rows. A header row with label/text column
// names is skipped.
func LoadCSV(path string) ([]model.TrainingSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var samples []model.TrainingSample
	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "label") {
			continue
		}
		label, err := model.ParseLabel(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		samples = append(samples, model.TrainingSample{
			Text:  strings.TrimSpace(row[1]),
			Label: label,
		})
	}
	return validate(samples)
}

// LoadLines reads "label<TAB>text" lines, skipping blanks, comments, and
// duplicate texts.
func LoadLines(path string) ([]model.TrainingSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	var samples []model.TrainingSample
	seen := make(map[string]bool)
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labelStr, text, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: want \"label<TAB>text\"", lineNo)
		}
		label, err := model.ParseLabel(strings.TrimSpace(labelStr))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		text = strings.TrimSpace(text)
		if seen[text] {
			continue
		}
		seen[text] = true
		samples = append(samples, model.TrainingSample{Text: text, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return validate(samples)
}

func validate(samples []model.TrainingSample) ([]model.TrainingSample, error) {
	out := samples[:0]
	for i, s := range samples {
		if !s.Label.Valid() {
			return nil, fmt.Errorf("sample %d: unknown label %q", i+1, s.Label)
		}
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("dataset contains no usable samples")
	}
	return out, nil
}
