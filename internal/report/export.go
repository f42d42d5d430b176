package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dir creates a per-transcript folder for exported report files.
func Dir(base, videoID string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(base, fmt.Sprintf("%s_%s", videoID, timestamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	return dir, nil
}

// WriteJSON saves the report as a pretty-printed JSON document.
func WriteJSON(rep Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteKeywordsCSV exports the marketing keywords.
func WriteKeywordsCSV(rep Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Keyword"}); err != nil {
		return err
	}
	for _, kw := range rep.Keywords {
		if err := w.Write([]string{kw}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteTechnologiesCSV exports the technologies table.
func WriteTechnologiesCSV(rep Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Name", "Category", "Description", "Inference Type"}); err != nil {
		return err
	}
	for _, tech := range rep.Technologies {
		if err := w.Write([]string{tech.Name, tech.Category, tech.Description, string(tech.Inference)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Export writes the JSON report and CSV side files into a fresh folder
// under base, returning the folder path.
func Export(rep Report, base string) (string, error) {
	dir, err := Dir(base, rep.VideoID)
	if err != nil {
		return "", err
	}
	if err := WriteJSON(rep, filepath.Join(dir, "report.json")); err != nil {
		return "", err
	}
	if err := WriteKeywordsCSV(rep, filepath.Join(dir, "keywords.csv")); err != nil {
		return "", err
	}
	if err := WriteTechnologiesCSV(rep, filepath.Join(dir, "technologies.csv")); err != nil {
		return "", err
	}
	return dir, nil
}
