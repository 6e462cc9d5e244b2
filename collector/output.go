package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reviewscout/models"
)

// WriteJSON serializes reviews as an indented UTF-8 JSON array. An empty
// result still writes a valid empty array. The file is written in one shot
// only after the full set is finalized, so a failed run never leaves a
// partial file.
func WriteJSON(path string, reviews []models.Review) error {
	if reviews == nil {
		reviews = []models.Review{}
	}
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("collector: encode reviews: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("collector: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("collector: write %s: %w", path, err)
	}
	return nil
}

// DefaultPath builds the conventional output location:
// {dir}/{company}_{selector}_reviews_{timestamp}.json.
func DefaultPath(dir, company, selector string) string {
	name := fmt.Sprintf("%s_%s_reviews_%s.json",
		sanitizeName(company), selector, time.Now().Format("20060102_150405"))
	return filepath.Join(dir, name)
}

// sanitizeName keeps company names filesystem-safe.
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, s)
}
