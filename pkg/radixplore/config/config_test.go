package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

const validYAML = `
annotations: data/sample-annotations.json
data_dir: data
ner_output: output/projects_ner_output.jsonl
final_output: output/projects_final.jsonl
tagger:
  base_url: http://localhost:8091
  training_set: output/train.jsonl
geocoder:
  user_agent: radixplore-test
  cache_path: output/geocode.db
extra_stopwords:
  - Limited
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Annotations != "data/sample-annotations.json" {
		t.Errorf("Annotations = %q", cfg.Annotations)
	}
	if cfg.Tagger.BaseURL != "http://localhost:8091" {
		t.Errorf("Tagger.BaseURL = %q", cfg.Tagger.BaseURL)
	}
	if cfg.Geocoder.BaseURL == "" {
		t.Error("Geocoder base URL should default")
	}
	if len(cfg.ExtraStopwords) != 1 || cfg.ExtraStopwords[0] != "Limited" {
		t.Errorf("ExtraStopwords = %v", cfg.ExtraStopwords)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	_, err := Load(writeConfig(t, "annotations: only.json\n"))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
