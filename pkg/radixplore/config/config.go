// Package config holds the run configuration for the pipeline. A Config
// is built once at startup and read-only thereafter.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

// Config names every input, output, and collaborator endpoint of a run.
type Config struct {
	Annotations string `yaml:"annotations"`
	DataDir     string `yaml:"data_dir"`
	NEROutput   string `yaml:"ner_output"`
	FinalOutput string `yaml:"final_output"`

	Tagger   TaggerConfig   `yaml:"tagger"`
	Geocoder GeocoderConfig `yaml:"geocoder"`

	// ExtraStopwords extends the candidate extractor's stopword set.
	ExtraStopwords []string `yaml:"extra_stopwords"`
}

// TaggerConfig locates the sequence-tagger service.
type TaggerConfig struct {
	BaseURL string `yaml:"base_url"`

	// TrainingSet, when set, is where the aligned examples are exported
	// as JSONL before training.
	TrainingSet string `yaml:"training_set"`
}

// GeocoderConfig configures the geocoding backend.
type GeocoderConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`

	// CachePath, when set, enables the SQLite response cache.
	CachePath string `yaml:"cache_path"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = geocode.DefaultBaseURL
	}
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = "radixplore-pipeline"
	}
}

// Validate checks that every required field is present.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"annotations", c.Annotations},
		{"data_dir", c.DataDir},
		{"ner_output", c.NEROutput},
		{"final_output", c.FinalOutput},
		{"tagger.base_url", c.Tagger.BaseURL},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s is required: %w", field.name, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}
