// Package config loads the per-report YAML configuration: input paths,
// table geometry hints, and analysis parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

// Config is the root report configuration.
type Config struct {
	Fields FieldsConfig `yaml:"fields"`
	Diary  DiaryConfig  `yaml:"diary"`
	Subway SubwayConfig `yaml:"subway"`
	Papers PapersConfig `yaml:"papers"`
	Sim    SimYAML      `yaml:"sim"`
	Render RenderConfig `yaml:"render"`
}

// FieldsConfig locates the classification workbook.
type FieldsConfig struct {
	Workbook     string `yaml:"workbook"`
	FieldSheet   string `yaml:"field_sheet"`
	JournalSheet string `yaml:"journal_sheet"`
}

// DiaryConfig locates the diary PDF and names its columns.
type DiaryConfig struct {
	PDF         string            `yaml:"pdf"`
	Columns     []string          `yaml:"columns"`
	Stopwords   []string          `yaml:"stopwords"`
	Corrections map[string]string `yaml:"corrections"`
}

// SubwayConfig locates the transit tables and sets the reach horizon.
type SubwayConfig struct {
	Stops       string  `yaml:"stops"`
	Edges       string  `yaml:"edges"`
	TmaxMinutes float64 `yaml:"tmax_minutes"`
}

// PapersConfig locates the working-paper metadata.
type PapersConfig struct {
	Metadata string `yaml:"metadata"`
}

// SimYAML parameterizes the OLS/TLS simulation.
type SimYAML struct {
	Seed      int64   `yaml:"seed"`
	N         int     `yaml:"n"`
	Slope     float64 `yaml:"slope"`
	Intercept float64 `yaml:"intercept"`
	XStdDev   float64 `yaml:"x_stddev"`
	NoiseY    float64 `yaml:"noise_y"`
	NoiseZ    float64 `yaml:"noise_z"`
}

// RenderConfig overrides the default theme.
type RenderConfig struct {
	FloatFormat string `yaml:"float_format"`
	NullText    string `yaml:"null_text"`
	InfText     string `yaml:"inf_text"`
}

// Load reads and validates a configuration file.
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
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Subway.TmaxMinutes == 0 {
		c.Subway.TmaxMinutes = 60
	}
	if c.Fields.FieldSheet == "" {
		c.Fields.FieldSheet = "ASJC codes"
	}
	if c.Fields.JournalSheet == "" {
		c.Fields.JournalSheet = "Active journals"
	}
}

func (c *Config) validate() error {
	if c.Subway.TmaxMinutes < 0 {
		return fmt.Errorf("subway.tmax_minutes must be non-negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.Sim.N < 0 {
		return fmt.Errorf("sim.n must be non-negative: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}
