package app

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/records"
	"github.com/semih007/gradecalc/internal/scoring"
	"github.com/semih007/gradecalc/migrations"
)

const DefaultConfigPath = "config.toml"

type HeaderConfig struct {
	Name  string `toml:"name" validate:"required"`
	Value string `toml:"value"`
}

type Config struct {
	Server struct {
		Addr            string         `toml:"addr" validate:"required"`
		RequiredHeaders []HeaderConfig `toml:"required_headers" validate:"dive"`
	} `toml:"server"`

	Database struct {
		DSN           string `toml:"dsn" validate:"required"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Store struct {
		WriteRetries uint64 `toml:"write_retries" validate:"lte=10"`
		RetryBaseMS  int    `toml:"retry_base_ms" validate:"gt=0"`
	} `toml:"store"`

	Grading struct {
		MidtermWeight     float64   `toml:"midterm_weight" validate:"gte=0,lte=1"`
		FinalWeight       float64   `toml:"final_weight" validate:"gte=0,lte=1"`
		PassCutoff        float64   `toml:"pass_cutoff" validate:"gte=0,lte=100"`
		ConditionalCutoff float64   `toml:"conditional_cutoff" validate:"gte=0,ltefield=PassCutoff"`
		DefaultThreshold  float64   `toml:"default_threshold" validate:"gte=0,lte=100"`
		ThresholdPresets  []float64 `toml:"threshold_presets" validate:"min=1,dive,gte=0,lte=100"`
	} `toml:"grading"`

	History struct {
		Cap int `toml:"cap" validate:"gt=0"`
	} `toml:"history"`

	Display struct {
		TimestampFormat string `toml:"timestamp_format" validate:"required"`
	} `toml:"display"`

	Labels scoring.Labels `toml:"labels"`
}

func DefaultConfig() *Config {
	var config Config
	config.Server.Addr = "127.0.0.1:8787"
	config.Database.DSN = "gradecalc.db"
	config.Store.WriteRetries = records.DefaultWriteRetries
	config.Store.RetryBaseMS = int(records.DefaultRetryBase / time.Millisecond)
	config.Grading.MidtermWeight = scoring.DefaultMidtermWeight
	config.Grading.FinalWeight = scoring.DefaultFinalWeight
	config.Grading.PassCutoff = scoring.DefaultPassCutoff
	config.Grading.ConditionalCutoff = scoring.DefaultConditionalCutoff
	config.Grading.DefaultThreshold = scoring.DefaultThreshold
	config.Grading.ThresholdPresets = append([]float64(nil), scoring.DefaultPresets...)
	config.History.Cap = records.DefaultHistoryCap
	config.Display.TimestampFormat = records.DefaultTimestampFormat
	config.Labels = scoring.DefaultLabels()
	return &config
}

// LoadConfig reads path over the defaults. A missing file is not an error,
// the defaults are used as they are.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug.Printf("No config at %s, using defaults", path)
		return config, config.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger.Debug.Printf("Loaded grading config: %+v", config.Grading)

	return config, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if sum := c.Grading.MidtermWeight + c.Grading.FinalWeight; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("midterm_weight and final_weight must add up to 1, got %g", sum)
	}
	return nil
}

func (c *Config) Grader() *scoring.Grader {
	return scoring.NewGrader(
		c.Grading.MidtermWeight,
		c.Grading.FinalWeight,
		c.Grading.PassCutoff,
		c.Grading.ConditionalCutoff,
		c.Labels,
	)
}

func (c *Config) RecordsOptions() records.Options {
	threshold := c.Grading.DefaultThreshold
	return records.Options{
		HistoryCap:       c.History.Cap,
		WriteRetries:     c.Store.WriteRetries,
		RetryBase:        time.Duration(c.Store.RetryBaseMS) * time.Millisecond,
		TimestampFormat:  c.Display.TimestampFormat,
		DefaultThreshold: &threshold,
		Presets:          c.Grading.ThresholdPresets,
	}
}

// Migrations is the schema source: migrations_dir when set, the embedded
// files otherwise.
func (c *Config) Migrations() fs.FS {
	if c.Database.MigrationsDir != "" {
		return os.DirFS(c.Database.MigrationsDir)
	}
	return migrations.FS
}
