package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Prefix of the environment variables overriding the config file
const envPrefix = "DBF2CSV_"

// Config represents the dbf2csv configuration file (~/.config/dbf2csv/config.yaml).
// Flags and booleans are pointers so we can distinguish "not set" from zero values.
type Config struct {
	OutputDir         string `yaml:"output_dir"`
	Recursive         *bool  `yaml:"recursive"`
	Workers           *int   `yaml:"workers"`
	Compress          string `yaml:"compress"`
	Separator         string `yaml:"separator"`
	TrailingSeparator *bool  `yaml:"trailing_separator"`
	UTF8              *bool  `yaml:"utf8"`
	InterpretCodePage *bool  `yaml:"interpret_codepage"`
	Trim              *bool  `yaml:"trim"`
	Report            string `yaml:"report"`
	LogLevel          string `yaml:"log_level"`
	LogFormat         string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dbf2csv", "config.yaml")
}

// LoadConfig reads the config file at path, or at the default location if path
// is empty, and applies the DBF2CSV_* environment variables on top. Variables
// from a .env file in the working directory are loaded first.
// A missing file is only an error if path was given explicitly.
func LoadConfig(path string) (Config, error) {
	// .env is optional and never overrides the real environment
	_ = godotenv.Load()

	var cfg Config
	explicit := path != ""
	if !explicit {
		path = configPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides the config with the DBF2CSV_* variables returned by lookup.
func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	texts := map[string]*string{
		"OUTPUT_DIR": &cfg.OutputDir,
		"COMPRESS":   &cfg.Compress,
		"SEPARATOR":  &cfg.Separator,
		"REPORT":     &cfg.Report,
		"LOG_LEVEL":  &cfg.LogLevel,
		"LOG_FORMAT": &cfg.LogFormat,
	}
	for name, dst := range texts {
		if value, ok := lookup(envPrefix + name); ok {
			*dst = value
		}
	}
	bools := map[string]**bool{
		"RECURSIVE":          &cfg.Recursive,
		"TRAILING_SEPARATOR": &cfg.TrailingSeparator,
		"UTF8":               &cfg.UTF8,
		"INTERPRET_CODEPAGE": &cfg.InterpretCodePage,
		"TRIM":               &cfg.Trim,
	}
	for name, dst := range bools {
		value, ok := lookup(envPrefix + name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = &parsed
	}
	if value, ok := lookup(envPrefix + "WORKERS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", envPrefix, err)
		}
		cfg.Workers = &parsed
	}
	return nil
}

// applyConfig applies config defaults to the flag variables
// when the corresponding CLI flag was not explicitly set.
func applyConfig(c *cli.Command, cfg Config) {
	if cfg.OutputDir != "" && !c.IsSet("output-dir") {
		outputDir = cfg.OutputDir
	}
	if cfg.Recursive != nil && !c.IsSet("recursive") {
		recursive = *cfg.Recursive
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		workers = *cfg.Workers
	}
	if cfg.Compress != "" && !c.IsSet("compress") {
		compression = cfg.Compress
	}
	if cfg.Separator != "" && !c.IsSet("separator") {
		separator = cfg.Separator
	}
	if cfg.TrailingSeparator != nil && !c.IsSet("trailing-separator") {
		trailingSeparator = *cfg.TrailingSeparator
	}
	if cfg.UTF8 != nil && !c.IsSet("utf8") {
		utf8Output = *cfg.UTF8
	}
	if cfg.InterpretCodePage != nil && !c.IsSet("interpret-codepage") {
		interpretCodePage = *cfg.InterpretCodePage
	}
	if cfg.Trim != nil && !c.IsSet("trim") {
		trimSpaces = *cfg.Trim
	}
	if cfg.Report != "" && !c.IsSet("report") {
		reportPath = cfg.Report
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
