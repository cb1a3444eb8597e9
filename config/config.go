// Package config holds the run configuration, loadable from a YAML file.
package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEndpointURL is the documented KGX3 submit endpoint.
const DefaultEndpointURL = "https://preprintwatch.com/wp-json/pw-kgx3/v1/submit"

// Config are the settings for one test run. Zero/empty values on optional
// fields mean "use the default" (or, for HistoryDB and ReportPath,
// "disabled" and "timestamped default name" respectively).
type Config struct {
	EndpointURL    string `yaml:"endpoint_url"`
	CasesFile      string `yaml:"cases_file"`
	LogFile        string `yaml:"log_file"`
	ReportPath     string `yaml:"report_path"`
	HistoryDB      string `yaml:"history_db"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	DelayMS        int    `yaml:"delay_ms"`
}

// Default returns the configuration matching a plain, flagless invocation.
func Default() Config {
	return Config{
		EndpointURL:    DefaultEndpointURL,
		CasesFile:      "test_data.csv",
		LogFile:        "test_results.log",
		TimeoutSeconds: 200,
		DelayMS:        1000,
	}
}

// Load reads a YAML config file and overlays it onto the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.EndpointURL == "" {
		return fmt.Errorf("endpoint_url must not be empty")
	}
	if c.CasesFile == "" {
		return fmt.Errorf("cases_file must not be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	if c.DelayMS < 0 {
		return fmt.Errorf("delay_ms must not be negative")
	}
	return nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}
