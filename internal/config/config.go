// Package config resolves imagetext settings from defaults, a JSON file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"imagetext/search"
)

const (
	EnvSearchEndpoint = "IMAGETEXT_SEARCH_ENDPOINT"
	EnvUserAgent      = "IMAGETEXT_USER_AGENT"
	EnvTimeout        = "IMAGETEXT_TIMEOUT"
	EnvJobs           = "IMAGETEXT_JOBS"
)

type Config struct {
	Size           string   `json:"size"`
	Width          int      `json:"width,omitempty"`
	SearchEndpoint string   `json:"search_endpoint"`
	UserAgent      string   `json:"user_agent"`
	Timeout        Duration `json:"timeout"`
	Jobs           int      `json:"jobs"`
	SaveGrayDir    string   `json:"save_gray_dir,omitempty"`
}

// Duration reads either a Go duration string ("15s") or a number of seconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("timeout must be a duration string or seconds: %s", b)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

func NewDefault() *Config {
	return &Config{
		Size:           "default",
		SearchEndpoint: search.DefaultEndpoint,
		UserAgent:      search.DefaultUserAgent,
		Timeout:        Duration(search.DefaultTimeout),
		Jobs:           4,
	}
}

// Load reads filename over the defaults. A missing file is not an error;
// an empty filename skips the file entirely.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	if filename == "" {
		return cfg, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from IMAGETEXT_* variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSearchEndpoint); ok && v != "" {
		c.SearchEndpoint = v
	}
	if v, ok := lookup(EnvUserAgent); ok && v != "" {
		c.UserAgent = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = Duration(d)
	}
	if v, ok := lookup(EnvJobs); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		c.Jobs = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", time.Duration(c.Timeout))
	}
	return nil
}

// Save writes cfg as indented JSON.
func Save(cfg *Config, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
