package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/biteboxd/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent keys keep the
// value from the previous source.
type JsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with the file at path. An empty path is a no-op.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
