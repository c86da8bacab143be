package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// LoadFile overlays values from a YAML file onto cfg. Only fields set
// in the file replace the existing values, so flag defaults survive an
// incomplete file and explicit flags can still win afterwards.
func LoadFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename) //nolint:gosec // config file path is user-provided
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	var file Config
	if err = yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	merge(cfg, &file)
	return nil
}

func merge(dst, src *Config) {
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.Requests != 0 {
		dst.Requests = src.Requests
	}
	if src.Concurrency != 0 {
		dst.Concurrency = src.Concurrency
	}
	if src.Timeout != "" {
		dst.Timeout = src.Timeout
	}
	if src.Warmup != 0 {
		dst.Warmup = src.Warmup
	}

	if src.Capacity.MinConcurrency != 0 {
		dst.Capacity.MinConcurrency = src.Capacity.MinConcurrency
	}
	if src.Capacity.MaxConcurrency != 0 {
		dst.Capacity.MaxConcurrency = src.Capacity.MaxConcurrency
	}
	if src.Capacity.Requests != 0 {
		dst.Capacity.Requests = src.Capacity.Requests
	}
	if src.Capacity.Precision != "" {
		dst.Capacity.Precision = src.Capacity.Precision
	}
	if src.Capacity.SuccessRate != "" {
		dst.Capacity.SuccessRate = src.Capacity.SuccessRate
	}
	if src.Capacity.P99Threshold != "" {
		dst.Capacity.P99Threshold = src.Capacity.P99Threshold
	}

	if src.Influx.Enabled {
		dst.Influx.Enabled = true
	}
	if src.Influx.Host != "" {
		dst.Influx.Host = src.Influx.Host
	}
	if src.Influx.Token != "" {
		dst.Influx.Token = src.Influx.Token
	}
	if src.Influx.Database != "" {
		dst.Influx.Database = src.Influx.Database
	}
}
