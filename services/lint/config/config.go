// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/treequery/services/lint/treequery"
)

// =============================================================================
// Embedded Defaults
// =============================================================================

//go:embed default_config.yaml
var defaultConfigYAML []byte

// =============================================================================
// Configuration Types
// =============================================================================

// Property kinds understood by PropertyOrder.
const (
	KindService       = "service"
	KindProperty      = "property"
	KindComputed      = "computed"
	KindLifecycleHook = "lifecycle-hook"
	KindActions       = "actions"
	KindMethod        = "method"
)

// Config is the treequery configuration.
//
// Description:
//
//	Loaded from treequery.yaml merged over the embedded defaults. Map
//	fields merge key by key; list fields replace the default list.
//
// Thread Safety: Immutable after loading; safe for concurrent use.
type Config struct {
	// Bindings lists tracked objects and their tracked properties for
	// destructuring analysis.
	Bindings treequery.BindingMap `yaml:"bindings" json:"bindings"`

	// PropertyOrder is the expected order of property kinds.
	PropertyOrder []string `yaml:"property_order" json:"property_order" validate:"unique,dive,oneof=service property computed lifecycle-hook actions method"`

	// LifecycleHooks are method names classified as KindLifecycleHook.
	LifecycleHooks []string `yaml:"lifecycle_hooks" json:"lifecycle_hooks" validate:"dive,required"`

	// MaxFileSize is the largest file, in bytes, that will be parsed.
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size" validate:"gt=0"`

	// Concurrency bounds the number of files inspected at once.
	Concurrency int `yaml:"concurrency" json:"concurrency" validate:"gte=1,lte=256"`

	// Telemetry configures trace and metric export.
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// TelemetryConfig configures the OpenTelemetry exporters.
type TelemetryConfig struct {
	// ServiceName is reported as the otel service.name resource attribute.
	ServiceName string `yaml:"service_name" json:"service_name" validate:"required"`

	// TraceExporter is "none", "stdout" or "otlp".
	TraceExporter string `yaml:"trace_exporter" json:"trace_exporter" validate:"oneof=none stdout otlp"`

	// MetricExporter is "none" or "stdout".
	MetricExporter string `yaml:"metric_exporter" json:"metric_exporter" validate:"oneof=none stdout"`

	// OTLPEndpoint is the gRPC collector address used by the otlp exporter.
	OTLPEndpoint string `yaml:"otlp_endpoint" json:"otlp_endpoint" validate:"required_if=TraceExporter otlp"`
}

var configValidate = validator.New()

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Order returns the position of kind in PropertyOrder.
//
// Outputs:
//
//	int  - Zero-based position.
//	bool - False if kind is not ordered.
func (c *Config) Order(kind string) (int, bool) {
	i := slices.Index(c.PropertyOrder, kind)
	return i, i >= 0
}

// IsLifecycleHook reports whether name is a configured lifecycle hook.
func (c *Config) IsLifecycleHook(name string) bool {
	return slices.Contains(c.LifecycleHooks, name)
}

// clone returns a deep copy so callers can merge into it freely.
func (c *Config) clone() *Config {
	out := *c
	out.Bindings = make(treequery.BindingMap, len(c.Bindings))
	for k, v := range c.Bindings {
		out.Bindings[k] = slices.Clone(v)
	}
	out.PropertyOrder = slices.Clone(c.PropertyOrder)
	out.LifecycleHooks = slices.Clone(c.LifecycleHooks)
	return &out
}

// =============================================================================
// Loading
// =============================================================================

var (
	defaultsOnce sync.Once
	defaults     *Config
	defaultsErr  error
)

// Default returns a copy of the embedded default configuration.
//
// Thread Safety: Safe for concurrent use (uses sync.Once internally).
func Default() (*Config, error) {
	defaultsOnce.Do(func() {
		var cfg Config
		if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
			defaultsErr = fmt.Errorf("parsing default_config.yaml: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			defaultsErr = fmt.Errorf("default_config.yaml: %w", err)
			return
		}
		defaults = &cfg
	})
	if defaultsErr != nil {
		return nil, defaultsErr
	}
	return defaults.clone(), nil
}

// Load reads the configuration at path merged over the defaults.
//
// Description:
//
//	An empty path or a missing file yields the defaults. Bindings from the
//	file are added to (and override per key) the default bindings; every
//	other field present in the file replaces the default.
//
// Inputs:
//
//	path - Path to a treequery.yaml file. May be empty.
//
// Outputs:
//
//	*Config - The merged, validated configuration. Never nil on success.
//	error   - Non-nil if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", slog.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return parseOver(cfg, data, path)
}

// Parse decodes YAML data merged over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	return parseOver(cfg, data, "<inline>")
}

func parseOver(cfg *Config, data []byte, source string) (*Config, error) {
	base := maps.Clone(cfg.Bindings)
	cfg.Bindings = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", source, err)
	}

	maps.Copy(base, cfg.Bindings)
	cfg.Bindings = base

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", source, err)
	}

	slog.Debug("config loaded",
		slog.String("source", source),
		slog.Int("bindings", len(cfg.Bindings)),
		slog.Int("property_order", len(cfg.PropertyOrder)),
	)
	return cfg, nil
}
