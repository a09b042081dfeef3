// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the tool under test and harness behavior.
type Config struct {
	// Tool is the path of the build-tool executable to drive,
	// absolute or resolvable via PATH. Required.
	Tool string `yaml:"tool"`

	// ToolVersion is the version string the tool is expected to
	// report via "info release". Informational; tests assert on it.
	ToolVersion string `yaml:"tool_version"`

	// Environment holds extra environment variables set for every
	// tool invocation, on top of the inherited environment.
	Environment map[string]string `yaml:"environment"`

	// WorkspaceRoot anchors workspace generations. Empty means a
	// fresh directory under the system temp directory per harness.
	WorkspaceRoot string `yaml:"workspace_root"`

	// Snapshot configures failure-time workspace archiving.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// SnapshotConfig configures failure-time workspace archiving.
type SnapshotConfig struct {
	// Dir is the directory snapshot archives are written into.
	// Empty disables snapshots.
	Dir string `yaml:"dir"`

	// Exclude holds gitignore-syntax patterns for workspace paths to
	// omit from archives (tool output trees, caches).
	Exclude []string `yaml:"exclude"`
}

// Load loads configuration from the BUILDTEST_CONFIG environment
// variable. There are no fallbacks: if the variable is not set, this
// fails, keeping test configuration deterministic and auditable.
func Load() (*Config, error) {
	configPath := os.Getenv("BUILDTEST_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("BUILDTEST_CONFIG environment variable not set; " +
			"set it to the path of your buildtest.yaml config file")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth; environment variables do not
// override its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &config, nil
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Tool == "" {
		return fmt.Errorf("tool is required")
	}
	return nil
}
