package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const repoConfigName = ".stacktrain_config"

// WaitConfig tunes polling for a pull request to catch up with a push.
type WaitConfig struct {
	MaxAttempts        *int `json:"maxAttempts,omitempty" yaml:"maxAttempts,omitempty"`
	MaxIntervalSeconds *int `json:"maxIntervalSeconds,omitempty" yaml:"maxIntervalSeconds,omitempty"`
}

// RepoConfig represents the repository configuration. Unset fields fall
// back to user config and then to built-in defaults; an explicitly empty
// mergedRevset disables merged exclusion.
type RepoConfig struct {
	Trunk             *string     `json:"trunk,omitempty" yaml:"trunk,omitempty"`
	StackRevset       *string     `json:"stackRevset,omitempty" yaml:"stackRevset,omitempty"`
	MergedRevset      *string     `json:"mergedRevset,omitempty" yaml:"mergedRevset,omitempty"`
	MergedTitlePrefix *string     `json:"mergedTitlePrefix,omitempty" yaml:"mergedTitlePrefix,omitempty"`
	Wait              *WaitConfig `json:"wait,omitempty" yaml:"wait,omitempty"`
}

// RepoConfigPath returns the location of the repository config file.
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", repoConfigName)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(RepoConfigPath(repoRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SaveRepoConfig writes the repository configuration
func SaveRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(RepoConfigPath(repoRoot), configJSON, 0600)
}

// Keys lists the settings accepted by SetRepoValue.
var Keys = []string{
	"trunk",
	"stackRevset",
	"mergedRevset",
	"mergedTitlePrefix",
	"wait.maxAttempts",
	"wait.maxIntervalSeconds",
}

// SetRepoValue updates a single key in the repository configuration
func SetRepoValue(repoRoot, key, value string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return err
	}

	switch key {
	case "trunk":
		if value == "" {
			return fmt.Errorf("trunk cannot be empty")
		}
		config.Trunk = &value
	case "stackRevset":
		if value == "" {
			return fmt.Errorf("stackRevset cannot be empty")
		}
		config.StackRevset = &value
	case "mergedRevset":
		config.MergedRevset = &value
	case "mergedTitlePrefix":
		config.MergedTitlePrefix = &value
	case "wait.maxAttempts", "wait.maxIntervalSeconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		if config.Wait == nil {
			config.Wait = &WaitConfig{}
		}
		if key == "wait.maxAttempts" {
			config.Wait.MaxAttempts = &n
		} else {
			config.Wait.MaxIntervalSeconds = &n
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	return SaveRepoConfig(repoRoot, config)
}
