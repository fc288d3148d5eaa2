package config

import (
	"time"

	"stacktrain.dev/stacktrain/internal/train"
)

// Built-in defaults.
const (
	DefaultTrunk           = "main"
	DefaultStackRevset     = "draft()"
	DefaultMergedRevset    = "green"
	DefaultWaitMaxAttempts = 20
	DefaultWaitMaxInterval = 30 * time.Second
)

// Config is the resolved configuration for one repository.
type Config struct {
	Trunk             string
	StackRevset       string
	MergedRevset      string
	MergedTitlePrefix string
	WaitMaxAttempts   int
	WaitMaxInterval   time.Duration
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Trunk:             DefaultTrunk,
		StackRevset:       DefaultStackRevset,
		MergedRevset:      DefaultMergedRevset,
		MergedTitlePrefix: train.DefaultMergedTitlePrefix,
		WaitMaxAttempts:   DefaultWaitMaxAttempts,
		WaitMaxInterval:   DefaultWaitMaxInterval,
	}
}

// Load resolves configuration for repoRoot: built-in defaults, overridden
// by user config, overridden by repository config.
func Load(repoRoot string) (*Config, error) {
	user, err := GetUserConfig()
	if err != nil {
		return nil, err
	}
	repo, err := GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.apply(user)
	cfg.apply(repo)
	return cfg, nil
}

func (c *Config) apply(rc *RepoConfig) {
	if rc == nil {
		return
	}
	if rc.Trunk != nil && *rc.Trunk != "" {
		c.Trunk = *rc.Trunk
	}
	if rc.StackRevset != nil && *rc.StackRevset != "" {
		c.StackRevset = *rc.StackRevset
	}
	if rc.MergedRevset != nil {
		c.MergedRevset = *rc.MergedRevset
	}
	if rc.MergedTitlePrefix != nil && *rc.MergedTitlePrefix != "" {
		c.MergedTitlePrefix = *rc.MergedTitlePrefix
	}
	if rc.Wait != nil {
		if rc.Wait.MaxAttempts != nil && *rc.Wait.MaxAttempts > 0 {
			c.WaitMaxAttempts = *rc.Wait.MaxAttempts
		}
		if rc.Wait.MaxIntervalSeconds != nil && *rc.Wait.MaxIntervalSeconds > 0 {
			c.WaitMaxInterval = time.Duration(*rc.Wait.MaxIntervalSeconds) * time.Second
		}
	}
}

// TrainOptions returns the options the train core runs with.
func (c *Config) TrainOptions() train.Options {
	return train.Options{
		Trunk:             c.Trunk,
		StackRevset:       c.StackRevset,
		MergedRevset:      c.MergedRevset,
		MergedTitlePrefix: c.MergedTitlePrefix,
	}
}
