// Package config manages stacktrain configuration.
//
// It handles:
//   - Repository-specific configuration in .git/.stacktrain_config (JSON)
//   - User defaults in ~/.config/stacktrain/config.yaml (YAML)
//   - Merging both over built-in defaults into a resolved Config
package config
