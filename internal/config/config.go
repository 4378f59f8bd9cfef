// Package config provides configuration for the vmcp binary.
// Loads from: CLI flags > env vars > .vaultmcp/config.toml > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// VaultOverride is set by the global --vault flag and takes precedence
// over every other vault path source.
var VaultOverride string

// Search defaults applied when the config file does not override them.
const (
	DefaultContextLines = 2
	DefaultListLimit    = 50
	DefaultSearchLimit  = 20
	MaxLimit            = 500
)

// Config holds all vmcp configuration, loaded from TOML + env.
type Config struct {
	Vault  VaultConfig  `toml:"vault"`
	Search SearchConfig `toml:"search"`
}

// VaultConfig holds vault-related settings.
type VaultConfig struct {
	Path     string   `toml:"path"`
	SkipDirs []string `toml:"skip_dirs"`
}

// SearchConfig holds full-text search tuning.
type SearchConfig struct {
	ContextLines int `toml:"context_lines"`
	MaxResults   int `toml:"max_results"`
}

// DefaultConfig returns a Config with all built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			ContextLines: DefaultContextLines,
			MaxResults:   DefaultSearchLimit,
		},
	}
}

// LoadConfig merges all configuration sources: defaults < TOML file < env vars.
// The --vault flag is handled separately by VaultPath.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	configPath := findConfigFile()
	if configPath != "" {
		meta, err := toml.DecodeFile(configPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
		warnUnknownKeys(meta, configPath)
	}

	if v := os.Getenv("OBSIDIAN_VAULT_PATH"); v != "" {
		cfg.Vault.Path = v
	} else if v := os.Getenv("VAULT_PATH"); v != "" {
		cfg.Vault.Path = v
	}
	if v := os.Getenv("VMCP_SKIP_DIRS"); v != "" {
		for _, d := range strings.Split(v, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.Vault.SkipDirs = append(cfg.Vault.SkipDirs, d)
			}
		}
	}

	if len(cfg.Vault.SkipDirs) > 0 {
		RebuildSkipDirs(cfg.Vault.SkipDirs)
	}

	return cfg, nil
}

// VaultPath resolves the vault root: flag > env > config file. Empty
// string means no vault is configured.
func VaultPath() string {
	if VaultOverride != "" {
		return VaultOverride
	}
	if v := os.Getenv("OBSIDIAN_VAULT_PATH"); v != "" {
		return v
	}
	if v := os.Getenv("VAULT_PATH"); v != "" {
		return v
	}
	if cfg := loadConfigSafe(); cfg != nil && cfg.Vault.Path != "" {
		return cfg.Vault.Path
	}
	return ""
}

// RequireVault resolves the vault root and validates it, returning an
// error suitable for a startup-time fatal report.
func RequireVault() (string, error) {
	vp := VaultPath()
	if vp == "" {
		return "", fmt.Errorf("no vault configured — set OBSIDIAN_VAULT_PATH, pass --vault, or run 'vmcp config init'")
	}
	info, err := os.Stat(vp)
	if err != nil {
		return "", fmt.Errorf("vault path %s: %w", vp, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("vault path %s is not a directory", vp)
	}
	return vp, nil
}

// ContextLines returns the configured full-text search context window.
func ContextLines() int {
	if cfg := loadConfigSafe(); cfg != nil && cfg.Search.ContextLines > 0 {
		return cfg.Search.ContextLines
	}
	return DefaultContextLines
}

// MaxResults returns the configured default search result cap.
func MaxResults() int {
	if cfg := loadConfigSafe(); cfg != nil && cfg.Search.MaxResults > 0 {
		return cfg.Search.MaxResults
	}
	return DefaultSearchLimit
}

// findConfigFile looks for .vaultmcp/config.toml in the vault, then CWD.
func findConfigFile() string {
	if vp := resolveVaultForConfig(); vp != "" {
		p := filepath.Join(vp, ".vaultmcp", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, ".vaultmcp", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// resolveVaultForConfig resolves the vault path for config-file discovery
// without calling VaultPath, which would recurse through LoadConfig.
func resolveVaultForConfig() string {
	if VaultOverride != "" {
		return VaultOverride
	}
	if v := os.Getenv("OBSIDIAN_VAULT_PATH"); v != "" {
		return v
	}
	if v := os.Getenv("VAULT_PATH"); v != "" {
		return v
	}
	return ""
}

// ConfigFilePath returns where the config file lives for a vault.
func ConfigFilePath(vaultPath string) string {
	return filepath.Join(vaultPath, ".vaultmcp", "config.toml")
}

// GenerateConfig writes a default .vaultmcp/config.toml with comments.
func GenerateConfig(vaultPath string) error {
	configPath := ConfigFilePath(vaultPath)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var b strings.Builder
	b.WriteString("# vmcp configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Priority: CLI flags > environment variables > this file > built-in defaults\n")
	b.WriteString("# Environment variables: OBSIDIAN_VAULT_PATH, VAULT_PATH, VMCP_SKIP_DIRS\n\n")
	b.WriteString("[vault]\n")
	b.WriteString(fmt.Sprintf("path = %q\n", vaultPath))
	b.WriteString("# skip_dirs = [\"templates\", \"attachments\"]  # added to built-in exclusions\n\n")
	b.WriteString("[search]\n")
	b.WriteString(fmt.Sprintf("context_lines = %d\n", DefaultContextLines))
	b.WriteString(fmt.Sprintf("max_results = %d\n", DefaultSearchLimit))

	return os.WriteFile(configPath, []byte(b.String()), 0o600)
}

// ShowConfig returns the current effective configuration as TOML.
func ShowConfig() string {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Sprintf("# Error loading config: %v\n", err)
	}
	if cfg.Vault.Path == "" {
		cfg.Vault.Path = VaultPath()
	}
	var b strings.Builder
	b.WriteString("# Effective vmcp configuration (merged from all sources)\n\n")
	enc := toml.NewEncoder(&b)
	enc.Encode(cfg)
	return b.String()
}

// loadConfigSafe loads config without risking recursion. Returns nil on error.
func loadConfigSafe() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		return nil
	}
	return cfg
}

// ConfigWarning returns any config file parse error, or empty string if OK.
func ConfigWarning() string {
	if _, err := LoadConfig(); err != nil {
		return err.Error()
	}
	return ""
}

// configSuggestions maps common wrong keys to the correct TOML key name.
var configSuggestions = map[string]string{
	"exclude_dirs": "skip_dirs",
	"skip_paths":   "skip_dirs",
	"ignore_dirs":  "skip_dirs",
	"excludes":     "skip_dirs",
	"context":      "context_lines",
	"limit":        "max_results",
	"vault_path":   "path",
}

// warnUnknownKeys prints warnings for unrecognized config keys.
func warnUnknownKeys(meta toml.MetaData, configPath string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	fname := filepath.Base(configPath)
	for _, key := range undecoded {
		keyStr := key.String()
		lastPart := key[len(key)-1]
		if suggestion, ok := configSuggestions[lastPart]; ok {
			fmt.Fprintf(os.Stderr, "vmcp: WARNING: unknown key %q in %s — did you mean %q?\n",
				keyStr, fname, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "vmcp: WARNING: unknown key %q in %s (will be ignored)\n",
				keyStr, fname)
		}
	}
}

// defaultSkipDirs are directories excluded from vault walks. The trash
// must never show up in listings or search; .obsidian holds app state.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	".obsidian":    true,
	".trash":       true,
	".vaultmcp":    true,
	"node_modules": true,
}

// SkipDirs is the active set of directories to skip during vault walks.
var SkipDirs = buildSkipDirs()

func buildSkipDirs() map[string]bool {
	dirs := make(map[string]bool)
	for k, v := range defaultSkipDirs {
		dirs[k] = v
	}
	if extra := os.Getenv("VMCP_SKIP_DIRS"); extra != "" {
		for _, d := range strings.Split(extra, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				dirs[d] = true
			}
		}
	}
	return dirs
}

// RebuildSkipDirs merges extra directory names into the active skip set.
func RebuildSkipDirs(extra []string) {
	dirs := buildSkipDirs()
	for _, d := range extra {
		if d != "" {
			dirs[d] = true
		}
	}
	SkipDirs = dirs
}
