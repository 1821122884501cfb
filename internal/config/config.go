package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level pkginfo configuration.
type Config struct {
	MarkerFile string   `mapstructure:"marker_file"`
	Extensions []string `mapstructure:"extensions"`
	Output     Output   `mapstructure:"output"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default locations)
// and returns a Config with all defaults applied. Without an explicit path
// it looks for .pkginfo.yaml in the working directory, then config.yaml in
// DefaultConfigDir. Environment variables prefixed with EnvPrefix override
// file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("marker_file", DefaultMarkerFile)
	v.SetDefault("extensions", DefaultExtensions)
	v.SetDefault("output.color", DefaultOutput.Color)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else if path := findDefaultConfig(); path != "" {
		v.SetConfigFile(path)
	}

	// Missing config file is not an error.
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.MarkerFile == "" {
		cfg.MarkerFile = DefaultMarkerFile
	}
	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}

	return &cfg, nil
}

// findDefaultConfig returns the first existing default config file: the
// working directory wins over the user config directory.
func findDefaultConfig() string {
	candidates := []string{
		DefaultConfigName + ".yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// NormalizeExtensions trims and dot-prefixes each extension,
// dropping blanks and duplicates while keeping the first-seen order.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	var out []string
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
