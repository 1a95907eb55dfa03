// Package config loads the optional .gcweave.yml from the project root.
// Loading is best-effort: a missing or invalid file yields defaults, since
// a build must never fail over wrapper configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project root.
const FileName = ".gcweave.yml"

// DefaultCompiler is invoked when the config names none.
const DefaultCompiler = "clang++"

// Config holds user-overridable wrapper settings.
type Config struct {
	// Compiler is the real compiler executed after patching.
	Compiler string `yaml:"compiler"`

	// ProjectRoot overrides the instrumentation boundary.
	// Default: the parent of the build working directory.
	ProjectRoot string `yaml:"project_root"`

	// Verbose enables debug logging. GCWEAVE_VERBOSE=1 does the same.
	Verbose bool `yaml:"verbose"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig holds generation-cache settings. The cache is off by default:
// a plain invocation carries no state across builds.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{Compiler: DefaultCompiler}
}

// Load reads .gcweave.yml from the given directory.
// Returns defaults if the file doesn't exist or fails to parse.
func Load(dir string) *Config {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return cfg // file not found or unreadable — use defaults
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default() // invalid YAML — use defaults
	}
	if cfg.Compiler == "" {
		cfg.Compiler = DefaultCompiler
	}
	return cfg
}

// Resolve loads the configuration governing a build directory. The file is
// looked up in the default project root (the parent of buildDir) first;
// when that file overrides project_root, a config file at the override
// location takes precedence, so settings live with the effective root.
func Resolve(buildDir string) *Config {
	cfg := Load(filepath.Dir(filepath.Clean(buildDir)))
	if cfg.ProjectRoot == "" {
		return cfg
	}
	if _, err := os.Stat(filepath.Join(cfg.ProjectRoot, FileName)); err != nil {
		return cfg
	}
	over := Load(cfg.ProjectRoot)
	if over.ProjectRoot == "" {
		over.ProjectRoot = cfg.ProjectRoot
	}
	return over
}

// EffectiveProjectRoot returns the configured project root, or the parent
// of the build working directory if not set.
func (c *Config) EffectiveProjectRoot(buildDir string) string {
	if c.ProjectRoot != "" {
		return filepath.Clean(c.ProjectRoot)
	}
	return filepath.Dir(filepath.Clean(buildDir))
}

// EffectiveCachePath returns the configured cache path, or the default
// location inside the build working directory.
func (c *Config) EffectiveCachePath(buildDir string) string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(buildDir, ".gcweave.db")
}

// EffectiveVerbose reports whether debug logging is on, honoring the
// GCWEAVE_VERBOSE environment toggle.
func (c *Config) EffectiveVerbose() bool {
	return c.Verbose || os.Getenv("GCWEAVE_VERBOSE") == "1"
}
