package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBracketTag = "clientinfo"
	DefaultListen     = "127.0.0.1:8080"
	DefaultRefresh    = "*/5 * * * *"
	DefaultCacheDir   = "./var/ics-cache"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the preview server.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// PreviewConfig controls the headless PNG capture of rendered documents.
type PreviewConfig struct {
	Width      int `yaml:"width" json:"width"`
	Height     int `yaml:"height" json:"height"`
	TimeoutSec int `yaml:"timeout_sec" json:"timeout_sec"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone applied to floating DTSTART/DTEND values
	// (no TZID, no trailing Z). Empty means the host's local zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// BracketTag is the tag of the event whose start/end define the
	// day1..dayN range.
	BracketTag string `yaml:"bracket_tag" json:"bracket_tag"`

	// TemplateDir holds <template>.<lang>.html files.
	TemplateDir string `yaml:"template_dir" json:"template_dir"`

	// OutputDir receives <calendar-name>.html.
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// CacheDir stores ETag/Last-Modified metadata for calendars fetched over HTTP.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Listen is the address of the preview server (-serve).
	Listen string `yaml:"listen" json:"listen"`

	// Refresh is the cron schedule used by -watch.
	Refresh string `yaml:"refresh" json:"refresh"`

	Preview PreviewConfig `yaml:"preview" json:"preview"`

	// BasicAuth, if non-nil, protects every endpoint except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:    "",
		BracketTag:  DefaultBracketTag,
		TemplateDir: ".",
		OutputDir:   ".",
		CacheDir:    DefaultCacheDir,
		LogLevel:    "info",
		Listen:      DefaultListen,
		Refresh:     DefaultRefresh,
		Preview: PreviewConfig{
			Width:      1240,
			Height:     1754,
			TimeoutSec: 30,
		},
	}
}

// Normalize fills in missing/zero values so partially-filled files still work.
func (c *Config) Normalize() {
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.BracketTag = strings.TrimSpace(c.BracketTag)
	if c.BracketTag == "" {
		c.BracketTag = DefaultBracketTag
	}
	if c.TemplateDir == "" {
		c.TemplateDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "info"
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Refresh == "" {
		c.Refresh = DefaultRefresh
	}
	if c.Preview.Width <= 0 {
		c.Preview.Width = 1240
	}
	if c.Preview.Height <= 0 {
		c.Preview.Height = 1754
	}
	if c.Preview.TimeoutSec <= 0 {
		c.Preview.TimeoutSec = 30
	}
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If path is empty: return defaults without touching the filesystem.
//   - If the file does not exist:
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// envOverrides maps HELLOCAL_* variables onto config fields.
var envOverrides = []struct {
	key   string
	apply func(c *Config, v string)
}{
	{"HELLOCAL_TIMEZONE", func(c *Config, v string) { c.Timezone = v }},
	{"HELLOCAL_BRACKET_TAG", func(c *Config, v string) { c.BracketTag = v }},
	{"HELLOCAL_TEMPLATE_DIR", func(c *Config, v string) { c.TemplateDir = v }},
	{"HELLOCAL_OUTPUT_DIR", func(c *Config, v string) { c.OutputDir = v }},
	{"HELLOCAL_CACHE_DIR", func(c *Config, v string) { c.CacheDir = v }},
	{"HELLOCAL_LOG_LEVEL", func(c *Config, v string) { c.LogLevel = v }},
	{"HELLOCAL_LISTEN", func(c *Config, v string) { c.Listen = v }},
	{"HELLOCAL_REFRESH", func(c *Config, v string) { c.Refresh = v }},
}

// ApplyEnv loads envFiles (default ".env") when present and applies any
// HELLOCAL_* variables on top of c. A missing env file is not an error.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	for _, o := range envOverrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			o.apply(c, v)
		}
	}
	c.Normalize()
	return nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".hellocal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method that delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
