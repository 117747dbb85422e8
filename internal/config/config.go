package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseDir string `yaml:"base_dir"`
	Debug   bool   `yaml:"debug"`

	DefaultURL string `yaml:"default_url" validate:"omitempty,url"`
	Limit      int    `yaml:"limit" validate:"gte=0"`
	Range      string `yaml:"range"`
	List       string `yaml:"list"`

	Format      string `yaml:"format" validate:"oneof=mobi azw3 epub"`
	Converter   string `yaml:"converter"`
	SkipPackage bool   `yaml:"skip_package"`

	Browser    bool          `yaml:"browser"`
	Cloudflare bool          `yaml:"cloudflare"`
	Retries    int           `yaml:"retries" validate:"gte=1,lte=10"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`

	// Output overrides the title-derived folder for a single run.
	Output string `yaml:"-"`
}

// Options carries CLI values; zero values leave the profile untouched.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	BaseDir      string
	Output       string
	URL          string
	Limit        int
	Range        string
	List         string
	Format       string
	Converter    string
	SkipPackage  bool
	Browser      bool
	Cloudflare   bool
	Retries      int
	Timeout      time.Duration
	Cookie       string
	CookieFile   string
	UserAgent    string
}

func DefaultConfig() *Config {
	return &Config{
		BaseDir:   ".",
		Format:    "mobi",
		Converter: "ebook-convert",
		Retries:   3,
		Timeout:   30 * time.Second,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged layers defaults, the active profile and opts, in that order.
// The string result describes where the profile came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `noveld config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.BaseDir != "" {
		c.BaseDir = o.BaseDir
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.URL != "" {
		c.DefaultURL = o.URL
	}
	if o.Limit != 0 {
		c.Limit = o.Limit
	}
	if o.Range != "" {
		c.Range = o.Range
	}
	if o.List != "" {
		c.List = o.List
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Converter != "" {
		c.Converter = o.Converter
	}
	if o.SkipPackage {
		c.SkipPackage = true
	}
	if o.Browser {
		c.Browser = true
	}
	if o.Cloudflare {
		c.Cloudflare = true
	}
	if o.Retries != 0 {
		c.Retries = o.Retries
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

func normalizeDefaults(c *Config) {
	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	c.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Format), "."))
	if c.Format == "" {
		c.Format = "mobi"
	}
	if c.Converter == "" {
		c.Converter = "ebook-convert"
	}
	if c.Retries == 0 {
		c.Retries = 3
	}
}

var validate = validator.New()

// Validate checks value ranges. The listing URL itself is checked when a
// run starts, since it may come from the command line.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func (c *Config) Print(w io.Writer) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p(" -base_dir: %s\n", c.BaseDir)
	if c.Output != "" {
		p(" -output: %s\n", c.Output)
	}
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
	if c.DefaultURL != "" {
		p(" -url: %s\n", c.DefaultURL)
	}
	if c.Limit > 0 {
		p(" -limit: %d\n", c.Limit)
	}
	if c.Range != "" {
		p(" -range: %s\n", c.Range)
	}
	if c.List != "" {
		p(" -list: %s\n", c.List)
	}
	p(" -format: %s\n", c.Format)
	p(" -converter: %s\n", c.Converter)
	if c.SkipPackage {
		p(" -skip_package: %t\n", c.SkipPackage)
	}
	if c.Browser {
		p(" -browser: %t\n", c.Browser)
	}
	if c.Cloudflare {
		p(" -cloudflare: %t\n", c.Cloudflare)
	}
	p(" -retries: %d\n", c.Retries)
	p(" -timeout: %s\n", c.Timeout)
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		p(" -user_agent: %s\n", c.UserAgent)
	}
}
