package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"darkarchiver/internal/errors"

	"gopkg.in/yaml.v3"
)

// Error policies for batch operations.
const (
	PolicyAbort    = "abort"
	PolicySkip     = "skip"
	PolicyContinue = "continue"
)

// Collision strategies when a transfer destination already exists.
const (
	CollisionOverwrite = "overwrite"
	CollisionSkip      = "skip"
	CollisionRename    = "rename"
)

// Search modes.
const (
	SearchSubstring = "substring"
	SearchGlob      = "glob"
	SearchFuzzy     = "fuzzy"
)

// Config represents the application configuration structure.
// Nothing about the file list itself is stored here; it only tunes behaviour.
type Config struct {
	Window struct {
		Width     float32 `yaml:"width"`      // Initial window width
		Height    float32 `yaml:"height"`     // Initial window height
		MinWidth  float32 `yaml:"min_width"`  // Smallest usable width
		MinHeight float32 `yaml:"min_height"` // Smallest usable height
	} `yaml:"window"`
	Preview struct {
		Show      bool          `yaml:"show"`       // Preview panel visible at start
		MaxWidth  int           `yaml:"max_width"`  // Thumbnail bound in pixels
		MaxHeight int           `yaml:"max_height"` // Thumbnail bound in pixels
		CacheTTL  time.Duration `yaml:"cache_ttl"`  // How long decoded thumbnails are kept
	} `yaml:"preview"`
	Status struct {
		ResetAfter time.Duration `yaml:"reset_after"` // Delay before the status bar returns to "Ready"
	} `yaml:"status"`
	Add struct {
		ErrorPolicy string `yaml:"error_policy"` // abort or skip
	} `yaml:"add"`
	Transfer struct {
		ErrorPolicy string `yaml:"error_policy"` // abort or continue
		Collision   string `yaml:"collision"`    // overwrite, skip or rename
	} `yaml:"transfer"`
	Search struct {
		Mode string `yaml:"mode"` // substring, glob or fuzzy
	} `yaml:"search"`
	Watch struct {
		Enabled bool `yaml:"enabled"` // Report registered files removed from disk
	} `yaml:"watch"`
	Theme Theme `yaml:"theme"`
	Log   struct {
		Debug bool   `yaml:"debug"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Theme holds the colour palette as #RRGGBB strings.
type Theme struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Accent     string `yaml:"accent"`
	Button     string `yaml:"button"`
	Hover      string `yaml:"hover"`
	Selected   string `yaml:"selected"`
	Error      string `yaml:"error"`
	Success    string `yaml:"success"`
	Warning    string `yaml:"warning"`
	Info       string `yaml:"info"`
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultPath returns ~/.config/darkarchiver/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("cannot locate config directory", "", errors.ConfigNotFound, err)
	}
	return filepath.Join(home, ".config", "darkarchiver", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decoding onto the defaults keeps every field the file leaves out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = 800
	cfg.Window.Height = 600
	cfg.Window.MinWidth = 600
	cfg.Window.MinHeight = 400

	cfg.Preview.Show = true
	cfg.Preview.MaxWidth = 200
	cfg.Preview.MaxHeight = 200
	cfg.Preview.CacheTTL = 5 * time.Minute

	cfg.Status.ResetAfter = 3 * time.Second

	cfg.Add.ErrorPolicy = PolicyAbort
	cfg.Transfer.ErrorPolicy = PolicyAbort
	cfg.Transfer.Collision = CollisionOverwrite

	cfg.Search.Mode = SearchSubstring

	cfg.Watch.Enabled = false

	cfg.Theme = DefaultTheme()

	return cfg
}

// DefaultTheme is the dark emerald palette.
func DefaultTheme() Theme {
	return Theme{
		Background: "#0A1F1C",
		Foreground: "#00FF9D",
		Accent:     "#FFE162",
		Button:     "#0C2925",
		Hover:      "#133B36",
		Selected:   "#1A4D47",
		Error:      "#FF4444",
		Success:    "#44FF44",
		Warning:    "#FFB302",
		Info:       "#3498DB",
	}
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	invalid := func(param, format string, args ...interface{}) error {
		return errors.NewConfigError(fmt.Sprintf(format, args...), param, errors.InvalidConfig, nil)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "window size must be positive")
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		return invalid("window", "minimum window size must be >= 0")
	}

	if c.Preview.MaxWidth < 1 || c.Preview.MaxHeight < 1 {
		return invalid("preview", "thumbnail bound must be >= 1 pixel")
	}
	if c.Preview.CacheTTL < 0 {
		return invalid("preview.cache_ttl", "cache ttl must be >= 0")
	}

	if c.Status.ResetAfter <= 0 {
		return invalid("status.reset_after", "status reset delay must be positive")
	}

	switch c.Add.ErrorPolicy {
	case PolicyAbort, PolicySkip:
	default:
		return invalid("add.error_policy", "invalid add error policy %q", c.Add.ErrorPolicy)
	}

	switch c.Transfer.ErrorPolicy {
	case PolicyAbort, PolicyContinue:
	default:
		return invalid("transfer.error_policy", "invalid transfer error policy %q", c.Transfer.ErrorPolicy)
	}

	switch c.Transfer.Collision {
	case CollisionOverwrite, CollisionSkip, CollisionRename:
	default:
		return invalid("transfer.collision", "invalid collision setting %q", c.Transfer.Collision)
	}

	switch c.Search.Mode {
	case SearchSubstring, SearchGlob, SearchFuzzy:
	default:
		return invalid("search.mode", "invalid search mode %q", c.Search.Mode)
	}

	for name, value := range c.Theme.colors() {
		if !hexColor.MatchString(value) {
			return invalid("theme."+name, "colour must look like #RRGGBB, got %q", value)
		}
	}

	return nil
}

func (t Theme) colors() map[string]string {
	return map[string]string{
		"background": t.Background,
		"foreground": t.Foreground,
		"accent":     t.Accent,
		"button":     t.Button,
		"hover":      t.Hover,
		"selected":   t.Selected,
		"error":      t.Error,
		"success":    t.Success,
		"warning":    t.Warning,
		"info":       t.Info,
	}
}

// NewTestConfig creates a configuration instance for testing purposes.
// The status delay is short so tests can observe the reset.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Status.ResetAfter = 50 * time.Millisecond
	cfg.Preview.CacheTTL = time.Minute
	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}
