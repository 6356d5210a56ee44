// Package settings persists user preferences for merges as a TOML file in
// the platform config directory. Absent files and absent keys fall back to
// the built-in defaults, so a fresh installation works without any setup.
package settings

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/filemerge/filemerge/pkg/compose"
	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
	"github.com/filemerge/filemerge/pkg/textmerge"
)

// appName is the directory name under the config root.
const appName = "filemerge"

// ============================================================================
// Settings
// ============================================================================

// Settings holds all persisted user preferences.
type Settings struct {
	Image   ImageSettings   `toml:"image"`
	Text    TextSettings    `toml:"text"`
	General GeneralSettings `toml:"general"`
}

// ImageSettings are the defaults applied to image merges.
type ImageSettings struct {
	Layout        string `toml:"layout"`
	Spacing       int    `toml:"spacing"`
	ResizeMode    string `toml:"resize_mode"`
	Filter        string `toml:"filter"`
	AddWatermark  bool   `toml:"add_watermark"`
	WatermarkText string `toml:"watermark_text"`
	WatermarkFont string `toml:"watermark_font"`
}

// TextSettings are the defaults applied to text merges.
type TextSettings struct {
	Separator       string `toml:"separator"`
	LineNumbers     bool   `toml:"line_numbers"`
	Timestamps      bool   `toml:"timestamps"`
	StripWhitespace bool   `toml:"strip_whitespace"`
}

// GeneralSettings apply to both merge kinds.
type GeneralSettings struct {
	// Workers bounds merge parallelism; 0 means one per CPU.
	Workers int `toml:"workers"`

	// Cache toggles result caching.
	Cache bool `toml:"cache"`

	// CacheBackend selects the cache store, "file" or "redis".
	CacheBackend string `toml:"cache_backend"`

	// RedisAddr is the redis server address for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Image: ImageSettings{
			Layout:     string(compose.LayoutVertical),
			Spacing:    10,
			ResizeMode: string(compose.ResizeNone),
			Filter:     string(compose.FilterNone),
		},
		Text: TextSettings{
			Separator: string(textmerge.SeparatorSimple),
		},
		General: GeneralSettings{
			Cache:        true,
			CacheBackend: "file",
			RedisAddr:    "localhost:6379",
		},
	}
}

// ============================================================================
// Manager
// ============================================================================

// Manager loads and saves a settings file.
type Manager struct {
	mu   sync.RWMutex
	path string
}

// NewManager creates a manager for the given settings file.
// An empty path selects the default location under the user config
// directory.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{path: path}, nil
}

// DefaultPath returns the standard settings file location,
// $XDG_CONFIG_HOME/filemerge/settings.toml or ~/.config/filemerge/settings.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "settings.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".config", appName, "settings.toml"), nil
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the settings file. A missing file yields the defaults, and
// keys absent from the file keep their default values.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Default()
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read settings %s", m.path)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse settings %s", m.path)
	}
	return s, nil
}

// Save writes the settings file atomically, creating the config directory
// when needed.
func (m *Manager) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := toml.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}
	if err := fileops.AtomicWrite(m.path, data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write settings %s", m.path)
	}
	return nil
}

// Reset restores the built-in defaults on disk.
func (m *Manager) Reset() error {
	return m.Save(Default())
}

// ============================================================================
// Key Access
// ============================================================================

// field binds a dotted settings key to its accessor pair.
type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

var fields = map[string]field{
	"image.layout": {
		get: func(s *Settings) string { return s.Image.Layout },
		set: func(s *Settings, v string) error {
			l, err := compose.ParseLayout(v)
			if err != nil {
				return err
			}
			s.Image.Layout = string(l)
			return nil
		},
	},
	"image.spacing": {
		get: func(s *Settings) string { return strconv.Itoa(s.Image.Spacing) },
		set: func(s *Settings, v string) error {
			n, err := parseNonNegative(v)
			if err != nil {
				return err
			}
			s.Image.Spacing = n
			return nil
		},
	},
	"image.resize_mode": {
		get: func(s *Settings) string { return s.Image.ResizeMode },
		set: func(s *Settings, v string) error {
			m, err := compose.ParseResizeMode(v)
			if err != nil {
				return err
			}
			s.Image.ResizeMode = string(m)
			return nil
		},
	},
	"image.filter": {
		get: func(s *Settings) string { return s.Image.Filter },
		set: func(s *Settings, v string) error {
			f, err := compose.ParseFilter(v)
			if err != nil {
				return err
			}
			s.Image.Filter = string(f)
			return nil
		},
	},
	"image.add_watermark": {
		get: func(s *Settings) string { return strconv.FormatBool(s.Image.AddWatermark) },
		set: func(s *Settings, v string) error { return parseBool(v, &s.Image.AddWatermark) },
	},
	"image.watermark_text": {
		get: func(s *Settings) string { return s.Image.WatermarkText },
		set: func(s *Settings, v string) error {
			if err := errors.ValidateWatermarkText(v); err != nil {
				return err
			}
			s.Image.WatermarkText = v
			return nil
		},
	},
	"image.watermark_font": {
		get: func(s *Settings) string { return s.Image.WatermarkFont },
		set: func(s *Settings, v string) error {
			s.Image.WatermarkFont = v
			return nil
		},
	},
	"text.separator": {
		get: func(s *Settings) string { return s.Text.Separator },
		set: func(s *Settings, v string) error {
			sep, err := textmerge.ParseSeparator(v)
			if err != nil {
				return err
			}
			s.Text.Separator = string(sep)
			return nil
		},
	},
	"text.line_numbers": {
		get: func(s *Settings) string { return strconv.FormatBool(s.Text.LineNumbers) },
		set: func(s *Settings, v string) error { return parseBool(v, &s.Text.LineNumbers) },
	},
	"text.timestamps": {
		get: func(s *Settings) string { return strconv.FormatBool(s.Text.Timestamps) },
		set: func(s *Settings, v string) error { return parseBool(v, &s.Text.Timestamps) },
	},
	"text.strip_whitespace": {
		get: func(s *Settings) string { return strconv.FormatBool(s.Text.StripWhitespace) },
		set: func(s *Settings, v string) error { return parseBool(v, &s.Text.StripWhitespace) },
	},
	"general.workers": {
		get: func(s *Settings) string { return strconv.Itoa(s.General.Workers) },
		set: func(s *Settings, v string) error {
			n, err := parseNonNegative(v)
			if err != nil {
				return err
			}
			s.General.Workers = n
			return nil
		},
	},
	"general.cache": {
		get: func(s *Settings) string { return strconv.FormatBool(s.General.Cache) },
		set: func(s *Settings, v string) error { return parseBool(v, &s.General.Cache) },
	},
	"general.cache_backend": {
		get: func(s *Settings) string { return s.General.CacheBackend },
		set: func(s *Settings, v string) error {
			if v != "file" && v != "redis" {
				return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (file or redis)", v)
			}
			s.General.CacheBackend = v
			return nil
		},
	},
	"general.redis_addr": {
		get: func(s *Settings) string { return s.General.RedisAddr },
		set: func(s *Settings, v string) error {
			s.General.RedisAddr = v
			return nil
		},
	},
}

// Keys returns every settable key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted settings key.
func Get(s *Settings, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown settings key %q", key)
	}
	return f.get(s), nil
}

// Set parses and stores the value of a dotted settings key.
func Set(s *Settings, key, value string) error {
	f, ok := fields[key]
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown settings key %q", key)
	}
	return f.set(s, value)
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "%q is not a boolean", v)
	}
	*dst = b
	return nil
}

func parseNonNegative(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "%q is not a number", v)
	}
	if n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "%d must not be negative", n)
	}
	return n, nil
}
