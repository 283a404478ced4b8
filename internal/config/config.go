package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wheelpage/internal/eventbus"
	"wheelpage/internal/pager"
)

// FileName is the config file looked up in the working directory
const FileName = ".wheelpage.toml"

// EnvPrefix prefixes environment overrides, e.g. WHEELPAGE_PAGER_MOMENTUM
const EnvPrefix = "WHEELPAGE"

// ErrInvalidConfig is returned when a setting is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version    int           `toml:"version" mapstructure:"version"`
	Content    string        `toml:"content" mapstructure:"content"`
	Pager      PagerSettings `toml:"pager" mapstructure:"pager"`
	UISettings UISettings    `toml:"ui" mapstructure:"ui"`
	Log        LogSettings   `toml:"log" mapstructure:"log"`
}

// PagerSettings mirrors pager.Options minus the page count, which comes
// from the deck
type PagerSettings struct {
	PageHeight        float64 `toml:"page_height" mapstructure:"page_height"`
	DeltaField        string  `toml:"delta_field" mapstructure:"delta_field"`
	StopAtPage        bool    `toml:"stop_at_page" mapstructure:"stop_at_page"`
	Momentum          bool    `toml:"momentum" mapstructure:"momentum"`
	EaseBack          bool    `toml:"ease_back" mapstructure:"ease_back"`
	ScrollStopDelayMs int     `toml:"scroll_stop_delay_ms" mapstructure:"scroll_stop_delay_ms"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	WheelStep    float64 `toml:"wheel_step" mapstructure:"wheel_step"`       // delta units per wheel notch
	InvertWheel  bool    `toml:"invert_wheel" mapstructure:"invert_wheel"`   // natural scrolling
	ShowProgress bool    `toml:"show_progress" mapstructure:"show_progress"` // travel gauge in the status bar
}

// LogSettings controls the log file
type LogSettings struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Pager: PagerSettings{
			PageHeight:        15,
			DeltaField:        pager.DefaultDeltaField,
			StopAtPage:        true,
			Momentum:          true,
			EaseBack:          true,
			ScrollStopDelayMs: 150,
		},
		UISettings: UISettings{
			WheelStep:    3,
			ShowProgress: true,
		},
		Log: LogSettings{
			File:  "wheelpage.log",
			Level: "info",
		},
	}
}

// deltaFields are the fields the UI fills in on wheel events
var deltaFields = map[string]bool{"deltaY": true, "deltaX": true}

// Validate checks every setting that has a range
func (c *Config) Validate() error {
	if c.Pager.PageHeight <= 0 {
		return fmt.Errorf("%w: pager.page_height must be positive, got %v", ErrInvalidConfig, c.Pager.PageHeight)
	}
	if c.Pager.ScrollStopDelayMs <= 0 {
		return fmt.Errorf("%w: pager.scroll_stop_delay_ms must be positive, got %d", ErrInvalidConfig, c.Pager.ScrollStopDelayMs)
	}
	if !deltaFields[c.Pager.DeltaField] {
		return fmt.Errorf("%w: pager.delta_field %q is not one of deltaY, deltaX", ErrInvalidConfig, c.Pager.DeltaField)
	}
	if c.UISettings.WheelStep <= 0 {
		return fmt.Errorf("%w: ui.wheel_step must be positive, got %v", ErrInvalidConfig, c.UISettings.WheelStep)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// PagerOptions converts the pager settings into controller options for a
// deck of totalPages pages. Callbacks are left for the caller.
func (c *Config) PagerOptions(totalPages int) (pager.Options, error) {
	if err := c.Validate(); err != nil {
		return pager.Options{}, err
	}
	return pager.Options{
		TotalPages:      totalPages,
		PageHeight:      c.Pager.PageHeight,
		DeltaField:      c.Pager.DeltaField,
		StopAtPage:      c.Pager.StopAtPage,
		Momentum:        c.Pager.Momentum,
		EaseBack:        c.Pager.EaseBack,
		ScrollStopDelay: time.Duration(c.Pager.ScrollStopDelayMs) * time.Millisecond,
	}, nil
}

// ConfigService handles configuration management
type ConfigService interface {
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	UpdateFile(path string, mutate func(*Config)) error
}

// configService is the concrete implementation
type configService struct {
	bus   eventbus.EventBus
	flags *pflag.FlagSet

	// mu serializes writes to the config file
	mu sync.Mutex
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// NewConfigServiceWithBus creates a config service that publishes load/save
// events and lets command line flags override file values. Either argument
// may be nil.
func NewConfigServiceWithBus(bus eventbus.EventBus, flags *pflag.FlagSet) ConfigService {
	return &configService{bus: bus, flags: flags}
}

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"content":   "content",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// knownKeys lists every key DefaultConfig sets, flattened
func knownKeys() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"version":                    d.Version,
		"content":                    d.Content,
		"pager.page_height":          d.Pager.PageHeight,
		"pager.delta_field":          d.Pager.DeltaField,
		"pager.stop_at_page":         d.Pager.StopAtPage,
		"pager.momentum":             d.Pager.Momentum,
		"pager.ease_back":            d.Pager.EaseBack,
		"pager.scroll_stop_delay_ms": d.Pager.ScrollStopDelayMs,
		"ui.wheel_step":              d.UISettings.WheelStep,
		"ui.invert_wheel":            d.UISettings.InvertWheel,
		"ui.show_progress":           d.UISettings.ShowProgress,
		"log.file":                   d.Log.File,
		"log.level":                  d.Log.Level,
	}
}

// LoadFromPath loads configuration layered as defaults < file < .env and
// environment < flags. A missing file is not an error.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	// .env next to the config file; existing environment wins
	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	v := viper.New()
	known := knownKeys()
	for key, value := range known {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cs.flags != nil {
		for flag, key := range flagKeys {
			if f := cs.flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	for _, key := range v.AllKeys() {
		if _, ok := known[key]; !ok {
			log.WithField("key", key).Debug("ignoring unknown config key")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.writeFile(path, data)
}

// writeFile writes data to path; callers hold mu
func (cs *configService) writeFile(path string, data []byte) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// UpdateFile applies mutate to the file contents alone, so environment and
// flag overrides are never written back. Keys the config does not know are
// kept. A missing file starts from the defaults. Concurrent updates are
// applied one at a time.
func (cs *configService) UpdateFile(path string, mutate func(*Config)) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cfg := DefaultConfig()
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}

	mutate(cfg)

	known, err := toTable(cfg)
	if err != nil {
		return err
	}
	out, err := toml.Marshal(mergeTables(raw, known))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return cs.writeFile(path, out)
}

// toTable converts cfg into the generic form toml.Unmarshal produces
func toTable(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	table := map[string]any{}
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to convert config: %w", err)
	}
	return table, nil
}

// mergeTables copies src over dst, descending into tables both sides have
func mergeTables(dst, src map[string]any) map[string]any {
	for key, value := range src {
		if sub, ok := value.(map[string]any); ok {
			if existing, ok := dst[key].(map[string]any); ok {
				dst[key] = mergeTables(existing, sub)
				continue
			}
		}
		dst[key] = value
	}
	return dst
}

// ToggleSaver persists runtime pager toggles. Change events may be handled
// out of order; one older than the last saved is dropped.
type ToggleSaver struct {
	svc  ConfigService
	path string

	mu      sync.Mutex
	lastSeq uint64
}

// NewToggleSaver creates a saver writing to path through svc
func NewToggleSaver(svc ConfigService, path string) *ToggleSaver {
	return &ToggleSaver{svc: svc, path: path}
}

// Save writes the toggles carried by event unless a newer change has
// already been saved. It reports whether the file was written.
func (s *ToggleSaver) Save(event eventbus.ConfigChangedEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Seq <= s.lastSeq {
		log.WithFields(log.Fields{"seq": event.Seq, "saved": s.lastSeq}).Debug("dropping stale config change")
		return false, nil
	}
	s.lastSeq = event.Seq

	err := s.svc.UpdateFile(s.path, func(c *Config) {
		c.Pager.StopAtPage = event.StopAtPage
		c.Pager.Momentum = event.Momentum
		c.Pager.EaseBack = event.EaseBack
	})
	return err == nil, err
}
