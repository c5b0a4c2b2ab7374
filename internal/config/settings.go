package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kostyay/basementhq/internal/model"
)

// EnvPrefix prefixes environment overrides for process settings,
// e.g. BASEMENTHQ_LISTEN or BASEMENTHQ_LOG_LEVEL.
const EnvPrefix = "BASEMENTHQ"

// SettingsFileName is the optional viper settings file inside the data dir.
const SettingsFileName = "settings.yaml"

// Settings holds process-level options. Unlike Store entries these are not
// editable from the dashboard; they take effect at startup.
type Settings struct {
	DataDir           string        `mapstructure:"data_dir"`
	Listen            string        `mapstructure:"listen"`
	PreserveBlank     bool          `mapstructure:"preserve_blank"` // Skip blank fields in batch saves
	FastInterval      time.Duration `mapstructure:"fast_interval"`
	ContainerInterval time.Duration `mapstructure:"container_interval"`
	Log               LogSettings   `mapstructure:"log"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// DefaultDataDir returns the directory holding the store, assets and logs.
func DefaultDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".basementhq"
	}
	return filepath.Join(configDir, "basementhq")
}

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:           DefaultDataDir(),
		Listen:            "127.0.0.1:8501",
		PreserveBlank:     true,
		FastInterval:      model.FastInterval,
		ContainerInterval: model.ContainerInterval,
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("preserve_blank", d.PreserveBlank)
	v.SetDefault("fast_interval", d.FastInterval)
	v.SetDefault("container_interval", d.ContainerInterval)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// LoadSettings resolves settings from, in increasing precedence, defaults,
// <data_dir>/settings.yaml, BASEMENTHQ_* environment variables and any flags
// already bound to v.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(v.GetString("data_dir"), SettingsFileName))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if s.FastInterval <= 0 {
		s.FastInterval = model.FastInterval
	}
	if s.ContainerInterval <= 0 {
		s.ContainerInterval = model.ContainerInterval
	}
	return &s, nil
}

// StorePath returns the dashboard store file location.
func (s *Settings) StorePath() string {
	return filepath.Join(s.DataDir, StoreFileName)
}

// AssetDir returns the directory holding uploaded assets.
func (s *Settings) AssetDir() string {
	return filepath.Join(s.DataDir, "assets")
}

// LogPath returns the log file used while the terminal board owns stdout.
func (s *Settings) LogPath() string {
	return filepath.Join(s.DataDir, "basementhq.log")
}

// IntervalFor returns the poll interval for a source.
func (s *Settings) IntervalFor(id model.SourceID) time.Duration {
	if id == model.SourceContainers {
		return s.ContainerInterval
	}
	return s.FastInterval
}
