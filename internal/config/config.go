package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "globe.json"

// EnvPrefix prefixes environment overrides, e.g. GLOBE_LOGLEVEL or GLOBE_WINDOW_WIDTH.
const EnvPrefix = "GLOBE"

// Window holds the initial window geometry.
type Window struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

// Globe holds the sphere geometry handed to globe.Options.
type Globe struct {
	Radius     float32 `json:"radius" mapstructure:"radius"`
	MarkerSize float32 `json:"markerSize" mapstructure:"markerSize"`
}

// Textures configures the image cache.
type Textures struct {
	Dir           string `json:"dir" mapstructure:"dir"`
	MaxSize       int    `json:"maxSize" mapstructure:"maxSize"`
	PrefetchLimit int    `json:"prefetchLimit" mapstructure:"prefetchLimit"`
}

// Prefs is the application configuration. It is passed explicitly to the parts that need it.
type Prefs struct {
	LogLevel        string   `json:"logLevel" mapstructure:"logLevel"`
	LogsDir         string   `json:"logsDir" mapstructure:"logsDir"`
	Catalog         string   `json:"catalog" mapstructure:"catalog"`
	Filter          string   `json:"filter" mapstructure:"filter"`
	ShowHoverImages bool     `json:"showHoverImages" mapstructure:"showHoverImages"`
	ShowFPS         bool     `json:"showFPS" mapstructure:"showFPS"`
	Stylesheet      string   `json:"stylesheet" mapstructure:"stylesheet"`
	Window          Window   `json:"window" mapstructure:"window"`
	Globe           Globe    `json:"globe" mapstructure:"globe"`
	Textures        Textures `json:"textures" mapstructure:"textures"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "./logs")
	v.SetDefault("catalog", "")
	v.SetDefault("filter", "LOCATION")
	v.SetDefault("showHoverImages", false)
	v.SetDefault("showFPS", false)
	v.SetDefault("stylesheet", "assets/ui/globe.css")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Portfolio")

	v.SetDefault("globe.radius", 5.0)
	v.SetDefault("globe.markerSize", 0.5)

	v.SetDefault("textures.dir", "./.cache/textures")
	v.SetDefault("textures.maxSize", 512)
	v.SetDefault("textures.prefetchLimit", 4)
}

// Default returns the built-in preferences.
func Default() Prefs {
	v := viper.New()
	setDefaults(v)
	var p Prefs
	_ = v.Unmarshal(&p)
	return p
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("globe", pflag.ContinueOnError)
	fs.String("config-dir", "config", "directory containing "+FileName)
	fs.String("log-level", "", "trace, debug, info, warn or error")
	fs.String("catalog", "", "project catalog YAML (default: built-in)")
	fs.String("filter", "", "initial layout filter")
	fs.Bool("show-hover-images", false, "show hover images in the grid")
	fs.Bool("fps", false, "show the FPS overlay")
	return fs
}

var flagKeys = map[string]string{
	"log-level":         "logLevel",
	"catalog":           "catalog",
	"filter":            "filter",
	"show-hover-images": "showHoverImages",
	"fps":               "showFPS",
}

// ConfigDir returns the --config-dir flag value, or "config" when fs is nil.
func ConfigDir(fs *pflag.FlagSet) string {
	if fs == nil {
		return "config"
	}
	dir, err := fs.GetString("config-dir")
	if err != nil || dir == "" {
		return "config"
	}
	return dir
}

// Load reads configDir/globe.json over the defaults, then applies GLOBE_* environment
// variables and any flags set in fs (which may be nil). A missing file is not an error.
func Load(configDir string, fs *pflag.FlagSet) (Prefs, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Prefs{}, fmt.Errorf("config: bind %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Prefs{}, fmt.Errorf("config: reading %s: %w", FileName, err)
		}
	}

	var p Prefs
	if err := v.Unmarshal(&p); err != nil {
		return Prefs{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// Save writes p to configDir/globe.json, creating the directory if needed.
func Save(configDir string, p Prefs) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, FileName), data, 0644)
}
