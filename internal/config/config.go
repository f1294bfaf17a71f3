// Package config loads benchmark settings from a config file, the
// environment and command-line flags.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/njchilds90/go-treesearch/internal/generate"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. TREESEARCH_DEPTH.
const EnvPrefix = "TREESEARCH"

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "~/.treesearch.yaml"

// Keys understood in config files and environment variables.
const (
	KeyLetters        = "letters"
	KeyDepth          = "depth"
	KeyChildren       = "children"
	KeyIterations     = "iterations"
	KeySeed           = "seed"
	KeySampleInterval = "sample_interval"
	KeyOutput         = "output"
	KeyTreePath       = "tree_path"
)

// Config holds the benchmark settings.
type Config struct {
	Letters        int           `mapstructure:"letters" yaml:"letters"`
	Depth          int           `mapstructure:"depth" yaml:"depth"`
	Children       int           `mapstructure:"children" yaml:"children"`
	Iterations     int           `mapstructure:"iterations" yaml:"iterations"`
	Seed           int64         `mapstructure:"seed" yaml:"seed"`
	SampleInterval time.Duration `mapstructure:"sample_interval" yaml:"sample_interval"`
	// Output is the spreadsheet report path.
	Output string `mapstructure:"output" yaml:"output"`
	// TreePath, when set, receives the JSON of every generated tree.
	TreePath string `mapstructure:"tree_path" yaml:"tree_path"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLetters, 5)
	v.SetDefault(KeyDepth, 5)
	v.SetDefault(KeyChildren, 5)
	v.SetDefault(KeyIterations, 3)
	v.SetDefault(KeySeed, 1)
	v.SetDefault(KeySampleInterval, 100*time.Millisecond)
	v.SetDefault(KeyOutput, "treesearch-report.xlsx")
	v.SetDefault(KeyTreePath, "")
}

// NewViper returns a viper instance with defaults and environment
// binding. If cfgFile is empty DefaultFile is read when it exists; an
// explicitly named file must exist.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := cfgFile != ""
	if !explicit {
		cfgFile = DefaultFile
	}
	path, err := homedir.Expand(cfgFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve config file %s", cfgFile)
	}
	if !explicit {
		if _, err := os.Stat(path); err != nil {
			return v, nil
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the settings describe a runnable benchmark.
func (c *Config) Validate() error {
	if c.Letters < 1 || c.Letters > generate.MaxLetters {
		return errors.Errorf("letters must be between 1 and %d, got %d", generate.MaxLetters, c.Letters)
	}
	if c.Depth < 0 {
		return errors.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.Children < 0 {
		return errors.Errorf("children must not be negative, got %d", c.Children)
	}
	if c.Iterations < 1 {
		return errors.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.SampleInterval <= 0 {
		return errors.Errorf("sample interval must be positive, got %s", c.SampleInterval)
	}
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}
