// Package config implements the Configuration value object:
// path grammar, roots, working directory, name-normalization chains,
// block/cache sizing, attribute views, supported features, and the
// watch-service polling interval. It has no file-time-source field. Load
// reads a YAML document; LoadWithEnvOverlay first loads an optional .env
// file into the process environment, and those variables are not read
// into the Configuration.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zerofs-dev/zerofs/name"
)

// PathTypeName selects a path grammar by name in the YAML document.
type PathTypeName string

const (
	Unix    PathTypeName = "unix"
	Windows PathTypeName = "windows"
)

// Feature names a gate-able capability.
type Feature string

const (
	FeatureLinks                 Feature = "LINKS"
	FeatureSymbolicLinks         Feature = "SYMBOLIC_LINKS"
	FeatureSecureDirectoryStream Feature = "SECURE_DIRECTORY_STREAM"
	FeatureFileChannel           Feature = "FILE_CHANNEL"
)

// WatchServiceConfig configures the polling watch service.
type WatchServiceConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Configuration is a value object with the recognised configuration
// fields. Load starts from Default(), so fields a YAML document omits keep
// their default values; New does not fill in zero-value fields.
type Configuration struct {
	PathType                   PathTypeName        `yaml:"pathType"`
	Roots                      []string            `yaml:"roots"`
	WorkingDirectory           string              `yaml:"workingDirectory"`
	NameDisplayNormalization   []name.Normalization `yaml:"nameDisplayNormalization"`
	NameCanonicalNormalization []name.Normalization `yaml:"nameCanonicalNormalization"`
	PathEqualityUsesCanonical  bool                `yaml:"pathEqualityUsesCanonicalForm"`
	BlockSize                  int                 `yaml:"blockSize"`
	MaxSize                    int                 `yaml:"maxSize"`
	MaxCacheSize               int                 `yaml:"maxCacheSize"`
	AttributeViews             []string                  `yaml:"attributeViews"`
	DefaultAttributeValues     map[string]map[string]any `yaml:"defaultAttributeValues"`
	SupportedFeatures          []Feature           `yaml:"supportedFeatures"`
	WatchService               WatchServiceConfig  `yaml:"watchServiceConfig"`
}

// defaultBlockSize and friends mirror a conservative, small-file-friendly
// default profile; callers building a real instance are expected to
// override these from their own YAML document.
const (
	defaultBlockSize    = 4096
	defaultMaxSize      = 64 * 1024 * 1024
	defaultMaxCacheSize = -1
	defaultInterval     = 200 * time.Millisecond
)

// Default returns a Configuration with conservative defaults:
// Unix paths, a single "/" root, no name normalization, display equality,
// the basic, posix, owner and user attribute views, and every feature
// enabled.
func Default() *Configuration {
	return &Configuration{
		PathType:                  Unix,
		Roots:                     []string{"/"},
		WorkingDirectory:          "/",
		PathEqualityUsesCanonical: false,
		BlockSize:                 defaultBlockSize,
		MaxSize:                   defaultMaxSize,
		MaxCacheSize:              defaultMaxCacheSize,
		AttributeViews:            []string{"basic", "posix", "owner", "user"},
		SupportedFeatures: []Feature{
			FeatureLinks, FeatureSymbolicLinks, FeatureSecureDirectoryStream, FeatureFileChannel,
		},
		WatchService: WatchServiceConfig{Interval: defaultInterval},
	}
}

// Validate checks the required-nonempty/positive invariants for roots,
// working directory, and sizing.
func (c *Configuration) Validate() error {
	if len(c.Roots) == 0 {
		return errors.New("configuration requires a non-empty set of roots")
	}
	if c.WorkingDirectory == "" {
		return errors.New("configuration requires a working directory")
	}
	if c.BlockSize <= 0 || c.MaxSize <= 0 {
		return errors.New("blockSize and maxSize must be positive")
	}
	if c.MaxCacheSize < -1 {
		return errors.New("maxCacheSize must be -1 or non-negative")
	}
	return nil
}

// Load reads a YAML configuration document from path, applying Default()
// for any field the document omits.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read configuration file")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unable to parse configuration file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnvOverlay loads envPath (if it exists) into the process
// environment via godotenv, then loads the YAML configuration at path.
// The environment variables are not consulted when building the
// Configuration.
func LoadWithEnvOverlay(path, envPath string) (*Configuration, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, errors.Wrap(err, "unable to load environment overlay")
		}
	}
	return Load(path)
}
