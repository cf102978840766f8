package config

import (
	"os"

	"go.uber.org/zap"
)

// DefaultConfigFile is the conventional config filename looked up in the
// working directory.
const DefaultConfigFile = "cpc-etl.yaml"

// Loader loads configuration with file-over-defaults precedence.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load builds the effective configuration: defaults, overlaid with the
// file at path when it exists. An empty path falls back to
// DefaultConfigFile; a missing file is not an error.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	fileConfig, err := LoadFromFile(path)
	switch {
	case err == nil:
		l.logger.Debug("loaded config file", zap.String("path", path))
		config.Merge(fileConfig)
	case os.IsNotExist(err) && !explicit:
		l.logger.Debug("no config file found, using defaults")
	default:
		// An explicitly named file must exist and parse.
		if explicit {
			return nil, err
		}
		l.logger.Warn("failed to load config file", zap.String("path", path), zap.Error(err))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
