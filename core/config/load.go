package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads the configuration from the root of fs. Unknown fields are
// an error; fields absent from the file keep their embedded defaults.
func LoadFs(fs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, err
	}
	out.configFs = fs

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}

	return out, nil
}

// Initialize writes the default configuration into the directory and
// loads it back. An existing config.yaml is kept as-is.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), path), logger)
}

// InitializeFs is Initialize against the root of fs.
func InitializeFs(fs afero.Fs, logger *log.Logger) (*Configuration, error) {
	if _, err := fs.Stat(ConfigurationName); err == nil {
		logger.Printf("%s already exists, keeping it", ConfigurationName)
	} else {
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Printf("created %s", ConfigurationName)
	}

	return LoadFs(fs)
}
