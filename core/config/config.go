// Package config holds the interpreter's host-side configuration: a
// directory containing config.yaml and the command event log.
package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
)

// Configuration is the parsed config.yaml plus a handle on the directory
// it was loaded from.
type Configuration struct {
	configFs afero.Fs

	// Motd is printed before the first prompt. Empty disables it.
	Motd string `json:"motd"`
	// Prompt is written and flushed before each blocking read.
	Prompt string `json:"prompt" validate:"required"`
	// MaxTokens bounds the tokens parsed per line; one slot is
	// reserved for the argument-vector terminator.
	MaxTokens int `json:"max_tokens" validate:"gte=2,lte=4096"`
	// HistoryLog names the command event log file inside the config
	// directory. Empty disables event logging.
	HistoryLog string `json:"history_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// OpenHistoryLog opens the command event log in an append only state.
func (c *Configuration) OpenHistoryLog() (afero.File, error) {
	return c.fs().OpenFile(c.HistoryLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadHistoryLog opens the command event log for reading.
func (c *Configuration) ReadHistoryLog() (afero.File, error) {
	return c.fs().OpenFile(c.HistoryLog, os.O_RDONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the embedded default configuration, backed by an
// in-memory directory so the interpreter works without `mtsh init`.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}
