// Package config contains the node configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the version of the node, set at build time.
var Version string

// Config top level struct representing the config for the node.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// ApplicationConfiguration config specific to the node.
type ApplicationConfiguration struct {
	LogPath    string             `yaml:"LogPath"`
	LogLevel   string             `yaml:"LogLevel"`
	Pprof      BasicService       `yaml:"Pprof"`
	Prometheus BasicService       `yaml:"Prometheus"`
	Queue      QueueConfiguration `yaml:"Queue"`
}

// Load attempts to load the config from the given path.
func Load(path string) (Config, error) {
	configData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return LoadRawConfig(configData)
}

// LoadRawConfig attempts to unmarshal the given config bytes applying the
// defaults for unset queue parameters.
func LoadRawConfig(configData []byte) (Config, error) {
	config := Config{
		ApplicationConfiguration: ApplicationConfiguration{
			Queue: QueueConfiguration{
				PendingDepth:         DefaultPendingDepth,
				BanDepth:             DefaultBanDepth,
				PoolLedgerMultiplier: DefaultPoolLedgerMultiplier,
			},
		},
	}
	err := yaml.Unmarshal(configData, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	err = config.ApplicationConfiguration.Queue.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}
