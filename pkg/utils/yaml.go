package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML overlays configuration values from a yaml file onto the config.
// Keys in the file take precedence over values already present. A missing
// file is not an error so deployments can rely on the environment alone.
func (c *Config) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range values {
		c.values[k] = v
	}

	return nil
}
