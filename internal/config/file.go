// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ApplyFile overlays the YAML file at path onto c. Only keys present in
// the file are overwritten; absent keys keep their current values.
func (c *Config) ApplyFile(path string) error {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	// Strict decoding so typos in the overlay surface at startup rather
	// than silently keeping defaults.
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// LoadDeliveryFile reads only the delivery section from the overlay file.
// Used by the hot-reload watcher.
func LoadDeliveryFile(path string, current DeliveryConfig) (DeliveryConfig, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return current, fmt.Errorf("config: read %s: %w", path, err)
	}
	overlay := struct {
		Delivery DeliveryConfig `yaml:"delivery"`
	}{Delivery: current}
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return current, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := overlay.Delivery.Validate(); err != nil {
		return current, err
	}
	return overlay.Delivery, nil
}
