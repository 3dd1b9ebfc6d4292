package adaq8092

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadProfile decodes a YAML settings profile. Keys left out keep their
// [DefaultConfig] value.
func LoadProfile(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveProfile encodes cfg as a YAML settings profile.
func SaveProfile(w io.Writer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return enc.Close()
}
