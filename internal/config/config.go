package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the result file used when nothing else names one.
const DefaultOutput = "output.dat"

// Config is the in-memory representation of ~/.orbweight/config.yaml.
type Config struct {
	Output string `yaml:"output,omitempty"`
	Header string `yaml:"header,omitempty"`
	// Groups maps an alias usable in --orbital to the substrings it stands for.
	Groups map[string][]string `yaml:"groups,omitempty"`
}

// Dir returns the absolute path to ~/.orbweight/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".orbweight"), nil
}

// Path returns the absolute path to ~/.orbweight/config.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{Groups: map[string][]string{}}
}

// Load reads and parses the config file at path. An empty path means the
// default location; a missing file yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if cfg.Groups == nil {
		cfg.Groups = map[string][]string{}
	}
	if cfg.Output != "" {
		cfg.Output, err = ExpandPath(cfg.Output)
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ExpandOrbitals replaces group aliases in orbitals by their members. Order
// is kept and repeated entries are dropped.
func (c *Config) ExpandOrbitals(orbitals []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(orbitals))
	add := func(s string) {
		if seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, o := range orbitals {
		members, ok := c.Groups[o]
		if !ok {
			add(o)
			continue
		}
		for _, m := range members {
			add(m)
		}
	}
	return out
}
