package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment keys understood by orbweight.
const (
	EnvConfig = "ORBWEIGHT_CONFIG"
	EnvOutput = "ORBWEIGHT_OUTPUT"
)

// DotEnvPath returns the absolute path to the dotenv file (~/.orbweight/.env).
func DotEnvPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.orbweight/.env and returns key/value pairs.
//
// Parsing rules:
// - Lines starting with '#' are ignored.
// - Empty lines are ignored.
// - Lines must be of form KEY=VALUE.
// - Whitespace around KEY is trimmed.
// - VALUE is taken as-is (no quote parsing).
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", p, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return out, nil
}

// GetConfigValue returns the effective value for key, using process environment variables
// first and falling back to ~/.orbweight/.env.
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	dotenv, err := LoadDotEnv()
	if err != nil {
		return "", err
	}
	return dotenv[key], nil
}

// ResolveOutput picks the result path: the flag value when set, then the
// config file, then ORBWEIGHT_OUTPUT, then DefaultOutput.
func ResolveOutput(flagValue string, flagSet bool, cfg *Config) (string, error) {
	if flagSet {
		return flagValue, nil
	}
	if cfg != nil && cfg.Output != "" {
		return cfg.Output, nil
	}
	v, err := GetConfigValue(EnvOutput)
	if err != nil {
		return "", err
	}
	if v != "" {
		return v, nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return DefaultOutput, nil
}
