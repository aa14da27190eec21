package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

// Config files hold API keys, so they are written owner-only.
const fileMode = 0600

// WriteDefault writes the commented default config to path, creating its
// directory.
func WriteDefault(path string) error {
	return writeFile(path, func(f *os.File) error {
		_, err := f.WriteString(defaultConfig)
		return err
	})
}

// Write encodes c as TOML to path. The file is replaced atomically.
func (c *Config) Write(path string) error {
	return writeFile(path, func(f *os.File) error {
		return toml.NewEncoder(f).Encode(c)
	})
}

func writeFile(path string, fill func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
