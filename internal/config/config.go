package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds startup options. Runtime preferences (idle timeout, throttle,
// form defaults) live in the settings database instead.
type Config struct {
	DBPath    string `yaml:"db_path"`
	ExportDir string `yaml:"export_dir"`
	LogFile   string `yaml:"log_file"`
}

func Default() (Config, error) {
	dbPath, err := DefaultDBPath()
	if err != nil {
		return Config{}, fmt.Errorf("default db path: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("home dir: %w", err)
	}
	return Config{DBPath: dbPath, ExportDir: home}, nil
}

// DefaultDBPath returns ~/.config/taskpad/taskpad.db
func DefaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskpad", "taskpad.db"), nil
}

// DefaultPath returns ~/.config/taskpad/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskpad", "config.yaml"), nil
}

// Load reads the YAML file at path on top of base. A missing file is not an
// error; fields absent from the file keep their base value.
func Load(path string, base Config) (Config, error) {
	cfg := base
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.ExportDir = expandHome(cfg.ExportDir)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

// FromEnv applies TASKPAD_* environment overrides.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("TASKPAD_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnv("TASKPAD_EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := getEnv("TASKPAD_LOG"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return expandHome(raw), true
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
