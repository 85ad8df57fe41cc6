package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteDefault writes a config file with all default values to the given
// path. An already existing file is never overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}

	defaults := map[string]any{
		"version": "1.0",
		"log": map[string]any{
			"level":       "info",
			"json":        false,
			"mode":        "console",
			"file_path":   ".wasmup/wasmup.log",
			"max_size":    100,
			"max_backups": 3,
			"max_age":     28,
		},
		"app": map[string]any{
			"name": "wasmup",
		},
		"dev": map[string]any{
			"port": 8080,
		},
		"watch": map[string]any{
			"debounce_ms": 2000,
			"sweep_ms":    500,
		},
	}

	buf, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed marshaling default config: %w", err)
	}

	return os.WriteFile(path, buf, 0o644)
}
