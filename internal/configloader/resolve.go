package configloader

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfig names the environment variable that overrides config discovery.
const EnvConfig = "STRATEGIST_CONFIG"

// ResolveConfigPath returns the config path for the given file name.
// It checks, in order:
// 1. $STRATEGIST_CONFIG if set
// 2. ~/.strategist/<file>
// 3. /etc/strategist/<file>
func ResolveConfigPath(file string) (string, error) {
	return resolve(file, os.Getenv(EnvConfig), userDir(), "/etc/strategist")
}

func userDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".strategist")
}

func resolve(file, env string, dirs ...string) (string, error) {
	if env != "" {
		return env, nil
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config found for %s", file)
}
