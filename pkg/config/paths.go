package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName           = "exmailer"
	localJSONFile     = appName + ".json"
	localYAMLFile     = appName + ".yaml"
	userConfigFile    = "config.json"
	homeJSONDotfile   = "." + appName + ".json"
	homeYAMLDotfile   = "." + appName + ".yaml"
	defaultDotenvFile = ".env"
)

// CandidatePaths returns the locations probed during config discovery, in
// priority order. Locations that cannot be determined (no home directory)
// are left out.
func CandidatePaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(cwd, localJSONFile),
			filepath.Join(cwd, localYAMLFile),
		)
	}
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, appName, userConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, homeJSONDotfile),
			filepath.Join(home, homeYAMLDotfile),
		)
	}
	return paths
}

// DefaultConfigPath is where `config init` writes a new file when no path
// is given.
func DefaultConfigPath() string {
	if dir := userConfigDir(); dir != "" {
		return filepath.Join(dir, appName, userConfigFile)
	}
	return localJSONFile
}

// DefaultYAMLConfigPath is where `config init --format yaml` writes a new
// file when no path is given.
func DefaultYAMLConfigPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, homeYAMLDotfile)
	}
	return localYAMLFile
}

func userConfigDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return base
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}

// expandPath resolves a leading ~ and makes path absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
