package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AppName names the config directory and fallback locations.
const AppName = "titleserve"

// dictNames are looked up, in order, when no title file is given explicitly.
var dictNames = []string{"titles.msgpack", "titles.txt.gz", "titles.txt"}

// PathResolver locates the title dictionary and config file relative to the
// binary, the working directory and the user config dir.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver for the running executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      configDirFor(runtime.GOOS, homeDir, os.Getenv),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", pr.executablePath, pr.configDir)
	return pr, nil
}

// UserConfigDir returns the platform config directory for titleserve.
// Config files and title files are looked up under the same directory.
func UserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return configDirFor(runtime.GOOS, homeDir, os.Getenv), nil
}

// configDirFor returns the platform config directory for titleserve
func configDirFor(goos, homeDir string, getenv func(string) string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppName)
	case "linux":
		if configHome := getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}

// ResolveDictPath finds the title file to load.
//
// An explicit path is tried as given, then relative to the executable. With
// no path the well known names are searched next to the executable, in its
// data/ dir and in the config dir. An empty result means no file was found
// and the bundled titles should be used.
func (pr *PathResolver) ResolveDictPath(userPath string) string {
	if userPath != "" {
		for _, candidate := range []string{userPath, pr.ResolveRelativePath(userPath)} {
			if FileExists(candidate) {
				return candidate
			}
		}
		log.Warnf("Title file %s not found, using it as given", userPath)
		return userPath
	}

	dirs := []string{
		pr.executableDir,
		filepath.Join(pr.executableDir, "data"),
		pr.configDir,
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	for _, dir := range dirs {
		for _, name := range dictNames {
			candidate := filepath.Join(dir, name)
			if FileExists(candidate) {
				log.Debugf("Found title file: %s", candidate)
				return candidate
			}
		}
	}
	return ""
}

// ResolveRelativePath resolves a path relative to the executable directory
func (pr *PathResolver) ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(pr.executableDir, relativePath)
}

// GetRuntimeInfo returns debug information about the runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_path": pr.executablePath,
		"current_dir":     cwd,
		"config_dir":      pr.configDir,
		"home_dir":        pr.homeDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
