package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory name used under the platform config dir
const AppDirName = "guessr"

// PathResolver finds where config and persisted state live
type PathResolver struct {
	homeDir   string
	configDir string
}

// NewPathResolver determines the platform config directory
func NewPathResolver() *PathResolver {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	configDir := getConfigDir(homeDir)
	log.Debugf("PathResolver initialized: home=%s, configDir=%s", homeDir, configDir)
	return &PathResolver{homeDir: homeDir, configDir: configDir}
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, "."+AppDirName)
	}
}

// GetConfigPath returns the full path for a config file.
// Falls back to ~/.guessr and then the temp dir when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) string {
	return filepath.Join(pr.writableDir(pr.configDir), filename)
}

// GetDataDir resolves where persisted state goes. An explicit path wins;
// otherwise a data/ directory inside the config dir is used.
func (pr *PathResolver) GetDataDir(userPath string) string {
	if userPath != "" {
		return GetAbsolutePath(userPath)
	}
	return pr.writableDir(filepath.Join(pr.configDir, "data"))
}

func (pr *PathResolver) writableDir(preferred string) string {
	candidates := []string{
		preferred,
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
	}
	for i, dir := range candidates {
		if DirWritable(dir) {
			if i > 0 {
				log.Warnf("Using fallback location: %s", dir)
			}
			return dir
		}
	}
	return os.TempDir()
}
