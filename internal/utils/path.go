package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionary and config locations relative to the
// running binary, the working directory and the user's config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a resolver rooted at the current executable.
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
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for wordtrie.
func configDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordtrie")
		}
		return filepath.Join(homeDir, ".config", "wordtrie")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordtrie")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordtrie")
	default:
		return filepath.Join(homeDir, ".config", "wordtrie")
	}
}

// GetDataDir resolves the directory holding dictionary chunk files.
// Candidates, in order: an absolute user path, the path relative to the
// executable, the path relative to the working directory, then <config>/data.
// The first candidate containing chunk files wins; otherwise the
// executable-relative path is returned for error reporting.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	execRelative := filepath.Join(pr.executableDir, userSpecifiedPath)
	candidates = append(candidates, execRelative)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	candidates = append(candidates, filepath.Join(pr.configDir, "data"))

	for _, path := range candidates {
		if HasChunkFiles(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return execRelative
}

// HasChunkFiles reports whether dir holds at least one dict_*.bin file.
func HasChunkFiles(dir string) bool {
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	return err == nil && len(matches) > 0
}

// GetConfigPath returns a writable location for filename, falling back to
// ~/.wordtrie and the temp dir when the config dir cannot be written.
func (pr *PathResolver) GetConfigPath(filename string) string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, ".wordtrie"),
		filepath.Join(os.TempDir(), "wordtrie"),
	}
	for i, dir := range dirs {
		if CheckDirStatus(dir).Writable {
			if i > 0 {
				log.Warnf("Using fallback config location: %s", dir)
			}
			return filepath.Join(dir, filename)
		}
	}
	path := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", path)
	return path
}
