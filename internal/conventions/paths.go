package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default drcmd data directory name (relative to home).
	DefaultDataDir = ".drcmd"

	// HistoryDBFile is the filename of the execution history database.
	HistoryDBFile = "history.db"
	// ProfilesFile is the filename of the target profiles file.
	ProfilesFile = "profiles.yaml"
)

// DataDir returns the drcmd data directory under the given home directory.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir)
}

// HistoryDBPath returns the path of the execution history database.
func HistoryDBPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), HistoryDBFile)
}

// ProfilesPath returns the path of the target profiles file.
func ProfilesPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), ProfilesFile)
}
