package config

import (
	"os"
	"path/filepath"
)

const (
	defaultDataDir        = "~/.local/share/sunflower"
	defaultLogDir         = "~/.local/share/sunflower/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultPlayerBinary   = "mpv"
	defaultNotifyTimeout  = 10
	downloadsDirName      = "Downloads"
	fallbackDownloadsPath = "~/Downloads"
)

// DefaultLibraryDir returns the platform downloads directory used when no
// library directory is configured.
func DefaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fallbackDownloadsPath
	}
	return filepath.Join(home, downloadsDirName)
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: DefaultLibraryDir(),
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Player: Player{
			Binary: defaultPlayerBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
