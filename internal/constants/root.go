package constants

import "time"

const (
	AppName             = "weeklit"
	DefaultKeyringUser  = "database-connection"
	DefaultConfigPath   = "~/.config/weeklit/weeklit.db"
	DefaultSettingsPath = "~/.config/weeklit/config.yaml"
	Version             = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat renders "January 15"
	DisplayDateFormat = "January 2"

	// ShortDateFormat renders "Jan 15"
	ShortDateFormat = "Jan 2"

	// Timestamp format for history entries
	TimestampFormat = time.RFC3339

	// MemoryStorePath selects the process-local store
	MemoryStorePath = ":memory:"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "weeklit-"

	// Session lock
	LockfileName = "weeklit.lock"
)
