package constants

const (
	// Config file keys
	SettingTimezone    = "timezone"
	SettingUser        = "user"
	SettingBackupsMax  = "backups.max"
	SettingBackupsAuto = "backups.auto"
	SettingUITheme     = "ui.theme"

	EnvPrefix = "WEEKLIT"

	// Default Settings Values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultUser        = "local"
	DefaultBackupsAuto = true
	DefaultTheme       = "light"
)
