// Package constants contains file names and field names shared by settingsync.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "settingsync"

	// VSCodeDir is the editor directory that holds a project's custom settings.
	VSCodeDir = ".vscode"

	// SettingsFilename is the active settings document.
	SettingsFilename = "settings.json"

	// BackupFilename is the backup copy written by backup and consumed by restore.
	BackupFilename = "settings.backup.json"

	// DefaultFilename is the fallback document used by restore when no backup exists.
	DefaultFilename = "settings.default.json"

	// ConfigFilename is the optional settingsync configuration file.
	ConfigFilename = "settingsync.yml"

	// LogFilename is the default log file name.
	LogFilename = "settingsync.log"

	// JournalFilename is the journal database file name.
	JournalFilename = "journal.db"
)
