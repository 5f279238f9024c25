package constants

const (
	AppName           = "habitkit"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/habitkit/habitkit.db"

	// DateFormat is the standard calendar-day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitkit-"
	BackupFileSuffix = ".db"

	// Completion-rate period lengths. Weekly and monthly rates use fixed-size
	// periods rather than true calendar weeks/months.
	DaysPerWeek  = 7
	DaysPerMonth = 30

	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 6
)
