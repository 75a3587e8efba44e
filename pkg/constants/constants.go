// Package constants provides shared constants used throughout the cadastro codebase.
// This includes schema versions, placeholder values, limits and file permissions
// that should be consistent across stations and the central server.
package constants

import "time"

// Schema constants
const (
	// SchemaVersion is the bundle schema version written by this build
	SchemaVersion = "2.5"

	// TimestampLayout is the ISO-8601 layout used for bundle and log timestamps
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	// DateLayout is the layout used for date-only fields such as birth dates
	DateLayout = "2006-01-02"
)

// Placeholder values applied by the sanitizer when a field is absent
const (
	PlaceholderInstitutionName = "Municipal Government"
	PlaceholderLogoURL         = "https://placehold.co/100x100/2563eb/white?text=LOGO"
	PlaceholderCNPJ            = "00.000.000/0001-00"
	PlaceholderInstitutionCity = "Central"
	CityNotInformed            = "Not Informed"

	AgentName      = "Operational Agent"
	AgentUsername  = "agent."
	AgentSuffixLen = 4

	ResidentName          = "Unidentified Resident"
	ResidentCPF           = "000.000.000-00"
	NeighborhoodUnknown   = "Neighborhood Not Informed"
	TerritoryNeighborhood = "General"
)

// Limit constants
const (
	// MaxAuditLogs is the number of audit log entries retained in a bundle
	MaxAuditLogs = 1000

	// MaxBundleSize is the largest bundle file accepted for import (64 MB)
	MaxBundleSize = 64 << 20

	// MinCPFDigits is the number of digits in a well-formed national ID
	MinCPFDigits = 11

	// InsightCount is the number of insights requested from the model
	InsightCount = 4
)

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// InsightsTimeout bounds the insights generation call
	InsightsTimeout = 30 * time.Second

	// ShutdownTimeout is given to shutdown operations after a failed command
	ShutdownTimeout = 5 * time.Second

	// BackupContextTimeout bounds one automatic backup
	BackupContextTimeout = 5 * time.Minute

	// DefaultBackupCheckInterval is how often automatic backups check whether one is due
	DefaultBackupCheckInterval = time.Hour
)

// Backup frequency windows
const (
	DailyWindow   = 24 * time.Hour
	WeeklyWindow  = 7 * DailyWindow
	MonthlyWindow = 30 * DailyWindow
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for files holding agent credentials (rw-------)
	SecureFilePermissions = 0600
)

// File naming constants
const (
	// StationExportPrefix prefixes export-for-server packages
	StationExportPrefix = "collection_station_"

	// BackupPrefix prefixes general backups
	BackupPrefix = "registry_backup_"

	// BundleExtension is the extension of bundle files
	BundleExtension = ".json"

	// DefaultDataDir is the state directory under the user's home
	DefaultDataDir = ".cadastro"
)

// Insights defaults
const (
	DefaultInsightsModel = "gemini-2.5-flash"
)
