package bundle

import (
	"time"

	"github.com/agentstation/cadastro/pkg/constants"
)

// Frequency is how often a backup reminder fires.
type Frequency string

// Backup frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Window returns the interval between backups for f. Unknown values are
// treated as daily.
func (f Frequency) Window() time.Duration {
	switch f {
	case FrequencyWeekly:
		return constants.WeeklyWindow
	case FrequencyMonthly:
		return constants.MonthlyWindow
	default:
		return constants.DailyWindow
	}
}

// BackupConfig holds the backup preferences of a device.
type BackupConfig struct {
	AutoBackupEnabled bool      `json:"autoBackupEnabled" yaml:"autoBackupEnabled"`
	Frequency         Frequency `json:"frequency" yaml:"frequency"`
	LastBackupDate    string    `json:"lastBackupDate,omitempty" yaml:"lastBackupDate,omitempty"`
	RemindMe          bool      `json:"remindMe" yaml:"remindMe"`
}

// DefaultBackupConfig returns the preferences of a freshly installed device.
func DefaultBackupConfig() *BackupConfig {
	return &BackupConfig{
		AutoBackupEnabled: true,
		Frequency:         FrequencyDaily,
		RemindMe:          true,
	}
}

// Due reports whether a backup reminder should be shown at now. Reminders
// must be enabled.
func (c *BackupConfig) Due(now time.Time) bool {
	return c != nil && c.RemindMe && c.Stale(now)
}

// AutoBackupDue reports whether the background backup should run at now.
// It ignores RemindMe, which only controls the prompt.
func (c *BackupConfig) AutoBackupDue(now time.Time) bool {
	return c != nil && c.AutoBackupEnabled && c.Stale(now)
}

// Stale reports whether a full frequency window has passed since the last
// backup. A device that never backed up, or whose last backup date cannot
// be parsed, is always stale.
func (c *BackupConfig) Stale(now time.Time) bool {
	if c == nil {
		return false
	}
	if c.LastBackupDate == "" {
		return true
	}
	last, err := parseTime(c.LastBackupDate)
	if err != nil {
		return true
	}
	return now.Sub(last) >= c.Frequency.Window()
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(constants.TimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
