package bundle

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/pkg/save"
)

func TestClone(t *testing.T) {
	orig := &Bundle{
		Institution: &Institution{Name: "Prefeitura"},
		Residents: []Resident{{
			ID:        "r1",
			Education: &Education{SchoolName: "EM Central"},
		}},
		Territories: []Territory{{Street: "Rua A"}},
		Config:      DefaultBackupConfig(),
	}

	cp := orig.Clone()
	if diff := cmp.Diff(orig, cp); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	cp.Institution.Name = "changed"
	cp.Residents[0].Education.SchoolName = "changed"
	cp.Territories[0].Street = "changed"
	cp.Config.RemindMe = false

	assert.Equal(t, "Prefeitura", orig.Institution.Name)
	assert.Equal(t, "EM Central", orig.Residents[0].Education.SchoolName)
	assert.Equal(t, "Rua A", orig.Territories[0].Street)
	assert.True(t, orig.Config.RemindMe)

	t.Run("absence survives", func(t *testing.T) {
		empty := (&Bundle{}).Clone()
		assert.Nil(t, empty.Residents)
		assert.Nil(t, empty.Institution)
		assert.Nil(t, (*Bundle)(nil).Clone())
	})
}

func TestEncode(t *testing.T) {
	b := &Bundle{Version: "2.5", Residents: []Resident{{Name: "José & Filhos"}}}

	data, err := Encode(b, save.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"version\": \"2.5\"")
	assert.Contains(t, string(data), "José & Filhos")

	data, err = Encode(b, save.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: \"2.5\"")

	var buf bytes.Buffer
	require.NoError(t, Write(b, save.WithWriter(&buf)))
	assert.Contains(t, buf.String(), `"residents"`)
}

func TestFileNames(t *testing.T) {
	at := time.Date(2024, 5, 1, 13, 45, 30, 123e6, time.UTC)

	assert.Equal(t, "collection_station_Sao_Jose_dos_Campos_2024-05-01.json",
		StationExportName("São José  dos Campos", at))
	assert.Equal(t, "collection_station_station_2024-05-01.json", StationExportName("  ", at))
	assert.Equal(t, "registry_backup_2024-05-01T13-45-30-123Z.json", BackupName(at))
}

func TestState(t *testing.T) {
	assert.Equal(t, StateExported, StateCollected.Next())
	assert.Equal(t, StateCollected, StateMerged.Next())
	assert.Equal(t, "transported", StateTransported.String())
	assert.Equal(t, "unknown", State(99).String())

	assert.True(t, StateExported.CanTransition(StateTransported))
	assert.True(t, StateExported.CanTransition(StateImported))
	assert.False(t, StateCollected.CanTransition(StateMerged))

	assert.True(t, StateExported.Terminal(ModeStation))
	assert.False(t, StateExported.Terminal(ModeServer))
}

func TestBackupConfigDue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  *BackupConfig
		want bool
	}{
		{"nil", nil, false},
		{"reminders off", &BackupConfig{RemindMe: false}, false},
		{"never backed up", &BackupConfig{RemindMe: true}, true},
		{"unparseable date", &BackupConfig{RemindMe: true, LastBackupDate: "yesterday"}, true},
		{"daily recent", &BackupConfig{RemindMe: true, Frequency: FrequencyDaily, LastBackupDate: "2024-05-10T01:00:00.000Z"}, false},
		{"daily stale", &BackupConfig{RemindMe: true, Frequency: FrequencyDaily, LastBackupDate: "2024-05-09T01:00:00.000Z"}, true},
		{"weekly within window", &BackupConfig{RemindMe: true, Frequency: FrequencyWeekly, LastBackupDate: "2024-05-05T12:00:00Z"}, false},
		{"monthly stale", &BackupConfig{RemindMe: true, Frequency: FrequencyMonthly, LastBackupDate: "2024-04-01T12:00:00.000Z"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Due(now))
		})
	}
}

func TestBackupConfigAutoBackupDue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  *BackupConfig
		want bool
	}{
		{"nil", nil, false},
		{"disabled", &BackupConfig{AutoBackupEnabled: false}, false},
		{"reminders off still runs", &BackupConfig{AutoBackupEnabled: true, RemindMe: false}, true},
		{"daily recent", &BackupConfig{AutoBackupEnabled: true, Frequency: FrequencyDaily, LastBackupDate: "2024-05-10T01:00:00.000Z"}, false},
		{"weekly stale", &BackupConfig{AutoBackupEnabled: true, Frequency: FrequencyWeekly, LastBackupDate: "2024-05-01T12:00:00.000Z"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.AutoBackupDue(now))
		})
	}
}
