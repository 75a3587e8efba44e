package hints

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/pkg/bundle"
)

func defaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaultProviders(r)
	return r
}

func TestProviders(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		commands []string
	}{
		{
			name:     "backup due on any command",
			ctx:      Context{Command: "state", Residents: 3, BackupDue: true},
			commands: []string{"cadastro backup"},
		},
		{
			name: "no reminder after backing up",
			ctx:  Context{Command: "backup", Succeeded: true, BackupDue: true},
		},
		{
			name:     "dry run suggests applying",
			ctx:      Context{Command: "sync", Args: []string{"pkg.json"}, Succeeded: true, DryRun: true},
			commands: []string{"cadastro sync pkg.json"},
		},
		{
			name:     "station sync suggests force",
			ctx:      Context{Command: "sync", Args: []string{"pkg.json"}, ErrorType: ErrorMode},
			commands: []string{"cadastro sync --force pkg.json"},
		},
		{
			name:     "export points at the server",
			ctx:      Context{Command: "export", Args: []string{"out/collection_station_x.json"}, Succeeded: true},
			commands: []string{"cadastro sync out/collection_station_x.json"},
		},
		{
			name:     "insights without key",
			ctx:      Context{Command: "insights"},
			commands: []string{"export GEMINI_API_KEY=your-key-here"},
		},
		{
			name:     "empty server",
			ctx:      Context{Command: "state", Mode: bundle.ModeServer},
			commands: []string{"cadastro sync <package.json>"},
		},
		{
			name:     "empty station",
			ctx:      Context{Command: "state", Mode: bundle.ModeStation},
			commands: []string{"cadastro restore <backup.json>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultRegistry().Hints(tt.ctx)
			commands := make([]string, 0, len(got))
			for _, h := range got {
				commands = append(commands, h.Command)
			}
			if len(tt.commands) == 0 {
				assert.Empty(t, commands)
				return
			}
			assert.Equal(t, tt.commands, commands)
		})
	}
}

func TestRegistryConfig(t *testing.T) {
	ctx := Context{Command: "sync", Args: []string{"p.json"}, Succeeded: true, DryRun: true, BackupDue: true}

	r := defaultRegistry()
	assert.Len(t, r.Hints(ctx), 2)

	r.WithConfig(RegistryConfig{Enabled: true, MaxHints: 1})
	assert.Len(t, r.Hints(ctx), 1)

	r.WithConfig(RegistryConfig{Enabled: true, ExcludeTags: []string{"reminder"}})
	hints := r.Hints(ctx)
	require.Len(t, hints, 1)
	assert.True(t, hints[0].HasTag("next-step"))

	r.WithConfig(RegistryConfig{Enabled: false})
	assert.Nil(t, r.Hints(ctx))
}

func TestDisplay(t *testing.T) {
	hint := NewCommand("A backup of this device is due", "cadastro backup").WithTags("backup")

	var plain bytes.Buffer
	require.NoError(t, Display(&plain, output.FormatTable, []*Hint{hint}))
	assert.Contains(t, plain.String(), "A backup of this device is due")
	assert.Contains(t, plain.String(), "Run: cadastro backup")

	var structured bytes.Buffer
	require.NoError(t, Display(&structured, output.FormatJSON, []*Hint{hint}))
	var decoded struct {
		Hints []hintData `json:"hints"`
	}
	require.NoError(t, json.Unmarshal(structured.Bytes(), &decoded))
	require.Len(t, decoded.Hints, 1)
	assert.Equal(t, "cadastro backup", decoded.Hints[0].Command)

	var empty bytes.Buffer
	require.NoError(t, Display(&empty, output.FormatTable, nil))
	assert.Empty(t, empty.String())
}
