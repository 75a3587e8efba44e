package restore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/internal/cmd/cmdtest"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

const legacyBackup = `{
  "institution": {"name": "Prefeitura de Norte", "city": "Norte", "systemMode": "COLLECTION_STATION"},
  "agents": [{"name": "Ana"}],
  "residents": [{"name": "Clara", "cpf": "555"}]
}`

func TestRestore(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	path := filepath.Join(t.TempDir(), "registry_backup_old.json")
	require.NoError(t, os.WriteFile(path, []byte(legacyBackup), 0o644))

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "Prefeitura de Norte")
	assert.Contains(t, res.Stderr, "Restore completed: registry_backup_old.json")

	state := reg.State()
	require.Len(t, state.Residents, 1)
	assert.Equal(t, "Clara", state.Residents[0].Name)
	assert.Equal(t, bundle.RelationshipOther, state.Residents[0].Relationship)
	assert.Equal(t, bundle.ModeStation, state.Institution.SystemMode)
	assert.Empty(t, state.Territories)
}

func TestRestoreUnreadable(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	_, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
	assert.Len(t, reg.State().Residents, 2)
}

func TestRestoreNotJSON(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	_, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
	assert.Len(t, reg.State().Residents, 2)
}
