package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/internal/cmd/cmdtest"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

func writePackage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection_station_Norte_2024-04-30.json")
	require.NoError(t, os.WriteFile(path, []byte(cmdtest.StationPackage), 0o644))
	return path
}

func TestSync(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	path := writePackage(t)

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, filepath.Base(path), got.Package)
	assert.Equal(t, 1, got.New)
	assert.Equal(t, 1, got.Updated)
	assert.Equal(t, 1, got.TerritoriesAdded)
	assert.Equal(t, 1, got.TerritoriesSkipped)
	assert.True(t, got.Saved)
	assert.False(t, got.DryRun)
	require.Len(t, got.Changes, 1)
	assert.Equal(t, "Maria Silva", got.Changes[0].Name)
	assert.Equal(t, []string{"exported", "transported", "imported", "merged"}, got.Lifecycle)

	assert.Len(t, reg.State().Residents, 3)
	assert.Contains(t, res.Stderr, "1 new records and 1 updates")

	// Syncing the same package again adds nobody.
	res, err = cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, 0, got.New)
	assert.Len(t, reg.State().Residents, 3)
}

func TestSyncDryRun(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), writePackage(t), "--dry-run")
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.True(t, got.DryRun)
	assert.False(t, got.Saved)
	assert.Equal(t, 1, got.New)
	assert.Len(t, reg.State().Residents, 2)
}

func TestSyncTable(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), writePackage(t), "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "Maria Silva")
}

func TestSyncOnStation(t *testing.T) {
	state := cmdtest.ServerState()
	state.Institution.SystemMode = bundle.ModeStation
	reg := cmdtest.Registry(t, state)
	path := writePackage(t)

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path, "-o", "table")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, res.Stderr, "only the central server merges station packages")
	assert.Len(t, reg.State().Residents, 2)

	_, err = cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path, "--force")
	require.NoError(t, err)
	assert.Len(t, reg.State().Residents, 3)
}

func TestSyncRejectsMalformedPackage(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"residents": "nope"}`), 0o644))

	_, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), path)
	require.Error(t, err)
	assert.True(t, errors.IsFormatError(err))
	assert.Len(t, reg.State().Residents, 2)
}

func TestSyncRequiresOneArgument(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	_, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())))
	assert.Error(t, err)
}
