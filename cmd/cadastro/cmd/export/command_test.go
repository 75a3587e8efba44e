package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/internal/cmd/cmdtest"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/save"
)

func TestExport(t *testing.T) {
	state := cmdtest.ServerState()
	state.Institution.SystemMode = bundle.ModeStation
	reg := cmdtest.Registry(t, state)
	dir := t.TempDir()

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), dir)
	require.NoError(t, err)

	var file File
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &file))
	assert.Equal(t, "package", file.Kind)
	assert.Equal(t, filepath.Join(dir, "collection_station_Sao_Jose_2024-05-01.json"), file.Path)

	data, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	pkg, err := bundle.Decode(data, save.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, pkg.Residents, 2)
	assert.Empty(t, pkg.Agents)
	assert.Nil(t, pkg.Config)

	assert.Equal(t, bundle.StateExported, reg.Lifecycle())
	logs := reg.Logs(bundle.ActionSync)
	require.NotEmpty(t, logs)
	assert.Equal(t, "Collection package generated for the server", logs[0].TargetName)
}

func TestExportTooManyArgs(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	_, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, t.TempDir())), "a", "b")
	assert.Error(t, err)
}
