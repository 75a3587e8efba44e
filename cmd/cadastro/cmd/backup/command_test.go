package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/cmd/cadastro/cmd/export"
	"github.com/agentstation/cadastro/internal/cmd/cmdtest"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
)

func TestBackupToConfiguredDir(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	require.True(t, reg.BackupDue())
	dir := t.TempDir()

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, dir)))
	require.NoError(t, err)

	var file export.File
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &file))
	assert.Equal(t, "backup", file.Kind)
	assert.Equal(t, dir, filepath.Dir(file.Path))

	info, err := os.Stat(file.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.False(t, reg.BackupDue())
	assert.Equal(t, identity.Timestamp(cmdtest.Now), reg.State().Config.LastBackupDate)
	logs := reg.Logs(bundle.ActionBackup)
	require.NotEmpty(t, logs)
	assert.Equal(t, "Manual safety export", logs[0].TargetName)
}

func TestBackupToArgumentDir(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	dir := t.TempDir()

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "unused")), dir, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "registry_backup_")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
