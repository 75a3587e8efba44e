package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

func sampleState() *bundle.Bundle {
	return &bundle.Bundle{
		Institution: &bundle.Institution{Name: "Prefeitura", City: "Olinda", SystemMode: bundle.ModeStation},
		Agents:      []bundle.Agent{{ID: "a1", Name: "Ana", Username: "ana", Password: "secret", Role: bundle.RoleAdmin}},
		Residents: []bundle.Resident{{
			ID: "r1", Name: "Maria", CPF: "529.982.247-25",
			Education: &bundle.Education{IsStudying: true},
		}},
		Logs:        []bundle.AuditLog{{ID: "l1", Action: bundle.ActionSync}},
		Territories: []bundle.Territory{{ID: "t1", Street: "Rua A", Number: "1"}},
		Config:      bundle.DefaultBackupConfig(),
	}
}

func TestFiles(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s := NewFiles(dir)

	t.Run("fresh directory is empty", func(t *testing.T) {
		b, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, &bundle.Bundle{}, b)
	})

	t.Run("round trip", func(t *testing.T) {
		in := sampleState()
		require.NoError(t, s.Save(ctx, in))

		out, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, out)

		info, err := os.Stat(s.Path(KeyAgents))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("absent collections are removed", func(t *testing.T) {
		in := sampleState()
		in.Config = nil
		require.NoError(t, s.Save(ctx, in))

		_, err := os.Stat(s.Path(KeyConfig))
		assert.True(t, os.IsNotExist(err))

		out, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, out.Config)
	})

	t.Run("corrupt collection", func(t *testing.T) {
		require.NoError(t, os.WriteFile(s.Path(KeyResidents), []byte("{oops"), 0o644))

		_, err := s.Load(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Save(cctx, sampleState()), context.Canceled)
	})
}

func TestFilesSaveBlocked(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFiles(dir)
	require.NoError(t, s.Save(ctx, sampleState()))

	residents, err := os.ReadFile(s.Path(KeyResidents))
	require.NoError(t, err)
	logs, err := os.ReadFile(s.Path(KeyLogs))
	require.NoError(t, err)

	// A directory in place of territories.json cannot be replaced.
	require.NoError(t, os.Remove(s.Path(KeyTerritories)))
	require.NoError(t, os.MkdirAll(filepath.Join(s.Path(KeyTerritories), "keep"), 0o755))

	next := sampleState()
	next.Residents = append(next.Residents, bundle.Resident{ID: "r2", Name: "João"}, bundle.Resident{ID: "r3", Name: "Rita"})
	next.Logs = append(next.Logs, bundle.AuditLog{ID: "l2", Action: bundle.ActionSync})
	require.Error(t, s.Save(ctx, next))

	got, err := os.ReadFile(s.Path(KeyResidents))
	require.NoError(t, err)
	assert.Equal(t, string(residents), string(got))
	got, err = os.ReadFile(s.Path(KeyLogs))
	require.NoError(t, err)
	assert.Equal(t, string(logs), string(got))

	tmp, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmp)
}

func TestChangeRevert(t *testing.T) {
	dir := t.TempDir()
	s := NewFiles(dir)
	require.NoError(t, os.WriteFile(s.Path(KeyResidents), []byte(`[{"id":"r1"}]`), 0o644))

	t.Run("restores replaced document", func(t *testing.T) {
		c, err := s.stage(KeyResidents, []bundle.Resident{{ID: "r9"}})
		require.NoError(t, err)
		require.NoError(t, c.apply())
		require.NoError(t, c.revert())

		got, err := os.ReadFile(s.Path(KeyResidents))
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"r1"}]`, string(got))
	})

	t.Run("removes created document", func(t *testing.T) {
		c, err := s.stage(KeyLogs, []bundle.AuditLog{{ID: "l1"}})
		require.NoError(t, err)
		require.NoError(t, c.apply())
		require.FileExists(t, s.Path(KeyLogs))
		require.NoError(t, c.revert())
		assert.NoFileExists(t, s.Path(KeyLogs))
	})

	t.Run("restores removed document", func(t *testing.T) {
		c, err := s.stage(KeyResidents, []bundle.Resident(nil))
		require.NoError(t, err)
		require.NoError(t, c.apply())
		assert.NoFileExists(t, s.Path(KeyResidents))
		require.NoError(t, c.revert())
		assert.FileExists(t, s.Path(KeyResidents))
	})

	t.Run("discard drops staged file", func(t *testing.T) {
		c, err := s.stage(KeyTerritories, []bundle.Territory{{ID: "t1"}})
		require.NoError(t, err)
		c.discard()
		tmp, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, tmp)
		assert.NoFileExists(t, s.Path(KeyTerritories))
	})
}

func TestMemory(t *testing.T) {
	ctx := context.Background()

	m := NewMemory(nil)
	b, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &bundle.Bundle{}, b)

	in := sampleState()
	in.Version = "2.5"
	require.NoError(t, m.Save(ctx, in))
	in.Residents[0].Name = "changed"

	out, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Maria", out.Residents[0].Name)
	assert.Empty(t, out.Version)

	ro := NewReadOnly(sampleState())
	assert.ErrorIs(t, ro.Save(ctx, in), errors.ErrReadOnly)
}
