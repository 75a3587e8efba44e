package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/save"
)

func TestDecode(t *testing.T) {
	t.Run("full bundle", func(t *testing.T) {
		data := []byte(`{
			"version": "2.5",
			"timestamp": "2024-05-01T12:00:00.000Z",
			"institution": {"name": "Prefeitura", "city": "Recife", "systemMode": "SERVER_CENTRAL"},
			"agents": [{"id": "a1", "name": "Ana", "role": "Admin"}],
			"residents": [{
				"id": "r1", "name": "Maria", "cpf": "529.982.247-25",
				"education": {"isStudying": true, "schoolName": "EM Central"}
			}],
			"logs": [{"id": "l1", "action": "SYNC", "targetType": "SYSTEM"}],
			"territories": [{"id": "t1", "street": "Rua A", "number": "10"}],
			"config": {"autoBackupEnabled": true, "frequency": "weekly", "remindMe": false}
		}`)

		b, err := Decode(data, save.FormatJSON)
		require.NoError(t, err)

		assert.Equal(t, "2.5", b.Version)
		require.NotNil(t, b.Institution)
		assert.Equal(t, "Recife", b.Institution.City)
		assert.Equal(t, ModeServer, b.Institution.SystemMode)
		require.Len(t, b.Residents, 1)
		require.NotNil(t, b.Residents[0].Education)
		assert.True(t, b.Residents[0].Education.IsStudying)
		assert.Equal(t, "EM Central", b.Residents[0].Education.SchoolName)
		assert.Equal(t, ActionSync, b.Logs[0].Action)
		assert.Equal(t, AddressKey{Street: "Rua A", Number: "10"}, b.Territories[0].Key())
		require.NotNil(t, b.Config)
		assert.Equal(t, FrequencyWeekly, b.Config.Frequency)
		assert.False(t, b.Config.RemindMe)
	})

	t.Run("invalid syntax is a parse error", func(t *testing.T) {
		_, err := Decode([]byte(`{"residents": [`), save.FormatJSON)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
		assert.Contains(t, err.Error(), "valid export")
	})

	t.Run("non-object document is an empty bundle", func(t *testing.T) {
		for _, doc := range []string{`[]`, `"text"`, `42`, `null`} {
			b, err := Decode([]byte(doc), save.FormatJSON)
			require.NoError(t, err, doc)
			assert.Equal(t, &Bundle{}, b, doc)
		}
	})

	t.Run("residents of the wrong shape are absent", func(t *testing.T) {
		b, err := Decode([]byte(`{"residents": "none"}`), save.FormatJSON)
		require.NoError(t, err)
		assert.Nil(t, b.Residents)

		b, err = Decode([]byte(`{"residents": {"id": "r1"}}`), save.FormatJSON)
		require.NoError(t, err)
		assert.Nil(t, b.Residents)
	})

	t.Run("empty residents array stays present", func(t *testing.T) {
		b, err := Decode([]byte(`{"residents": []}`), save.FormatJSON)
		require.NoError(t, err)
		assert.NotNil(t, b.Residents)
		assert.Empty(t, b.Residents)
	})

	t.Run("scalars are coerced and composites blanked", func(t *testing.T) {
		b, err := Decode([]byte(`{"residents": [{
			"name": {"first": "Maria"},
			"number": 42,
			"cpf": 52998224725,
			"phone": ["1", "2"],
			"education": {"isStudying": "true", "grade": 7}
		}, "junk"]}`), save.FormatJSON)
		require.NoError(t, err)
		require.Len(t, b.Residents, 2)

		r := b.Residents[0]
		assert.Empty(t, r.Name)
		assert.Equal(t, "42", r.Number)
		assert.Equal(t, "52998224725", r.CPF)
		assert.Empty(t, r.Phone)
		require.NotNil(t, r.Education)
		assert.True(t, r.Education.IsStudying)
		assert.Equal(t, "7", r.Education.Grade)

		assert.Equal(t, Resident{}, b.Residents[1])
	})

	t.Run("education that is not an object is absent", func(t *testing.T) {
		b, err := Decode([]byte(`{"residents": [{"education": "yes"}]}`), save.FormatJSON)
		require.NoError(t, err)
		assert.Nil(t, b.Residents[0].Education)
	})

	t.Run("yaml", func(t *testing.T) {
		data := []byte("version: \"2.5\"\nresidents:\n  - name: Maria\n    cpf: \"111.444.777-35\"\n")
		b, err := Decode(data, save.FormatYAML)
		require.NoError(t, err)
		require.Len(t, b.Residents, 1)
		assert.Equal(t, "111.444.777-35", b.Residents[0].CPF)
	})
}

func TestDecodeLegacyLabels(t *testing.T) {
	data := []byte(`{
		"institution": {"systemMode": "ESTACAO_COLETA"},
		"agents": [{"role": "Administrador (Master)"}, {"role": "Usuário Comum"}],
		"residents": [{"relationship": "Titular", "civilStatus": "União Estável"}, {"relationship": "Primo"}],
		"logs": [{"action": "SINCRONIZAR", "targetType": "RESIDENTE"}]
	}`)

	b, err := Decode(data, save.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, ModeStation, b.Institution.SystemMode)
	assert.Equal(t, RoleAdmin, b.Agents[0].Role)
	assert.Equal(t, RoleOperator, b.Agents[1].Role)
	assert.Equal(t, RelationshipHead, b.Residents[0].Relationship)
	assert.Equal(t, CivilStatusStableUnion, b.Residents[0].CivilStatus)
	assert.Equal(t, Relationship("Primo"), b.Residents[1].Relationship)
	assert.Equal(t, ActionSync, b.Logs[0].Action)
	assert.Equal(t, TargetResident, b.Logs[0].TargetType)
}

func TestDecodeFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := DecodeFile(ctx, filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
	})

	t.Run("corrupt file names the path", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		_, err := DecodeFile(ctx, path)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
		assert.Contains(t, err.Error(), path)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := DecodeFile(cctx, filepath.Join(dir, "any.json"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(dir, "bundle.yaml")
		in := &Bundle{
			Version:   "2.5",
			Residents: []Resident{{ID: "r1", Name: "Maria", CPF: "111.444.777-35"}},
		}
		require.NoError(t, Write(in, save.WithPath(path)))

		out, err := DecodeFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, in.Residents, out.Residents)
	})
}
