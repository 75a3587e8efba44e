package reconciler

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
	"github.com/agentstation/cadastro/pkg/save"
)

func TestMergeIdentity(t *testing.T) {
	local := []bundle.Resident{{ID: "r1", CPF: "111", Name: "A", Neighborhood: "Centro"}}
	incoming := &bundle.Bundle{Residents: []bundle.Resident{{ID: "r9", CPF: "111", Name: "B", Phone: "999"}}}

	result, err := Merge(local, nil, incoming)
	require.NoError(t, err)

	require.Len(t, result.Residents, 1)
	got := result.Residents[0]
	assert.Equal(t, "111", got.CPF)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, "999", got.Phone)
	assert.Equal(t, "Centro", got.Neighborhood, "absent incoming fields keep the local value")
	assert.Equal(t, "r9", got.ID)

	assert.Equal(t, 0, result.New)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, []string{"id", "name", "phone"}, result.Changes[0].Fields)
}

func TestMergeUnion(t *testing.T) {
	local := []bundle.Resident{{CPF: "111"}}
	incoming := &bundle.Bundle{Residents: []bundle.Resident{{CPF: "222"}}}

	result, err := Merge(local, nil, incoming)
	require.NoError(t, err)

	assert.Len(t, result.Residents, 2)
	assert.Equal(t, 1, result.New)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, "Sync completed! 1 new records and 0 updates applied.", result.Summary())
	assert.True(t, result.HasChanges())
}

func TestMergeRepeatedIncomingCPF(t *testing.T) {
	incoming := &bundle.Bundle{Residents: []bundle.Resident{
		{CPF: "333", Name: "First"},
		{CPF: "333", Phone: "123"},
	}}

	result, err := Merge(nil, nil, incoming)
	require.NoError(t, err)

	require.Len(t, result.Residents, 1)
	assert.Equal(t, "First", result.Residents[0].Name)
	assert.Equal(t, "123", result.Residents[0].Phone)
	assert.Equal(t, 1, result.New)
	assert.Equal(t, 1, result.Updated)
}

func TestMergeEducationReplacedWhole(t *testing.T) {
	local := []bundle.Resident{{CPF: "111", Education: &bundle.Education{IsStudying: true, SchoolName: "EM Central", Grade: "5"}}}
	incoming := &bundle.Bundle{Residents: []bundle.Resident{{CPF: "111", Education: &bundle.Education{ReasonNotStudying: "Work"}}}}

	result, err := Merge(local, nil, incoming)
	require.NoError(t, err)

	assert.Equal(t, &bundle.Education{ReasonNotStudying: "Work"}, result.Residents[0].Education)
	assert.NotSame(t, incoming.Residents[0].Education, result.Residents[0].Education)
}

func TestMergeEmptyFieldsKeepLocal(t *testing.T) {
	local := []bundle.Resident{{CPF: "111", Name: "Maria", Phone: "8199", Email: "maria@example.com"}}
	incoming := &bundle.Bundle{Residents: []bundle.Resident{{CPF: "111", Name: "Maria", Phone: "", Email: ""}}}

	result, err := Merge(local, nil, incoming)
	require.NoError(t, err)

	got := result.Residents[0]
	assert.Equal(t, "8199", got.Phone)
	assert.Equal(t, "maria@example.com", got.Email)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Changes[0].Fields)
}

func TestMergeTerritories(t *testing.T) {
	local := []bundle.Territory{{ID: "t1", Street: "Main", Number: "10"}}
	incoming := &bundle.Bundle{
		Residents: []bundle.Resident{},
		Territories: []bundle.Territory{
			{ID: "t2", Street: "Main", Number: "10", Block: "X"},
			{ID: "t3", Street: "Main", Number: "12"},
			{ID: "t4", Street: "Main", Number: "12", Lot: "7"},
		},
	}

	result, err := Merge(nil, local, incoming)
	require.NoError(t, err)

	want := []bundle.Territory{
		{ID: "t1", Street: "Main", Number: "10"},
		{ID: "t3", Street: "Main", Number: "12"},
	}
	if diff := cmp.Diff(want, result.Territories); diff != "" {
		t.Errorf("territories mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, result.TerritoriesAdded)
	assert.Equal(t, 2, result.TerritoriesSkipped)

	t.Run("neighborhood is not part of the identity", func(t *testing.T) {
		incoming := &bundle.Bundle{
			Residents:   []bundle.Resident{},
			Territories: []bundle.Territory{{Street: "Main", Number: "10", Neighborhood: "Elsewhere"}},
		}
		result, err := Merge(nil, local, incoming)
		require.NoError(t, err)
		assert.Len(t, result.Territories, 1)
	})
}

func TestMergeRejection(t *testing.T) {
	local := []bundle.Resident{{ID: "r1", CPF: "111", Name: "A"}}
	localTerritories := []bundle.Territory{{ID: "t1", Street: "Main", Number: "10"}}
	snapshot := bundle.CloneResidents(local)

	decoded, err := bundle.Decode([]byte(`{"residents": "not-an-array", "territories": [{"street": "B"}]}`), save.FormatJSON)
	require.NoError(t, err)

	for name, incoming := range map[string]*bundle.Bundle{
		"not an array": decoded,
		"absent":       {Territories: []bundle.Territory{{Street: "B"}}},
		"nil bundle":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := Merge(local, localTerritories, incoming)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsFormatError(err))
			assert.Equal(t, snapshot, local)
			assert.Len(t, localTerritories, 1)
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	local := []bundle.Resident{{CPF: "111", Name: "A", Education: &bundle.Education{Grade: "1"}}}
	incoming := &bundle.Bundle{Residents: []bundle.Resident{{CPF: "111", Name: "B", Education: &bundle.Education{Grade: "2"}}}}

	result, err := Merge(local, nil, incoming)
	require.NoError(t, err)

	result.Residents[0].Education.Grade = "9"
	assert.Equal(t, "A", local[0].Name)
	assert.Equal(t, "1", local[0].Education.Grade)
	assert.Equal(t, "2", incoming.Residents[0].Education.Grade)
}

func TestMergeEmptyIncoming(t *testing.T) {
	local := []bundle.Resident{{CPF: "111"}}

	result, err := Merge(local, nil, &bundle.Bundle{Residents: []bundle.Resident{}})
	require.NoError(t, err)

	assert.Equal(t, local, result.Residents)
	assert.NotNil(t, result.Territories)
	assert.False(t, result.HasChanges())
}

func TestReconciler(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	t.Run("digits key", func(t *testing.T) {
		r, err := New(WithKey(CPFDigitsKey))
		require.NoError(t, err)

		local := []bundle.Resident{{CPF: "529.982.247-25", Name: "Maria"}}
		incoming := &bundle.Bundle{Residents: []bundle.Resident{{CPF: "52998224725", Phone: "1"}}}

		result, err := r.Merge(ctx, local, nil, incoming)
		require.NoError(t, err)
		assert.Len(t, result.Residents, 1)
		assert.Equal(t, 1, result.Updated)
		tl.AssertContains(t, "Merge finished")
	})

	t.Run("default key keeps formats apart", func(t *testing.T) {
		r, err := New()
		require.NoError(t, err)

		local := []bundle.Resident{{CPF: "529.982.247-25"}}
		incoming := &bundle.Bundle{Residents: []bundle.Resident{{CPF: "52998224725"}}}

		result, err := r.Merge(ctx, local, nil, incoming)
		require.NoError(t, err)
		assert.Len(t, result.Residents, 2)
	})

	t.Run("rejection is logged", func(t *testing.T) {
		r, err := New()
		require.NoError(t, err)

		_, err = r.Merge(ctx, nil, nil, &bundle.Bundle{})
		require.Error(t, err)
		tl.AssertContains(t, "Incoming bundle rejected")
	})

	t.Run("nil key", func(t *testing.T) {
		_, err := New(WithKey(nil))
		assert.True(t, errors.IsValidationError(err))
	})
}
