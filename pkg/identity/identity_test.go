package identity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/pkg/identity"
)

func TestUUIDGenerator(t *testing.T) {
	gen := identity.Default()

	a, b := gen.NewID(), gen.NewID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	assert.Len(t, gen.Suffix(4), 4)
	assert.Empty(t, gen.Suffix(0))
	assert.Len(t, gen.Suffix(100), 32)
}

func TestSequence(t *testing.T) {
	seq := &identity.Sequence{Prefix: "res"}
	assert.Equal(t, "res-1", seq.NewID())
	assert.Equal(t, "res-2", seq.NewID())
	assert.Equal(t, "0003", seq.Suffix(4))
	assert.Equal(t, "res-4", seq.NewID())
}

func TestClockFormatting(t *testing.T) {
	at := time.Date(2024, 5, 1, 13, 45, 0, 123_000_000, time.FixedZone("BRT", -3*3600))
	clock := identity.FixedClock(at)

	assert.Equal(t, "2024-05-01T16:45:00.123Z", identity.Timestamp(clock()))
	assert.Equal(t, "2024-05-01", identity.Date(clock()))

	parsed, err := identity.ParseTimestamp("2024-05-01T16:45:00.123Z")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))

	parsed, err = identity.ParseTimestamp("2024-05-01T16:45:00Z")
	require.NoError(t, err)
	assert.Equal(t, 16, parsed.Hour())

	_, err = identity.ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestSystemClockIsUTC(t *testing.T) {
	now := identity.SystemClock()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"formatted valid", "529.982.247-25", true},
		{"digits only valid", "52998224725", true},
		{"wrong check digit", "529.982.247-24", false},
		{"repeated digits", "111.111.111-11", false},
		{"placeholder", "000.000.000-00", false},
		{"too short", "123", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, identity.ValidCPF(tt.cpf))
		})
	}
}

func TestCPFHelpers(t *testing.T) {
	assert.Equal(t, "52998224725", identity.Digits(" 529.982.247-25 "))
	assert.Equal(t, "529.982.247-25", identity.FormatCPF("52998224725"))
	assert.Equal(t, "12-3", identity.FormatCPF("12-3"))
	assert.True(t, identity.IsPlaceholderCPF("000.000.000-00"))
	assert.True(t, identity.IsPlaceholderCPF(""))
	assert.False(t, identity.IsPlaceholderCPF("529.982.247-25"))
}
