package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cadastro/internal/cmd/cmdtest"
	"github.com/agentstation/cadastro/internal/report"
	"github.com/agentstation/cadastro/pkg/bundle"
)

func TestHealth(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	tests := []struct {
		name    string
		args    []string
		score   report.Score
		invalid int
	}{
		{"lenient", nil, report.ScoreExcellent, 0},
		{"strict", []string{"--strict"}, report.ScoreAttention, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "")), append([]string{"health"}, tt.args...)...)
			require.NoError(t, err)

			var got report.Health
			require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, 2, got.Residents)
			assert.Equal(t, tt.invalid, got.InvalidCPF)
		})
	}
}

func TestHealthEmpty(t *testing.T) {
	reg := cmdtest.Registry(t, &bundle.Bundle{})

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "")), "health")
	require.NoError(t, err)

	var got report.Health
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, report.ScoreEmpty, got.Score)
}

func TestStats(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "")), "stats")
	require.NoError(t, err)

	var got report.Stats
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, 2, got.Residents)
	assert.Equal(t, 1, got.Households)
	assert.Equal(t, 1, got.Students)
	assert.Equal(t, 1, got.Minors)
	assert.Equal(t, 1, got.Territories)
}

func TestCSV(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "")), "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "\ufeffName,"))
	assert.Contains(t, lines[1], "Maria Silva")
}

func TestCSVToFile(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())
	path := filepath.Join(t.TempDir(), "residents.csv")

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "")), "csv", "--file", path)
	require.NoError(t, err)
	assert.Empty(t, res.Stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "João Silva")
}

func TestMarkdown(t *testing.T) {
	reg := cmdtest.Registry(t, cmdtest.ServerState())

	res, err := cmdtest.Run(t, NewCommand(cmdtest.App(reg, "")), "md")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "# PREFEITURA")
	assert.Contains(t, res.Stdout, "SERVER_CENTRAL")
}
