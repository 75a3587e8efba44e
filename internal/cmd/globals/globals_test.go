package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFlagsAndParse(t *testing.T) {
	root := &cobra.Command{Use: "cadastro"}
	AddFlags(root, Flags{Output: "table", DataDir: "/var/lib/cadastro"})

	child := &cobra.Command{Use: "state", RunE: func(*cobra.Command, []string) error { return nil }}
	root.AddCommand(child)

	root.SetArgs([]string{"state", "-o", "json", "--quiet"})
	require.NoError(t, root.Execute())

	got := Parse(child)
	assert.Equal(t, &Flags{Output: "json", Quiet: true, DataDir: "/var/lib/cadastro"}, got)
}

func TestParseWithoutRootFlags(t *testing.T) {
	assert.Equal(t, &Flags{}, Parse(&cobra.Command{Use: "bare"}))
}
