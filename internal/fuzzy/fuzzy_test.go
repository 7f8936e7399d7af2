package fuzzy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPresent_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	err := CheckPresent()
	require.Error(t, err)
}

func TestExternal_Select_UsesConfiguredBin(t *testing.T) {
	t.Parallel()

	// "cat" echoes stdin to stdout, letting us exercise the External
	// wiring without depending on the real fzf binary being installed.
	e := &External{Bin: "cat"}
	got, err := e.Select(context.Background(), []string{"local/api", "dev/api"})

	require.NoError(t, err)
	assert.Equal(t, "local/api\ndev/api", got)
}

func TestExternal_Select_NonZeroExitIsError(t *testing.T) {
	t.Parallel()

	e := &External{Bin: "false"}
	_, err := e.Select(context.Background(), []string{"a"})
	require.Error(t, err)
}
