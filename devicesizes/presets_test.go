package devicesizes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetKnownPreset(t *testing.T) {
	preset, err := Get("default")
	require.NoError(t, err)
	require.Equal(t, 4096, preset.Blocks)
}

func TestGetUnknownPresetErrors(t *testing.T) {
	_, err := Get("nonexistent")
	require.Error(t, err)
}

func TestListIsSortedAndNonEmpty(t *testing.T) {
	all := List()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		require.LessOrEqual(t, all[i-1].Slug, all[i].Slug)
	}
}
