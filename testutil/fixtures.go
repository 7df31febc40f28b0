// Package testutil builds small in-memory fixtures for exercising the
// filesystem without a real disk image, the same role testing/images.go
// played for loading canned disk images: back a device with a plain byte
// slice via bytesextra and hand it to the code under test.
package testutil

import (
	"testing"

	v6fs "github.com/awalton3/OS-project6"
	"github.com/awalton3/OS-project6/blockdev"
	"github.com/stretchr/testify/require"
)

// NewDevice returns a fresh, all-zero in-memory device of nblocks blocks.
func NewDevice(nblocks int) blockdev.Device {
	return blockdev.NewMemoryDevice(nblocks)
}

// NewMounted formats and mounts a fresh device of nblocks blocks, failing
// the test immediately if either step errors.
func NewMounted(t *testing.T, nblocks int) *v6fs.Filesystem {
	t.Helper()

	fs := v6fs.New(NewDevice(nblocks))
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Mount())
	return fs
}
