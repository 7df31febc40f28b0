package v6fs

import (
	"testing"

	"github.com/awalton3/OS-project6/ondisk"
	"github.com/stretchr/testify/require"
)

// A corrupted indirect pointer is exactly the kind of post-crash garbage
// mount-time rescan is supposed to tolerate (spec.md §1/§9): it must never
// be handed to the device, which panics on an out-of-range block number.

func TestResolveForReadTreatsCorruptedIndirectAsHole(t *testing.T) {
	fs := mountedFixture(t, 64)

	inode := ondisk.Inode{IsValid: 1, Indirect: int32(fs.sb.Nblocks) + 10}

	physical, err := fs.resolveForRead(inode, ondisk.DirectPointers)
	require.NoError(t, err)
	require.Zero(t, physical)
}

func TestResolveForWriteRejectsCorruptedIndirect(t *testing.T) {
	fs := mountedFixture(t, 64)

	inode := ondisk.Inode{IsValid: 1, Indirect: int32(fs.sb.Nblocks) + 10}

	_, err := fs.resolveForWrite(&inode, ondisk.DirectPointers)
	require.Error(t, err)
}

func TestResolveForReadTreatsNegativeIndirectAsHole(t *testing.T) {
	fs := mountedFixture(t, 64)

	inode := ondisk.Inode{IsValid: 1, Indirect: -7}

	physical, err := fs.resolveForRead(inode, ondisk.DirectPointers)
	require.NoError(t, err)
	require.Zero(t, physical)
}
