package v6fs

import (
	"fmt"
	"testing"

	"github.com/awalton3/OS-project6/blockdev"
	"github.com/stretchr/testify/require"
)

// failAtBlockDevice wraps a Device and fails every WriteBlock call aimed at
// failBlock, simulating the DeviceIOError spec.md §7 says a real disk can surface.
type failAtBlockDevice struct {
	blockdev.Device
	failBlock int
}

func (d *failAtBlockDevice) WriteBlock(blockno int, buf []byte) error {
	if blockno == d.failBlock {
		return fmt.Errorf("simulated write failure at block %d", blockno)
	}
	return d.Device.WriteBlock(blockno, buf)
}

// If the final storeInode of a Write call fails, every block this call
// newly linked into the inode must be released back to the bitmap -- it
// was durably written to the data region, but nothing on disk references
// it, so it can't stay marked used forever.
func TestWriteReleasesNewlyLinkedBlocksWhenStoreInodeFails(t *testing.T) {
	fs := mountedFixture(t, 64)
	inum := fs.Create()
	require.NotZero(t, inum)

	before := make([]bool, fs.sb.Nblocks)
	for i := range before {
		before[i] = fs.bitmap.Get(i)
	}

	// The final storeInode writes the inode's home block; make exactly
	// that write fail, after the data block itself has already landed.
	fs.device = &failAtBlockDevice{Device: fs.device, failBlock: iblockOf(inum)}

	n := fs.Write(inum, []byte("hello"), 5, 0)
	require.Zero(t, n)

	for i := range before {
		require.Equal(t, before[i], fs.bitmap.Get(i), "block %d bitmap state changed after failed write", i)
	}

	require.Equal(t, 0, fs.GetSize(inum))
}
