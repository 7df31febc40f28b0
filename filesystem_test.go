package v6fs_test

import (
	"bytes"
	"testing"

	v6fs "github.com/awalton3/OS-project6"
	"github.com/awalton3/OS-project6/ondisk"
	"github.com/awalton3/OS-project6/testutil"
	"github.com/stretchr/testify/require"
)

// E1 — format fresh.
func TestFormatFresh(t *testing.T) {
	dev := testutil.NewDevice(20)
	fs := v6fs.New(dev)
	require.NoError(t, fs.Format())

	buf := make([]byte, ondisk.BlockSize)
	require.NoError(t, dev.ReadBlock(0, buf))
	sb, err := ondisk.DecodeSuperblock(buf)
	require.NoError(t, err)
	require.Equal(t, int32(ondisk.Magic), sb.Magic)
	require.Equal(t, int32(2), sb.NinodeBlocks)
	require.Equal(t, int32(256), sb.Ninodes)
}

func TestMountWithoutFormatFails(t *testing.T) {
	fs := v6fs.New(testutil.NewDevice(20))
	require.Error(t, fs.Mount())
	require.False(t, fs.Mounted())
}

// E2 — double mount rejected.
func TestDoubleMountRejected(t *testing.T) {
	fs := testutil.NewMounted(t, 20)
	require.Error(t, fs.Mount())
}

func TestDoubleFormatWhileMountedRejected(t *testing.T) {
	fs := testutil.NewMounted(t, 20)
	require.Error(t, fs.Format())
}

// E3 — create/delete symmetry.
func TestCreateDeleteSymmetry(t *testing.T) {
	fs := testutil.NewMounted(t, 20)

	inum := fs.Create()
	require.Equal(t, 1, inum)
	require.Equal(t, 0, fs.GetSize(inum))

	require.NoError(t, fs.Delete(inum))
	require.Equal(t, -1, fs.GetSize(inum))

	again := fs.Create()
	require.Equal(t, 1, again)
}

// E4 — small write/read.
func TestSmallWriteRead(t *testing.T) {
	fs := testutil.NewMounted(t, 20)
	inum := fs.Create()
	require.NotZero(t, inum)

	n := fs.Write(inum, []byte("hello"), 5, 0)
	require.Equal(t, 5, n)
	require.Equal(t, 5, fs.GetSize(inum))

	out := make([]byte, 5)
	got := fs.Read(inum, out, 5, 0)
	require.Equal(t, 5, got)
	require.Equal(t, "hello", string(out))
}

// E5 — cross-block write.
func TestCrossBlockWrite(t *testing.T) {
	fs := testutil.NewMounted(t, 64)
	inum := fs.Create()

	pattern := make([]byte, 2*ondisk.BlockSize)
	for i := range pattern {
		pattern[i] = byte(i % 251)
	}

	n := fs.Write(inum, pattern, len(pattern), 0)
	require.Equal(t, len(pattern), n)
	require.Equal(t, len(pattern), fs.GetSize(inum))

	out := make([]byte, len(pattern))
	got := fs.Read(inum, out, len(pattern), 0)
	require.Equal(t, len(pattern), got)
	require.True(t, bytes.Equal(pattern, out))
}

// E6 — indirect engagement.
func TestIndirectEngagement(t *testing.T) {
	fs := testutil.NewMounted(t, 64)
	inum := fs.Create()

	size := (ondisk.DirectPointers + 1) * ondisk.BlockSize
	data := bytes.Repeat([]byte{0x5A}, size)

	n := fs.Write(inum, data, size, 0)
	require.Equal(t, size, n)

	out := make([]byte, size)
	require.Equal(t, size, fs.Read(inum, out, size, 0))
	require.True(t, bytes.Equal(data, out))
}

// E7 — disk full.
func TestDiskFullReturnsPartialCount(t *testing.T) {
	// 4 total blocks: block 0 (superblock) + 1 inode block leaves 2 data
	// blocks free. A write larger than that must stop short.
	fs := testutil.NewMounted(t, 4)
	inum := fs.Create()
	require.NotZero(t, inum)

	big := bytes.Repeat([]byte{0x42}, 10*ondisk.BlockSize)
	n := fs.Write(inum, big, len(big), 0)
	require.Less(t, n, len(big))
	require.Greater(t, n, 0)

	out := make([]byte, n)
	got := fs.Read(inum, out, n, 0)
	require.Equal(t, n, got)
	require.True(t, bytes.Equal(big[:n], out))
}

func TestGetSizeOnInvalidInumber(t *testing.T) {
	fs := testutil.NewMounted(t, 20)
	require.Equal(t, -1, fs.GetSize(0))
	require.Equal(t, -1, fs.GetSize(999))
}

func TestReadWriteRequireMount(t *testing.T) {
	fs := v6fs.New(testutil.NewDevice(20))
	require.Zero(t, fs.Write(1, []byte("x"), 1, 0))
	require.Zero(t, fs.Read(1, make([]byte, 1), 1, 0))
	require.Equal(t, 0, fs.Create())
	require.Equal(t, -1, fs.GetSize(1))
	require.Error(t, fs.Delete(1))
}

func TestSizeMonotonicity(t *testing.T) {
	fs := testutil.NewMounted(t, 20)
	inum := fs.Create()

	prev := fs.GetSize(inum)
	for i := 0; i < 5; i++ {
		fs.Write(inum, []byte("abcdef"), 6, i*6)
		cur := fs.GetSize(inum)
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}
