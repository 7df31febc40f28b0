package ondisk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInodeEncodeDecodeRoundTrip(t *testing.T) {
	inode := Inode{
		IsValid:  1,
		Size:     12345,
		Direct:   [DirectPointers]int32{2, 3, 0, 0, 0},
		Indirect: 7,
	}
	encoded := EncodeInode(inode)
	require.Len(t, encoded, InodeSize)

	decoded, err := DecodeInode(encoded)
	require.NoError(t, err)
	require.Equal(t, inode, decoded)
}

func TestDecodeInodeRejectsWrongSize(t *testing.T) {
	_, err := DecodeInode(make([]byte, InodeSize-1))
	require.Error(t, err)
}

func TestInodeBlockEncodeDecodeRoundTrip(t *testing.T) {
	var inodes [InodesPerBlock]Inode
	inodes[0] = Inode{IsValid: 1, Size: 4096, Direct: [DirectPointers]int32{9}}
	inodes[InodesPerBlock-1] = Inode{IsValid: 1, Size: 1}

	block := EncodeInodeBlock(inodes)
	require.Len(t, block, BlockSize)

	decoded, err := DecodeInodeBlock(block)
	require.NoError(t, err)
	require.Equal(t, inodes, decoded)
}

func TestDecodeInodeBlockRejectsWrongSize(t *testing.T) {
	_, err := DecodeInodeBlock(make([]byte, BlockSize-1))
	require.Error(t, err)
}
