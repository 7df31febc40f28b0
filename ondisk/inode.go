package ondisk

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// Inode is the in-memory form of one inode record. IsValid is nonzero when
// the slot is in use; Direct holds DirectPointers block numbers (0 =
// unused); Indirect is the indirect block's number, or 0 if none is
// allocated.
type Inode struct {
	IsValid  int32
	Size     int32
	Direct   [DirectPointers]int32
	Indirect int32
}

// rawInode is the wire-format mirror of Inode, used only to get a fixed
// binary.Size() for encoding/binary and to guarantee field order matches
// the on-disk layout exactly.
type rawInode struct {
	IsValid  int32
	Size     int32
	Direct   [DirectPointers]int32
	Indirect int32
}

func init() {
	if binary.Size(rawInode{}) != InodeSize {
		panic(fmt.Sprintf(
			"ondisk: rawInode must serialize to %d bytes, got %d",
			InodeSize, binary.Size(rawInode{}),
		))
	}
}

// EncodeInode serializes a single inode into exactly InodeSize bytes.
func EncodeInode(inode Inode) []byte {
	buf := make([]byte, InodeSize)
	w := bytewriter.New(buf)
	raw := rawInode{
		IsValid:  inode.IsValid,
		Size:     inode.Size,
		Direct:   inode.Direct,
		Indirect: inode.Indirect,
	}
	binary.Write(w, binary.LittleEndian, &raw)
	return buf
}

// DecodeInode deserializes a single InodeSize-byte record.
func DecodeInode(data []byte) (Inode, error) {
	if len(data) != InodeSize {
		return Inode{}, fmt.Errorf(
			"inode record must be %d bytes, got %d", InodeSize, len(data),
		)
	}

	var raw rawInode
	r := bytes.NewReader(data)
	binary.Read(r, binary.LittleEndian, &raw)
	return Inode{
		IsValid:  raw.IsValid,
		Size:     raw.Size,
		Direct:   raw.Direct,
		Indirect: raw.Indirect,
	}, nil
}

// DecodeInodeBlock splits a BlockSize-byte inode block into its
// InodesPerBlock consecutive records.
func DecodeInodeBlock(block []byte) ([InodesPerBlock]Inode, error) {
	var inodes [InodesPerBlock]Inode
	if len(block) != BlockSize {
		return inodes, fmt.Errorf(
			"inode block must be %d bytes, got %d", BlockSize, len(block),
		)
	}

	for i := 0; i < InodesPerBlock; i++ {
		start := i * InodeSize
		inode, err := DecodeInode(block[start : start+InodeSize])
		if err != nil {
			return inodes, err
		}
		inodes[i] = inode
	}
	return inodes, nil
}

// EncodeInodeBlock serializes InodesPerBlock inodes into one BlockSize-byte
// block.
func EncodeInodeBlock(inodes [InodesPerBlock]Inode) []byte {
	block := make([]byte, 0, BlockSize)
	for _, inode := range inodes {
		block = append(block, EncodeInode(inode)...)
	}
	return block
}
