package ondisk

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// Superblock is the in-memory form of block 0. All fields are stored on
// disk as little-endian 32-bit signed integers.
type Superblock struct {
	Magic        int32
	Nblocks      int32
	NinodeBlocks int32
	Ninodes      int32
}

// NewSuperblock computes the superblock fields for a device of nblocks
// blocks: ninodeblocks = ceil(0.1*N), ninodes = ninodeblocks * InodesPerBlock.
func NewSuperblock(nblocks int) Superblock {
	ninodeBlocks := (nblocks + 9) / 10
	return Superblock{
		Magic:        Magic,
		Nblocks:      int32(nblocks),
		NinodeBlocks: int32(ninodeBlocks),
		Ninodes:      int32(ninodeBlocks * InodesPerBlock),
	}
}

// IsValid reports whether the superblock's magic number matches.
func (sb Superblock) IsValid() bool {
	return sb.Magic == Magic
}

// EncodeSuperblock serializes sb into a full BlockSize-byte block, zero-
// padding everything past the four 32-bit fields. It writes directly into a
// fixed-size buffer via bytewriter rather than growing one.
func EncodeSuperblock(sb Superblock) []byte {
	buf := make([]byte, BlockSize)
	w := bytewriter.New(buf)
	binary.Write(w, binary.LittleEndian, sb.Magic)
	binary.Write(w, binary.LittleEndian, sb.Nblocks)
	binary.Write(w, binary.LittleEndian, sb.NinodeBlocks)
	binary.Write(w, binary.LittleEndian, sb.Ninodes)
	return buf
}

// DecodeSuperblock reads a Superblock out of a BlockSize-byte block.
func DecodeSuperblock(block []byte) (Superblock, error) {
	if len(block) != BlockSize {
		return Superblock{}, fmt.Errorf(
			"superblock buffer must be %d bytes, got %d", BlockSize, len(block),
		)
	}

	var sb Superblock
	r := bytes.NewReader(block)
	binary.Read(r, binary.LittleEndian, &sb.Magic)
	binary.Read(r, binary.LittleEndian, &sb.Nblocks)
	binary.Read(r, binary.LittleEndian, &sb.NinodeBlocks)
	binary.Read(r, binary.LittleEndian, &sb.Ninodes)
	return sb, nil
}
