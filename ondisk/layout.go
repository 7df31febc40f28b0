// Package ondisk implements the block codec: it reinterprets a raw
// BlockSize-byte buffer as a superblock, a slice of inodes, or a pointer
// array. This is done with typed decoders over a byte buffer rather than
// unsafe aliasing: encoding/binary serializes into and out of plain Go
// structs.
package ondisk

const (
	// Magic is the fixed sentinel identifying a formatted disk: the bit
	// pattern 0xF0F03410, held as the signed 32-bit value it decodes to.
	Magic int32 = -0x0F0FCBF0
	// BlockSize is the fixed block size in bytes.
	BlockSize = 4096
	// InodesPerBlock (I) is the number of inode records in one inode block.
	InodesPerBlock = 128
	// DirectPointers (D) is the number of direct block pointers in an inode.
	DirectPointers = 5
	// PointersPerBlock (P) is the number of 32-bit entries in an indirect
	// block: BlockSize / 4.
	PointersPerBlock = BlockSize / 4
	// InodeSize is the on-disk size of one inode record, in bytes:
	// isvalid(4) + size(4) + direct[5](20) + indirect(4).
	InodeSize = 32
	// MaxFileSize is the hard maximum file size addressable through
	// direct and indirect pointers: (D+P)*BlockSize bytes.
	MaxFileSize = (DirectPointers + PointersPerBlock) * BlockSize
)

// init-time sanity check: a block must hold exactly InodesPerBlock inodes
// with no slack. (PointersPerBlock is BlockSize/4 by definition.)
var _ = func() bool {
	if BlockSize/InodeSize != InodesPerBlock {
		panic("ondisk: BlockSize/InodeSize must equal InodesPerBlock")
	}
	return true
}()
