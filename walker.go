package v6fs

import (
	ferrors "github.com/awalton3/OS-project6/errors"
	"github.com/awalton3/OS-project6/ondisk"
)

// resolveForRead translates logical block index L into a physical block
// number for reading. A zero result means "hole", treated as end-of-file
// by the caller.
func (fs *Filesystem) resolveForRead(inode ondisk.Inode, logical int) (int32, ferrors.DriverError) {
	if logical < ondisk.DirectPointers {
		return inode.Direct[logical], nil
	}

	lp := logical - ondisk.DirectPointers
	if lp >= ondisk.PointersPerBlock || inode.Indirect == 0 {
		return 0, nil
	}
	// A corrupted indirect pointer (post-crash garbage, or out of the
	// device's range entirely) is treated as a hole rather than handed to
	// the device -- the device panics on an out-of-range block number.
	if !fs.isDataBlock(inode.Indirect) {
		return 0, nil
	}

	block, err := fs.readBlock(int(inode.Indirect))
	if err != nil {
		return 0, ferrors.ErrIOFailed.WrapError(err)
	}
	pointers, decErr := ondisk.DecodePointerBlock(block)
	if decErr != nil {
		return 0, ferrors.ErrCorrupted.WrapError(decErr)
	}
	return pointers[lp], nil
}

// resolveForWrite is resolveForRead's counterpart for writes: it allocates
// whatever's missing to address logical block L, mutating inode in place.
//
// Ordering discipline ("allocate-then-link"): a block is only marked used
// in the bitmap once it is about to be linked into the inode or an
// indirect block; if writing the link back to disk fails, the bitmap bit
// is released immediately so in-memory bookkeeping never drifts from
// on-disk reality across a failed link.
func (fs *Filesystem) resolveForWrite(inode *ondisk.Inode, logical int) (int32, ferrors.DriverError) {
	if logical < ondisk.DirectPointers {
		if inode.Direct[logical] != 0 {
			return inode.Direct[logical], nil
		}

		block, err := fs.allocateBlock()
		if err != nil {
			return 0, err
		}
		inode.Direct[logical] = int32(block)
		return int32(block), nil
	}

	lp := logical - ondisk.DirectPointers
	if lp >= ondisk.PointersPerBlock {
		return 0, ferrors.ErrMaxFileSize
	}

	var pointers [ondisk.PointersPerBlock]int32
	if inode.Indirect == 0 {
		iblockNum, err := fs.allocateBlock()
		if err != nil {
			return 0, err
		}
		if werr := fs.writeBlock(iblockNum, ondisk.EncodePointerBlock(pointers)); werr != nil {
			fs.freeBlock(iblockNum)
			return 0, ferrors.ErrIOFailed.WrapError(werr)
		}
		inode.Indirect = int32(iblockNum)
	} else if !fs.isDataBlock(inode.Indirect) {
		// A corrupted, out-of-range indirect pointer must not be handed to
		// the device -- reading or writing through it could panic or stomp
		// the superblock/inode table. Surface it as corruption instead.
		return 0, ferrors.ErrCorrupted
	} else {
		block, rerr := fs.readBlock(int(inode.Indirect))
		if rerr != nil {
			return 0, ferrors.ErrIOFailed.WrapError(rerr)
		}
		decoded, decErr := ondisk.DecodePointerBlock(block)
		if decErr != nil {
			return 0, ferrors.ErrCorrupted.WrapError(decErr)
		}
		pointers = decoded
	}

	if pointers[lp] != 0 {
		return pointers[lp], nil
	}

	block, err := fs.allocateBlock()
	if err != nil {
		return 0, err
	}

	pointers[lp] = int32(block)
	if werr := fs.writeBlock(int(inode.Indirect), ondisk.EncodePointerBlock(pointers)); werr != nil {
		fs.freeBlock(block)
		return 0, ferrors.ErrIOFailed.WrapError(werr)
	}
	return int32(block), nil
}
