package v6fs

import (
	ferrors "github.com/awalton3/OS-project6/errors"
)

// In this filesystem's bitmap convention, a set bit (1) means the block is
// free and a clear bit (0) means it's in use.

// allocateBlock returns the smallest free block index, marking it used.
// Smallest-first keeps allocation deterministic, which matters for tests
// that assert on exact block placement.
func (fs *Filesystem) allocateBlock() (int, ferrors.DriverError) {
	for i := 0; i < int(fs.sb.Nblocks); i++ {
		if fs.bitmap.Get(i) {
			fs.bitmap.Set(i, false)
			return i, nil
		}
	}
	return 0, ferrors.ErrDiskFull
}

// freeBlock marks a block free again. Freeing an already-free block is a
// silent no-op.
func (fs *Filesystem) freeBlock(blockno int) {
	fs.bitmap.Set(blockno, true)
}
