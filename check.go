package v6fs

import (
	"fmt"

	"github.com/awalton3/OS-project6/ondisk"
	"github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"
)

// isDataBlock reports whether b lies in the data region: strictly past the
// inode blocks and within range.
func (fs *Filesystem) isDataBlock(b int32) bool {
	return b > fs.sb.NinodeBlocks && b < fs.sb.Nblocks
}

// scanAndBuildBitmap reconstructs the in-memory free-block bitmap from the
// on-disk inode table: it scans every valid inode and marks every nonzero
// block it references as used.
//
// It doubles as a mount-time integrity check: every anomaly it finds (an
// out-of-range pointer, a block referenced twice) is collected into a
// *multierror.Error instead of aborting the scan, so one corrupt inode
// doesn't hide problems with the rest of the table. The accumulated errors
// are informational -- mount still succeeds as long as the superblock
// itself is sound; recovery from a partially corrupt image is re-mount and
// rescan.
func (fs *Filesystem) scanAndBuildBitmap() *multierror.Error {
	var result *multierror.Error

	nblocks := int(fs.sb.Nblocks)
	bm := bitmap.New(nblocks)

	// Block 0 (superblock) and the inode blocks are permanently in use.
	for i := 1 + int(fs.sb.NinodeBlocks); i < nblocks; i++ {
		bm.Set(i, true)
	}

	// markUsed reports whether b was actually a valid, not-yet-claimed data
	// block; callers that need to dereference b themselves (the indirect
	// block read below) must check this before doing so -- an anomaly here
	// does not stop the scan, but it must stop that one read.
	markUsed := func(b int32, context string) bool {
		if !fs.isDataBlock(b) {
			result = multierror.Append(result, fmt.Errorf(
				"%s: block %d is not a valid data block", context, b,
			))
			return false
		}
		if !bm.Get(int(b)) {
			result = multierror.Append(result, fmt.Errorf(
				"%s: block %d is referenced more than once", context, b,
			))
			return false
		}
		bm.Set(int(b), false)
		return true
	}

	for inum := 1; inum < int(fs.sb.Ninodes); inum++ {
		inode, err := fs.loadInode(inum)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf(
				"inode %d: %s", inum, err.Error(),
			))
			continue
		}
		if inode.IsValid == 0 {
			continue
		}

		for k, ptr := range inode.Direct {
			if ptr == 0 {
				continue
			}
			markUsed(ptr, fmt.Sprintf("inode %d direct[%d]", inum, k))
		}

		if inode.Indirect == 0 {
			continue
		}
		if !markUsed(inode.Indirect, fmt.Sprintf("inode %d indirect", inum)) {
			continue
		}

		block, ioErr := fs.readBlock(int(inode.Indirect))
		if ioErr != nil {
			result = multierror.Append(result, fmt.Errorf(
				"inode %d indirect block %d: %s", inum, inode.Indirect, ioErr,
			))
			continue
		}
		pointers, decErr := ondisk.DecodePointerBlock(block)
		if decErr != nil {
			result = multierror.Append(result, fmt.Errorf(
				"inode %d indirect block %d: %s", inum, inode.Indirect, decErr,
			))
			continue
		}
		for i, ptr := range pointers {
			if ptr == 0 {
				continue
			}
			markUsed(ptr, fmt.Sprintf("inode %d indirect[%d]", inum, i))
		}
	}

	fs.bitmap = bm
	return result
}
