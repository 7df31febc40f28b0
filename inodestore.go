package v6fs

import (
	ferrors "github.com/awalton3/OS-project6/errors"
	"github.com/awalton3/OS-project6/ondisk"
)

// iblockOf returns the inode-table block holding inumber inum: k / I + 1.
func iblockOf(inum int) int {
	return inum/ondisk.InodesPerBlock + 1
}

// slotOf returns inum's slot within its home block: k % I.
func slotOf(inum int) int {
	return inum % ondisk.InodesPerBlock
}

// inumOf is the inverse of iblockOf/slotOf: (iblock-1)*I + slot.
func inumOf(iblock, slot int) int {
	return (iblock-1)*ondisk.InodesPerBlock + slot
}

// validInumber reports whether inum is in the addressable range
// 0 < inum < ninodes. Inumber 0 is permanently reserved and invalid.
func (fs *Filesystem) validInumber(inum int) bool {
	return inum > 0 && inum < int(fs.sb.Ninodes)
}

// loadInode reads the home block of inum and returns its slot.
func (fs *Filesystem) loadInode(inum int) (ondisk.Inode, ferrors.DriverError) {
	block, err := fs.readBlock(iblockOf(inum))
	if err != nil {
		return ondisk.Inode{}, ferrors.ErrIOFailed.WrapError(err)
	}

	inodes, decErr := ondisk.DecodeInodeBlock(block)
	if decErr != nil {
		return ondisk.Inode{}, ferrors.ErrCorrupted.WrapError(decErr)
	}
	return inodes[slotOf(inum)], nil
}

// storeInode reads the home block, overwrites inum's slot, and writes the
// block back.
func (fs *Filesystem) storeInode(inum int, inode ondisk.Inode) ferrors.DriverError {
	iblock := iblockOf(inum)
	block, err := fs.readBlock(iblock)
	if err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}

	inodes, decErr := ondisk.DecodeInodeBlock(block)
	if decErr != nil {
		return ferrors.ErrCorrupted.WrapError(decErr)
	}

	inodes[slotOf(inum)] = inode
	if err := fs.writeBlock(iblock, ondisk.EncodeInodeBlock(inodes)); err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}
	return nil
}
