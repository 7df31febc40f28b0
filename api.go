package v6fs

import (
	ferrors "github.com/awalton3/OS-project6/errors"
	"github.com/awalton3/OS-project6/ondisk"
)

// Format initializes a fresh on-disk filesystem over the device: a
// superblock sized for the device's block count, and every inode slot
// cleared to unused. The canonical policy is reject iff mounted;
// reformatting an already-formatted-but-unmounted device is permitted.
func (fs *Filesystem) Format() ferrors.DriverError {
	if fs.mounted {
		return ferrors.ErrAlreadyMounted
	}

	sb := ondisk.NewSuperblock(fs.device.Size())
	if err := fs.writeBlock(0, ondisk.EncodeSuperblock(sb)); err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}

	var empty [ondisk.InodesPerBlock]ondisk.Inode
	blank := ondisk.EncodeInodeBlock(empty)
	for iblock := 1; iblock <= int(sb.NinodeBlocks); iblock++ {
		if err := fs.writeBlock(iblock, blank); err != nil {
			return ferrors.ErrIOFailed.WrapError(err)
		}
	}

	return nil
}

// Mount validates the on-disk superblock and rebuilds the in-memory
// free-block bitmap by scanning the inode table. Anomalies surfaced by the
// scan (out-of-range or doubly-referenced blocks) do not prevent mount --
// they're available to the caller via LastScanErrors for diagnosis.
func (fs *Filesystem) Mount() ferrors.DriverError {
	if fs.mounted {
		return ferrors.ErrAlreadyMounted
	}

	block, err := fs.readBlock(0)
	if err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}
	sb, decErr := ondisk.DecodeSuperblock(block)
	if decErr != nil {
		return ferrors.ErrCorrupted.WrapError(decErr)
	}
	if !sb.IsValid() {
		return ferrors.ErrBadMagic
	}

	fs.sb = sb
	fs.scanErrors = fs.scanAndBuildBitmap()
	fs.mounted = true
	return nil
}

// LastScanErrors returns whatever inconsistencies the most recent mount's
// scan found, or nil if the table was clean.
func (fs *Filesystem) LastScanErrors() error {
	if fs.scanErrors == nil || fs.scanErrors.Len() == 0 {
		return nil
	}
	return fs.scanErrors
}

// Create allocates the first free inode slot, initializes it to an empty
// file, and returns its inumber. It returns 0 when no slot is free.
// Inumber 0 is permanently reserved and is never handed out.
func (fs *Filesystem) Create() int {
	if !fs.mounted {
		return 0
	}

	for inum := 1; inum < int(fs.sb.Ninodes); inum++ {
		inode, err := fs.loadInode(inum)
		if err != nil {
			continue
		}
		if inode.IsValid != 0 {
			continue
		}

		fresh := ondisk.Inode{IsValid: 1}
		if err := fs.storeInode(inum, fresh); err != nil {
			return 0
		}
		return inum
	}
	return 0
}

// Delete frees every block owned by inum (direct, indirect, and the
// indirect block itself) and clears the inode slot.
func (fs *Filesystem) Delete(inum int) ferrors.DriverError {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	if !fs.validInumber(inum) {
		return ferrors.ErrInvalidInumber
	}

	inode, err := fs.loadInode(inum)
	if err != nil {
		return err
	}
	if inode.IsValid == 0 {
		return ferrors.ErrInvalidInumber
	}

	for i, ptr := range inode.Direct {
		if ptr == 0 {
			continue
		}
		fs.freeBlock(int(ptr))
		inode.Direct[i] = 0
	}

	if inode.Indirect != 0 {
		// A corrupted indirect pointer must not be handed to the device --
		// it panics on an out-of-range blockno. There's nothing meaningful
		// to free through it in that case; still clear the field so the
		// slot doesn't keep pointing at garbage.
		if fs.isDataBlock(inode.Indirect) {
			block, rerr := fs.readBlock(int(inode.Indirect))
			if rerr == nil {
				if pointers, decErr := ondisk.DecodePointerBlock(block); decErr == nil {
					for _, ptr := range pointers {
						if ptr != 0 {
							fs.freeBlock(int(ptr))
						}
					}
				}
			}
			fs.freeBlock(int(inode.Indirect))
		}
		inode.Indirect = 0
	}

	inode.IsValid = 0
	inode.Size = 0
	return fs.storeInode(inum, inode)
}

// GetSize returns the byte length of inum's file, or -1 if inum does not
// name an in-use inode (including a corrupted negative size).
func (fs *Filesystem) GetSize(inum int) int {
	if !fs.mounted || !fs.validInumber(inum) {
		return -1
	}
	inode, err := fs.loadInode(inum)
	if err != nil || inode.IsValid == 0 || inode.Size < 0 {
		return -1
	}
	return int(inode.Size)
}

// Read copies up to length bytes of inum's file starting at offset into
// buf, returning the number of bytes actually copied. It never returns
// more than length bytes, and never reads past the file's recorded size.
func (fs *Filesystem) Read(inum int, buf []byte, length int, offset int) int {
	if !fs.mounted || !fs.validInumber(inum) {
		return 0
	}
	inode, err := fs.loadInode(inum)
	if err != nil || inode.IsValid == 0 {
		return 0
	}

	remaining := length
	if max := int(inode.Size) - offset; max < remaining {
		remaining = max
	}
	if remaining <= 0 {
		return 0
	}

	copied := 0
	pos := offset
	for copied < remaining {
		logical := pos / ondisk.BlockSize
		skew := pos % ondisk.BlockSize

		physical, rerr := fs.resolveForRead(inode, logical)
		if rerr != nil || physical == 0 {
			break
		}

		block, ioErr := fs.readBlock(int(physical))
		if ioErr != nil {
			break
		}

		chunk := ondisk.BlockSize - skew
		if left := remaining - copied; chunk > left {
			chunk = left
		}
		copy(buf[copied:copied+chunk], block[skew:skew+chunk])

		copied += chunk
		pos += chunk
	}

	return copied
}

// Write copies up to length bytes from buf into inum's file starting at
// offset, allocating and linking new blocks as needed, and returns the
// number of bytes actually written. A partially-covered first or last
// block is read-modify-written; fully-covered middle blocks are written
// directly. On allocation failure (disk full, or past the maximum file
// size) it stops and returns the count written so far, matching the
// partial-progress contract.
func (fs *Filesystem) Write(inum int, buf []byte, length int, offset int) int {
	if !fs.mounted || !fs.validInumber(inum) {
		return 0
	}
	inode, err := fs.loadInode(inum)
	if err != nil || inode.IsValid == 0 {
		return 0
	}
	original := inode

	written := 0
	pos := offset
	for written < length {
		logical := pos / ondisk.BlockSize
		skew := pos % ondisk.BlockSize

		physical, rerr := fs.resolveForWrite(&inode, logical)
		if rerr != nil {
			break
		}

		chunk := ondisk.BlockSize - skew
		if left := length - written; chunk > left {
			chunk = left
		}

		var block []byte
		if skew != 0 || chunk != ondisk.BlockSize {
			existing, rerr2 := fs.readBlock(int(physical))
			if rerr2 != nil {
				block = make([]byte, ondisk.BlockSize)
			} else {
				block = existing
			}
		} else {
			block = make([]byte, ondisk.BlockSize)
		}
		copy(block[skew:skew+chunk], buf[written:written+chunk])

		if werr := fs.writeBlock(int(physical), block); werr != nil {
			break
		}

		written += chunk
		pos += chunk
	}

	if written == 0 {
		// The inode is never stored, so nothing on disk links whatever
		// resolveForWrite allocated into it: release those blocks.
		fs.releaseBlocksLinkedThisCall(original, inode)
		return 0
	}

	if newSize := int32(offset + written); newSize > inode.Size {
		inode.Size = newSize
	}
	if err := fs.storeInode(inum, inode); err != nil {
		// The data blocks this call wrote are durable, but the inode record
		// linking them in was never persisted: the link-back failed, so by
		// the same allocate-then-link discipline resolveForWrite applies to
		// each block individually, every pointer this call newly linked
		// into the inode must be released back to the bitmap rather than
		// left permanently marked used with nothing on disk pointing at it.
		fs.releaseBlocksLinkedThisCall(original, inode)
		return 0
	}

	return written
}

// releaseBlocksLinkedThisCall frees every direct pointer and indirect block
// that became non-zero between original and updated, plus the data blocks
// listed in such a newly allocated indirect block -- the links an inode
// record that was never stored did not actually commit to disk.
func (fs *Filesystem) releaseBlocksLinkedThisCall(original, updated ondisk.Inode) {
	for i, ptr := range updated.Direct {
		if original.Direct[i] == 0 && ptr != 0 {
			fs.freeBlock(int(ptr))
		}
	}
	if original.Indirect == 0 && updated.Indirect != 0 {
		if block, err := fs.readBlock(int(updated.Indirect)); err == nil {
			if pointers, decErr := ondisk.DecodePointerBlock(block); decErr == nil {
				for _, ptr := range pointers {
					if ptr != 0 {
						fs.freeBlock(int(ptr))
					}
				}
			}
		}
		fs.freeBlock(int(updated.Indirect))
	}
}
