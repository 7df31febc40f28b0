package v6fs

import (
	"fmt"
	"io"

	"github.com/awalton3/OS-project6/ondisk"
)

// Debug prints the superblock and every valid inode's pointer tree to w.
// It never touches the bitmap or other mount state, so it's safe to call
// before mount: it works from the superblock it reads off the device. When
// that superblock's magic does not match, only its fields are printed,
// followed by a note that the inode table was skipped.
func (fs *Filesystem) Debug(w io.Writer) {
	block, err := fs.readBlock(0)
	if err != nil {
		fmt.Fprintf(w, "superblock: read failed: %s\n", err)
		return
	}
	sb, decErr := ondisk.DecodeSuperblock(block)
	if decErr != nil {
		fmt.Fprintf(w, "superblock: decode failed: %s\n", decErr)
		return
	}

	fmt.Fprintf(w, "magic:        0x%x (valid: %v)\n", uint32(sb.Magic), sb.IsValid())
	fmt.Fprintf(w, "nblocks:      %d\n", sb.Nblocks)
	fmt.Fprintf(w, "ninodeblocks: %d\n", sb.NinodeBlocks)
	fmt.Fprintf(w, "ninodes:      %d\n", sb.Ninodes)

	if !sb.IsValid() {
		fmt.Fprintln(w, "inode table: skipped, superblock magic does not match")
		return
	}

	for iblock := 1; iblock <= int(sb.NinodeBlocks); iblock++ {
		raw, err := fs.readBlock(iblock)
		if err != nil {
			fmt.Fprintf(w, "inode block %d: read failed: %s\n", iblock, err)
			continue
		}
		inodes, decErr := ondisk.DecodeInodeBlock(raw)
		if decErr != nil {
			fmt.Fprintf(w, "inode block %d: decode failed: %s\n", iblock, decErr)
			continue
		}

		for slot, inode := range inodes {
			inum := inumOf(iblock, slot)
			if inum == 0 || inode.IsValid == 0 {
				continue
			}
			fs.debugInode(w, sb, inum, inode)
		}
	}
}

func (fs *Filesystem) debugInode(w io.Writer, sb ondisk.Superblock, inum int, inode ondisk.Inode) {
	fmt.Fprintf(w, "inode %d: size=%d\n", inum, inode.Size)

	var direct []int32
	for _, ptr := range inode.Direct {
		if ptr != 0 {
			direct = append(direct, ptr)
		}
	}
	fmt.Fprintf(w, "  direct: %v\n", direct)

	if inode.Indirect == 0 {
		return
	}
	// Range-checked against the superblock just read, not fs.sb, which
	// only Mount fills in.
	if inode.Indirect <= sb.NinodeBlocks || inode.Indirect >= sb.Nblocks {
		fmt.Fprintf(w, "  indirect block: %d (corrupted, out of range, skipped)\n", inode.Indirect)
		return
	}
	fmt.Fprintf(w, "  indirect block: %d\n", inode.Indirect)

	block, err := fs.readBlock(int(inode.Indirect))
	if err != nil {
		fmt.Fprintf(w, "    read failed: %s\n", err)
		return
	}
	pointers, decErr := ondisk.DecodePointerBlock(block)
	if decErr != nil {
		fmt.Fprintf(w, "    decode failed: %s\n", decErr)
		return
	}

	var entries []int32
	for _, ptr := range pointers {
		if ptr != 0 {
			entries = append(entries, ptr)
		}
	}
	fmt.Fprintf(w, "    pointers: %v\n", entries)
}
