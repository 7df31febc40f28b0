// Package v6fs implements a block-based filesystem addressed entirely by
// numbered inodes: a superblock, a flat inode table, direct and single-
// indirect pointers, and an in-memory free-block bitmap rebuilt at mount
// time. There are no directories, names, or permissions; files are
// addressed only by inumber.
package v6fs

import (
	"github.com/awalton3/OS-project6/blockdev"
	ferrors "github.com/awalton3/OS-project6/errors"
	"github.com/awalton3/OS-project6/ondisk"
	"github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"
)

// Filesystem is an owned object holding the free-block bitmap, the mount
// flag, and a handle to the block device, rather than hidden package-level
// state -- which makes testing multiple independent images natural.
type Filesystem struct {
	device     blockdev.Device
	sb         ondisk.Superblock
	bitmap     bitmap.Bitmap
	mounted    bool
	scanErrors *multierror.Error
}

// New creates a Filesystem over the given device. The device is neither
// formatted nor mounted until Format/Mount is called.
func New(device blockdev.Device) *Filesystem {
	return &Filesystem{device: device}
}

// Mounted reports whether Mount has succeeded on this Filesystem.
func (fs *Filesystem) Mounted() bool {
	return fs.mounted
}

func (fs *Filesystem) requireMounted() ferrors.DriverError {
	if !fs.mounted {
		return ferrors.ErrNotMounted
	}
	return nil
}

// readBlock reads one block through the device into a fresh buffer. Device
// errors are returned unchanged; callers wrap them in the package's error
// taxonomy.
func (fs *Filesystem) readBlock(blockno int) ([]byte, error) {
	buf := make([]byte, blockdev.BlockSize)
	if err := fs.device.ReadBlock(blockno, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (fs *Filesystem) writeBlock(blockno int, buf []byte) error {
	return fs.device.WriteBlock(blockno, buf)
}
