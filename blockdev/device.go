// Package blockdev implements fixed-size block I/O over a disk image. The
// filesystem core only ever talks to the Device interface, never to a
// concrete stream, so any io.ReadWriteSeeker (a file, an in-memory buffer)
// can back an image.
package blockdev

import (
	"fmt"
	"io"

	ferrors "github.com/awalton3/OS-project6/errors"
	"github.com/xaionaro-go/bytesextra"
)

// BlockSize is the fixed block size in bytes for every device.
const BlockSize = 4096

// Device is the abstraction the filesystem core is built on: size(),
// read(blockno, buf), write(blockno, buf) of fixed BlockSize blocks.
//
// An out-of-range access is a programming error, not a recoverable one:
// implementations panic rather than return an error.
type Device interface {
	// Size returns the total number of blocks, N.
	Size() int
	// ReadBlock fills buf (which must be BlockSize bytes) with the contents
	// of block blockno.
	ReadBlock(blockno int, buf []byte) error
	// WriteBlock persists buf (BlockSize bytes) as block blockno.
	WriteBlock(blockno int, buf []byte) error
}

// streamDevice adapts any io.ReadWriteSeeker into a Device, seeking to the
// block's byte offset before each read/write. There's no caching layer:
// every read and write here goes straight to backing storage.
type streamDevice struct {
	stream      io.ReadWriteSeeker
	totalBlocks int
}

// WrapStream creates a Device backed by an existing stream holding exactly
// totalBlocks blocks of BlockSize bytes each.
func WrapStream(stream io.ReadWriteSeeker, totalBlocks int) Device {
	return &streamDevice{stream: stream, totalBlocks: totalBlocks}
}

// NewMemoryDevice creates a Device entirely in memory, with totalBlocks
// zeroed blocks.
func NewMemoryDevice(totalBlocks int) Device {
	storage := make([]byte, totalBlocks*BlockSize)
	stream := bytesextra.NewReadWriteSeeker(storage)
	return WrapStream(stream, totalBlocks)
}

func (d *streamDevice) Size() int {
	return d.totalBlocks
}

func (d *streamDevice) checkRange(blockno int) {
	if blockno < 0 || blockno >= d.totalBlocks {
		panic(fmt.Sprintf(
			"block %d out of range [0, %d)", blockno, d.totalBlocks,
		))
	}
}

func (d *streamDevice) seek(blockno int) error {
	d.checkRange(blockno)
	_, err := d.stream.Seek(int64(blockno)*BlockSize, io.SeekStart)
	if err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}
	return nil
}

func (d *streamDevice) ReadBlock(blockno int, buf []byte) error {
	if len(buf) != BlockSize {
		return ferrors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("buffer must be %d bytes, got %d", BlockSize, len(buf)),
		)
	}
	if err := d.seek(blockno); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, buf)
	if err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}
	return nil
}

func (d *streamDevice) WriteBlock(blockno int, buf []byte) error {
	if len(buf) != BlockSize {
		return ferrors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("buffer must be %d bytes, got %d", BlockSize, len(buf)),
		)
	}
	if err := d.seek(blockno); err != nil {
		return err
	}
	_, err := d.stream.Write(buf)
	if err != nil {
		return ferrors.ErrIOFailed.WrapError(err)
	}
	return nil
}
