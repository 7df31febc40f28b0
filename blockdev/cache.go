package blockdev

import (
	"github.com/boljen/go-bitmap"
)

// CachingDevice wraps a Device and buffers every block it touches in
// memory, deferring writes to the underlying device until Flush is
// called. It mirrors the fetch/flush/dirty-bitmap shape of a classic
// block cache, trimmed down to what a fixed-size device needs: no
// resizing, no partial-block access, just whole BlockSize buffers.
type CachingDevice struct {
	backing Device
	loaded  bitmap.Bitmap
	dirty   bitmap.Bitmap
	data    [][]byte
}

// NewCachingDevice wraps backing with an in-memory write-back cache.
func NewCachingDevice(backing Device) *CachingDevice {
	n := backing.Size()
	return &CachingDevice{
		backing: backing,
		loaded:  bitmap.NewSlice(n),
		dirty:   bitmap.NewSlice(n),
		data:    make([][]byte, n),
	}
}

func (c *CachingDevice) Size() int {
	return c.backing.Size()
}

// ReadBlock serves blockno from the cache, fetching it from the backing
// device on first access.
func (c *CachingDevice) ReadBlock(blockno int, buf []byte) error {
	if !c.loaded.Get(blockno) {
		cached := make([]byte, BlockSize)
		if err := c.backing.ReadBlock(blockno, cached); err != nil {
			return err
		}
		c.data[blockno] = cached
		c.loaded.Set(blockno, true)
	}
	copy(buf, c.data[blockno])
	return nil
}

// WriteBlock updates the cached copy of blockno and marks it dirty. It is
// not persisted to the backing device until Flush.
func (c *CachingDevice) WriteBlock(blockno int, buf []byte) error {
	cached := make([]byte, BlockSize)
	copy(cached, buf)
	c.data[blockno] = cached
	c.loaded.Set(blockno, true)
	c.dirty.Set(blockno, true)
	return nil
}

// Flush writes every dirty block back to the backing device and clears
// the dirty bitmap.
func (c *CachingDevice) Flush() error {
	for i := 0; i < c.Size(); i++ {
		if !c.dirty.Get(i) {
			continue
		}
		if err := c.backing.WriteBlock(i, c.data[i]); err != nil {
			return err
		}
		c.dirty.Set(i, false)
	}
	return nil
}
