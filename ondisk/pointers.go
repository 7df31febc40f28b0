package ondisk

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// DecodePointerBlock reads a BlockSize-byte indirect block into
// PointersPerBlock 32-bit block numbers. A zero entry means "no pointer".
func DecodePointerBlock(block []byte) ([PointersPerBlock]int32, error) {
	var pointers [PointersPerBlock]int32
	if len(block) != BlockSize {
		return pointers, fmt.Errorf(
			"pointer block must be %d bytes, got %d", BlockSize, len(block),
		)
	}

	r := bytes.NewReader(block)
	binary.Read(r, binary.LittleEndian, &pointers)
	return pointers, nil
}

// EncodePointerBlock serializes PointersPerBlock block numbers into one
// BlockSize-byte block.
func EncodePointerBlock(pointers [PointersPerBlock]int32) []byte {
	buf := make([]byte, BlockSize)
	w := bytewriter.New(buf)
	binary.Write(w, binary.LittleEndian, &pointers)
	return buf
}
