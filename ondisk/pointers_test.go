package ondisk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointerBlockEncodeDecodeRoundTrip(t *testing.T) {
	var pointers [PointersPerBlock]int32
	pointers[0] = 42
	pointers[PointersPerBlock-1] = 99

	block := EncodePointerBlock(pointers)
	require.Len(t, block, BlockSize)

	decoded, err := DecodePointerBlock(block)
	require.NoError(t, err)
	require.Equal(t, pointers, decoded)
}

func TestDecodePointerBlockRejectsWrongSize(t *testing.T) {
	_, err := DecodePointerBlock(make([]byte, BlockSize+1))
	require.Error(t, err)
}
