package regionsrc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMmapRegionIsUsable(t *testing.T) {
	r, err := Mmap(64 * 1024)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Bytes, 64*1024)

	r.Bytes[0] = 0xAB
	r.Bytes[len(r.Bytes)-1] = 0xCD
	require.Equal(t, byte(0xAB), r.Bytes[0])
	require.Equal(t, byte(0xCD), r.Bytes[len(r.Bytes)-1])
}

func TestFromSliceClosesCleanly(t *testing.T) {
	r := FromSlice(make([]byte, 16))
	require.NoError(t, r.Close())
}
