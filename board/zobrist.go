package board

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
)

// zobristTable derives the per-point, per-color hash keys. The keys
// are a pure function of board size, point index, and color, so two
// boards of the same size always agree on position hashes.
func zobristTable(size int) [][2]uint64 {
	tab := make([][2]uint64, size*size)
	var buf [14]byte
	copy(buf[:8], "goboard\x00")
	for i := range tab {
		binary.LittleEndian.PutUint32(buf[8:12], uint32(i))
		buf[13] = byte(size)
		for c := 0; c < 2; c++ {
			buf[12] = byte(c + 1)
			tab[i][c] = xxhash.Checksum64(buf[:])
		}
	}
	return tab
}
