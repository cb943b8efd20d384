package cubes

import "encoding/binary"

// Per-dimension ordinals encode composite keys. Ordinal 0 is the dimension
// total; declared concrete values count from 1 in declared enumeration order.
// missingOrdinal is reserved for query values absent from a dimension, so
// that lookups with unknown values miss every stored cell.
const (
	totalOrdinal   uint32 = 0
	missingOrdinal uint32 = ^uint32(0)
)

// cellKey is the canonical serialized form of a composite key: one fixed-width
// big-endian ordinal per dimension slot. Strings compare by value, which gives
// the cell map elementwise key equality, total slots included.
type cellKey string

func encodeKey(ordinals []uint32) cellKey {
	buf := make([]byte, 4*len(ordinals))
	for i, ord := range ordinals {
		binary.BigEndian.PutUint32(buf[i*4:], ord)
	}
	return cellKey(buf)
}

// ordinalAt returns the ordinal stored in the given slot.
func (k cellKey) ordinalAt(slot int) uint32 {
	return binary.BigEndian.Uint32([]byte(k[slot*4 : slot*4+4]))
}
