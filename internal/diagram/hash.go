package diagram

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// SourceHash digests literal text into the signed 64-bit key used to name
// cache artifacts. The decimal rendering of this value becomes a file name
// stem, so it must stay stable across processes and releases.
func SourceHash(text string) int64 {
	sum := blake3.Sum256([]byte(text))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
