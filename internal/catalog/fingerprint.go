package catalog

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// computeFingerprint hashes the canonical JSON form of the catalog.
// encoding/json emits struct fields in declaration order, so the encoding
// is stable for a given content.
func computeFingerprint(c *Catalog) string {
	data, err := json.Marshal(c)
	if err != nil {
		// Catalog holds only strings, ints, bools and slices of them.
		panic("catalog: marshal for fingerprint: " + err.Error())
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
