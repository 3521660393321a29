// Package recordid generates opaque record identifiers: a base-36 millisecond
// timestamp joined to a random base-36 suffix. Ids are unique within a
// collection for practical purposes; collisions are accepted as negligible.
package recordid

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const suffixLen = 8

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// New returns a fresh record id, e.g. "lx2f9k1a_4h8s0dq1".
func New() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	buf := make([]byte, suffixLen)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken;
			// fall back to a time-derived digit rather than panic.
			buf[i] = alphabet[time.Now().UnixNano()%int64(len(alphabet))]
			continue
		}
		buf[i] = alphabet[n.Int64()]
	}
	return ts + "_" + string(buf)
}
