// Package roundid generates identifiers for dealt rounds.
package roundid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Crockford base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in a generated id
const Length = 26

// New returns a UUIDv7 encoded as 26 base32 characters. Ids created later
// sort after earlier ones.
func New() string {
	return Encode(uuid.Must(uuid.NewV7()))
}

// Sequence returns a generator yielding prefix-1, prefix-2, ... It is safe
// for concurrent use and gives seeded servers reproducible round ids.
func Sequence(prefix string) func() string {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Encode renders the 128 bits of id five at a time, most significant first.
// The final character carries the last three bits.
func Encode(id uuid.UUID) string {
	out := make([]byte, Length)
	for i := range out {
		bit := i * 5
		idx, shift := bit/8, bit%8

		var v byte
		if shift <= 3 {
			v = (id[idx] >> (3 - shift)) & 0x1f
		} else {
			v = (id[idx] << (shift - 3)) & 0x1f
			if idx+1 < len(id) {
				v |= id[idx+1] >> (11 - shift)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id looks like the output of New
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round id must be %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
