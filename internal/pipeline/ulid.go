package pipeline

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: a 48-bit millisecond timestamp followed by 80 random
// bits, written as 26 Crockford base32 digits so they sort by creation time.

var crockford = base32.NewEncoding("0123456789ABCDEFGHJKMNPQRSTVWXYZ").WithPadding(base32.NoPadding)

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

func generateULID() string {
	return newULID(time.Now())
}

func newULID(now time.Time) string {
	ulidMu.Lock()
	ts := uint64(now.UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}
	seq := lastSeq
	ulidMu.Unlock()

	var id [16]byte
	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], ts)
	copy(id[:6], tsBuf[2:])
	rand.Read(id[6:])
	// The sequence keeps IDs from the same millisecond distinct.
	binary.BigEndian.PutUint16(id[6:8], seq)
	return encodeULID(id)
}

// encodeULID prefixes the 128 bits with two zero bits so they split evenly
// into 26 five-bit digits.
func encodeULID(id [16]byte) string {
	var v [17]byte
	copy(v[:], id[:])
	for i := len(v) - 1; i > 0; i-- {
		v[i] = v[i]>>2 | v[i-1]<<6
	}
	v[0] >>= 2
	return crockford.EncodeToString(v[:])[:26]
}
