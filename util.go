package lwrkem

import (
	"crypto/rand"

	"github.com/keybase/saltpack/encoding/basex"
)

// RandNBytes reads n bytes from the system CSPRNG. Entropy acquisition
// is out of scope for the KEM core itself (§1: "caller supplies 32
// bytes"), but the CLI demo needs somewhere to get that entropy from,
// the way kryptco-kr/util.go's RandNBytes backs its pairing-secret
// generation.
func RandNBytes(n uint) (randBytes []byte, err error) {
	randBytes = make([]byte, n)
	_, err = rand.Read(randBytes)
	return
}

// base62Encode renders raw bytes as base62 text, grounded on
// kryptco-kr/util.go's Rand256Base62 — used here for PublicKey.Fingerprint
// rather than for a fresh random value.
func base62Encode(b []byte) string {
	return basex.Base62StdEncoding.EncodeToString(b)
}
