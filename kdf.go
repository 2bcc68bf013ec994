package lwrkem

import "github.com/kryptco/lwrkem/keccak"

// kdfDomain is the fixed domain byte prefixing the KDF input (§4.5), the
// only domain separation this scheme applies internally.
const kdfDomain = 0x02

// kdf implements §4.5's key-derivation step: SHA3-256([0x02] || buf),
// truncated to nothing (the digest is already 32 bytes, matching
// SharedSecret). Both Encapsulate and Decapsulate call this on their
// respective reconciliation buffers so that matching buffers yield
// matching secrets.
func kdf(buf []byte) SharedSecret {
	input := make([]byte, 0, 1+len(buf))
	input = append(input, kdfDomain)
	input = append(input, buf...)
	return SharedSecret(keccak.Sum256(input))
}
