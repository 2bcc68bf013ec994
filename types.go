package lwrkem

import (
	"encoding/binary"

	uuid "github.com/satori/go.uuid"

	"github.com/kryptco/lwrkem/internal/ctutil"
	"github.com/kryptco/lwrkem/keccak"
	"github.com/kryptco/lwrkem/lwr"
)

// PublicKey is §3's PublicKey entity: a 32-byte matrix seed plus the
// compressed K*N bytes of round(A·s). It is purely a function of the
// matrix seed and secret seed derived at keygen time and carries no
// per-call freshness.
type PublicKey struct {
	Seed [lwr.SeedLen]byte
	B    [lwr.K * lwr.N]byte
}

// SecretKey is §3's SecretKey entity: K*N ternary coordinates stored as
// signed 16-bit integers, per §6 and §9's "store as signed 16-bit
// integers ... to keep multiplication unambiguous". Must be zeroized on
// drop via Zeroize.
type SecretKey struct {
	S [lwr.K * lwr.N]int16
}

// Ciphertext is §3's Ciphertext entity: the compressed K*N bytes of
// round(Aᵀ·r), the safe-zone bitmap, and its popcount.
type Ciphertext struct {
	U    [lwr.K * lwr.N]byte
	Mask [lwr.MaskLen]byte
	Cnt  uint16
}

// SharedSecret is the 32-byte output common to Encapsulate and
// Decapsulate.
type SharedSecret [lwr.SharedLen]byte

// Zeroize overwrites sk.S with zeroes. §5 requires this on "every exit
// path, including early returns" for SecretKey's storage; callers are
// responsible for invoking it once the key is no longer needed (Go has
// no destructors to hook this to automatically).
func (sk *SecretKey) Zeroize() {
	ctutil.ZeroInt16(sk.S[:])
}

// MarshalBinary renders pk per §6: seed[0..32] || b[0..K*N]. Length is
// always lwr.SeedLen + lwr.K*lwr.N.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, lwr.SeedLen+lwr.K*lwr.N)
	copy(out, pk.Seed[:])
	copy(out[lwr.SeedLen:], pk.B[:])
	return out, nil
}

// UnmarshalBinary parses the §6 PublicKey layout. This is the one place
// in the module allowed to reject on attacker-controlled length before
// any cryptographic work runs (§7 "Input-size violation").
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	if len(data) < lwr.SeedLen+lwr.K*lwr.N {
		return ErrShortBuffer
	}
	copy(pk.Seed[:], data[:lwr.SeedLen])
	copy(pk.B[:], data[lwr.SeedLen:lwr.SeedLen+lwr.K*lwr.N])
	return nil
}

// MarshalBinary renders sk per §6: K*N signed 16-bit little-endian
// integers, length 2*K*N bytes.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 2*lwr.K*lwr.N)
	for i, v := range sk.S {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out, nil
}

// UnmarshalBinary parses the §6 SecretKey layout.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	if len(data) < 2*lwr.K*lwr.N {
		return ErrShortBuffer
	}
	for i := range sk.S {
		sk.S[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return nil
}

// MarshalBinary renders ct per §6: u[0..K*N] || mask[0..32] ||
// cnt (uint16 little-endian). Length 1280 + 32 + 2 = 1314 bytes.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	out := make([]byte, lwr.K*lwr.N+lwr.MaskLen+2)
	copy(out, ct.U[:])
	copy(out[lwr.K*lwr.N:], ct.Mask[:])
	binary.LittleEndian.PutUint16(out[lwr.K*lwr.N+lwr.MaskLen:], ct.Cnt)
	return out, nil
}

// UnmarshalBinary parses the §6 Ciphertext layout. It does not validate
// that Cnt agrees with popcount(Mask) — §7 classes that as a "reconciliation
// underrun"/protocol-mismatch condition the core does not raise; callers
// that need that check can call lwr.Popcount themselves (see
// ErrMaskCountMismatch, used by the CLI's stricter `decaps --strict` path).
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) < lwr.K*lwr.N+lwr.MaskLen+2 {
		return ErrShortBuffer
	}
	copy(ct.U[:], data[:lwr.K*lwr.N])
	copy(ct.Mask[:], data[lwr.K*lwr.N:lwr.K*lwr.N+lwr.MaskLen])
	ct.Cnt = binary.LittleEndian.Uint16(data[lwr.K*lwr.N+lwr.MaskLen:])
	return nil
}

// Fingerprint renders a short, human-legible base62 encoding of the first
// 16 bytes of pk's SHA3-256 digest, grounded on kryptco-kr/util.go's Rand256Base62 (same
// basex alphabet, applied to a digest rather than fresh randomness).
func (pk *PublicKey) Fingerprint() string {
	raw, _ := pk.MarshalBinary()
	digest := keccak.Sum256(raw)
	return base62Encode(digest[:16])
}

// SessionID derives a UUID from pk.Seed, the way kryptco-kr/pair.go's
// PairingSecret.DeriveUUID derives one from sha256.Sum256(pk) — here the
// digest is SHA3-256 over the matrix seed rather than SHA-256 over a
// NaCl box public key, since this scheme has no NaCl keys.
func (pk *PublicKey) SessionID() (uuid.UUID, error) {
	digest := keccak.Sum256(pk.Seed[:])
	return uuid.FromBytes(digest[0:16])
}
