package lwrkem

import (
	"bytes"

	"github.com/kryptco/lwrkem/internal/ctutil"
	"github.com/kryptco/lwrkem/keccak"
	"github.com/kryptco/lwrkem/lwr"
)

func validateMode(mode lwr.Mode) error {
	if mode != lwr.ModeFast && mode != lwr.ModeLowRAM {
		return ErrUnknownMode
	}
	return nil
}

// KeyGen implements §4.5's keygen: SHAKE(entropy) splits into pk.Seed
// (first 32 bytes) and a secret seed (next 32), s is generated row by
// row from the secret seed, and b = round(A·s) per §4.3. The secret
// seed and the SHAKE output it was sliced from are zeroized before
// return on every path, including the mode-validation failure.
func KeyGen(entropy [32]byte, mode lwr.Mode) (PublicKey, SecretKey, error) {
	log.Debug("KeyGen: entering")
	if err := validateMode(mode); err != nil {
		log.Error("KeyGen: ", err)
		return PublicKey{}, SecretKey{}, err
	}

	var expanded [64]byte
	defer ctutil.Zero(expanded[:])
	keccak.ShakeSum256(entropy[:], expanded[:])

	var pk PublicKey
	copy(pk.Seed[:], expanded[:32])

	var secretSeed [32]byte
	defer ctutil.Zero(secretSeed[:])
	copy(secretSeed[:], expanded[32:64])

	var sk SecretKey
	for row := 0; row < lwr.K; row++ {
		lwr.GenerateSecretRow(sk.S[row*lwr.N:(row+1)*lwr.N], secretSeed, byte(row), mode)
	}

	lwr.RoundedMatVec(pk.B[:], pk.Seed, sk.S[:], false, mode)

	log.Notice("KeyGen: produced public key ", pk.Fingerprint())
	return pk, sk, nil
}

// Encapsulate implements §4.5's encaps: SHAKE(entropy) derives an
// ephemeral r-seed, r is generated row by row from it with the same
// ternary generator as the secret, u = round(Aᵀ·r) and v = b·r per
// §4.3, then §4.4's safe-zone reconciliation picks (mask, cnt, buf) and
// §4.5's KDF turns buf into the shared secret. r-seed, r, v, and buf are
// all zeroized before return.
func Encapsulate(pk PublicKey, entropy [32]byte, mode lwr.Mode) (Ciphertext, SharedSecret, error) {
	log.Debug("Encapsulate: entering")
	if err := validateMode(mode); err != nil {
		log.Error("Encapsulate: ", err)
		return Ciphertext{}, SharedSecret{}, err
	}

	var rSeed [32]byte
	defer ctutil.Zero(rSeed[:])
	keccak.ShakeSum256(entropy[:], rSeed[:])

	var r [lwr.K * lwr.N]int16
	defer ctutil.ZeroInt16(r[:])
	for row := 0; row < lwr.K; row++ {
		lwr.GenerateSecretRow(r[row*lwr.N:(row+1)*lwr.N], rSeed, byte(row), mode)
	}

	var ct Ciphertext
	lwr.RoundedMatVec(ct.U[:], pk.Seed, r[:], true, mode)

	var v [lwr.N]byte
	defer ctutil.Zero(v[:])
	lwr.ReconciliationValue(v[:], pk.B[:], r[:])

	mask, cnt, buf := lwr.Reconcile(v[:])
	defer ctutil.Zero(buf)
	ct.Mask = mask
	ct.Cnt = uint16(cnt)

	shared := kdf(buf)
	log.Notice("Encapsulate: produced ciphertext with cnt=", cnt)
	return ct, shared, nil
}

// Decapsulate implements §4.5's decaps: v' = u·s per §4.3, bits are
// extracted under the ciphertext's own mask (the sender's mask is
// authoritative — §4.4 "Do not recompute safety from v'"), and §4.5's
// KDF turns the extracted buffer into the shared secret. v' and the
// extracted buffer are zeroized before return. mode is accepted for
// symmetry with KeyGen/Encapsulate and validated the same way, even
// though this direction never calls a seeded generator.
func Decapsulate(ct Ciphertext, sk SecretKey, mode lwr.Mode) (SharedSecret, error) {
	log.Debug("Decapsulate: entering")
	if err := validateMode(mode); err != nil {
		log.Error("Decapsulate: ", err)
		return SharedSecret{}, err
	}

	var vPrime [lwr.N]byte
	defer ctutil.Zero(vPrime[:])
	lwr.ReconciliationValue(vPrime[:], ct.U[:], sk.S[:])

	buf := lwr.ExtractBits(ct.Mask, vPrime[:])
	defer ctutil.Zero(buf)

	shared := kdf(buf)
	log.Debug("Decapsulate: exiting")
	return shared, nil
}

// SelfTest implements §6's self_test: derive an encaps-entropy from
// entropy via SHAKE (the same one-shot squeeze original_source's
// mir_self_test uses for ent_enc, with no extra tag byte), run
// keygen/encaps/decaps, and verify byte-equality of the two derived
// secrets. Returns a sentinel error from the §6 taxonomy rather than the
// C reference's -1..-4 codes.
func SelfTest(entropy [32]byte, mode lwr.Mode) error {
	log.Debug("SelfTest: entering")

	var encapsEntropy [32]byte
	keccak.ShakeSum256(entropy[:], encapsEntropy[:])

	pk, sk, err := KeyGen(entropy, mode)
	if err != nil {
		log.Error("SelfTest: keygen failed: ", err)
		return ErrSelfTestKeyGen
	}
	defer sk.Zeroize()

	ct, k1, err := Encapsulate(pk, encapsEntropy, mode)
	if err != nil {
		log.Error("SelfTest: encapsulate failed: ", err)
		return ErrSelfTestEncaps
	}

	k2, err := Decapsulate(ct, sk, mode)
	if err != nil {
		log.Error("SelfTest: decapsulate failed: ", err)
		return ErrSelfTestDecaps
	}

	if !bytes.Equal(k1[:], k2[:]) {
		log.Error("SelfTest: shared secret mismatch")
		return ErrSelfTestMismatch
	}

	log.Notice("SelfTest: ok")
	return nil
}
