package lwr

import "github.com/kryptco/lwrkem/internal/ctutil"

// centers are the four safe-zone centers, period 64, offset 32, each
// midway between two bit-6 decision boundaries: a coordinate is safe when
// its distance to the nearest center is below safeWindow.
var centers = [4]int32{32, 96, 160, 224}

const safeWindow = 12

// IsSafe reports, as a branchless 0/1 value, whether val's distance to
// the nearest of the four centers is below safeWindow, and the bit that
// coordinate would contribute if safe (bit 6 of val). Both results are
// computed without a data-dependent branch: every center is visited
// regardless of val, the running minimum is folded in with
// ctutil.Min32, and the final comparison is ctutil.LessThan32 rather
// than a Go `<` used in a boolean context — matching the C reference's
// mir_safe_zone, which returns the MIR_LT result directly.
func IsSafe(val byte) (safe uint32, bit byte) {
	v := int32(val)
	min := ctutil.Abs32(v - centers[0])
	for i := 1; i < len(centers); i++ {
		d := ctutil.Abs32(v - centers[i])
		min = ctutil.Min32(min, d)
	}
	safe = ctutil.LessThan32(min, safeWindow)
	bit = (val >> 6) & 1
	return
}

// Reconcile runs the encapsulating side of §4.4 over the N-byte
// reconciliation value v: it returns the safe-zone bitmap, the number of
// safe coordinates (cnt), and a buffer of exactly cnt bytes (one
// extracted bit per safe coordinate, in coordinate order) ready for the
// KDF. The write index into buf advances only on safe coordinates, but
// every loop iteration performs the same work — the safety test and the
// candidate-bit extraction run unconditionally on every coordinate, and
// only the index used to commit the result is data-dependent, per §5's
// allowance ("the advance of widx is a data-dependent index in storage;
// the specification assumes this is acceptable since v is released via
// the mask in any case").
func Reconcile(v []byte) (mask [MaskLen]byte, cnt int, buf []byte) {
	full := make([]byte, N)
	widx := 0
	for j := 0; j < N; j++ {
		safe, bit := IsSafe(v[j])
		full[widx] = ctutil.SelectByte(safe, bit, full[widx])
		ctutil.BitSet(mask[:], j, safe)
		widx += int(safe)
	}
	cnt = widx
	buf = full[:cnt]
	return
}

// ExtractBits runs the decapsulating side of §4.4: it trusts the
// sender's mask rather than recomputing safety from v', and returns the
// popcount(mask)-length buffer of extracted bits in coordinate order.
// It mirrors Reconcile's branchless write: every coordinate's candidate
// bit is computed, and only the write index advances on set mask bits.
func ExtractBits(mask [MaskLen]byte, vPrime []byte) []byte {
	full := make([]byte, N)
	widx := 0
	for j := 0; j < N; j++ {
		sel := ctutil.BitGet(mask[:], j)
		full[widx] = ctutil.SelectByte(sel, (vPrime[j]>>6)&1, full[widx])
		widx += int(sel)
	}
	return full[:widx]
}

// Popcount returns the number of set bits across mask's MaskLen bytes.
func Popcount(mask [MaskLen]byte) int {
	n := 0
	for _, b := range mask {
		for b != 0 {
			n += int(b & 1)
			b >>= 1
		}
	}
	return n
}
