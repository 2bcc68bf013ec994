package lwr

import (
	"testing"

	"github.com/kryptco/lwrkem/internal/ctutil"
)

// referenceSafe is an independent, straightforward (branch-using)
// implementation of §4.4's safe-zone test, used to check IsSafe's
// branchless implementation against brute force over all 256 inputs.
func referenceSafe(val byte) bool {
	v := int(val)
	min := 1 << 30
	for _, c := range []int{32, 96, 160, 224} {
		d := v - c
		if d < 0 {
			d = -d
		}
		if d < min {
			min = d
		}
	}
	return min < 12
}

func TestIsSafeAllValues(t *testing.T) {
	for v := 0; v < 256; v++ {
		safe, bit := IsSafe(byte(v))
		if safe != 0 && safe != 1 {
			t.Fatalf("IsSafe(%d) safe = %d, want 0 or 1", v, safe)
		}
		want := referenceSafe(byte(v))
		if (safe == 1) != want {
			t.Fatalf("IsSafe(%d) = %v, want %v", v, safe == 1, want)
		}
		wantBit := byte((v >> 6) & 1)
		if bit != wantBit {
			t.Fatalf("IsSafe(%d) bit = %d, want %d", v, bit, wantBit)
		}
	}
}

func TestReconcileMaskPopcountMatchesCnt(t *testing.T) {
	v := make([]byte, N)
	for i := range v {
		v[i] = byte(i * 37)
	}
	mask, cnt, buf := Reconcile(v)
	if Popcount(mask) != cnt {
		t.Fatalf("popcount(mask) = %d, cnt = %d", Popcount(mask), cnt)
	}
	if len(buf) != cnt {
		t.Fatalf("len(buf) = %d, want cnt = %d", len(buf), cnt)
	}
	for _, bit := range buf {
		if bit != 0 && bit != 1 {
			t.Fatalf("extracted bit %d not in {0,1}", bit)
		}
	}
}

func TestReconcileAgreesWithIsSafe(t *testing.T) {
	v := make([]byte, N)
	for i := range v {
		v[i] = byte((i*83 + 5) % 256)
	}
	mask, cnt, buf := Reconcile(v)

	wantCnt := 0
	bufIdx := 0
	for j := 0; j < N; j++ {
		safe, bit := IsSafe(v[j])
		gotBit := ctutil.BitGet(mask[:], j)
		if safe != gotBit {
			t.Fatalf("coordinate %d: mask bit %d, IsSafe %d", j, gotBit, safe)
		}
		if safe == 1 {
			if buf[bufIdx] != bit {
				t.Fatalf("coordinate %d: buf[%d] = %d, want %d", j, bufIdx, buf[bufIdx], bit)
			}
			bufIdx++
			wantCnt++
		}
	}
	if cnt != wantCnt {
		t.Fatalf("cnt = %d, want %d", cnt, wantCnt)
	}
}

func TestExtractBitsHonorsMaskOverSafety(t *testing.T) {
	// Decaps must trust the sender's mask, not recompute safety from v'.
	// Build a mask that marks every coordinate safe regardless of v', and
	// check ExtractBits pulls a bit from every one of them.
	var mask [MaskLen]byte
	for j := 0; j < N; j++ {
		ctutil.BitSet(mask[:], j, 1)
	}
	vPrime := make([]byte, N)
	for i := range vPrime {
		vPrime[i] = byte(i)
	}
	buf := ExtractBits(mask, vPrime)
	if len(buf) != N {
		t.Fatalf("len(buf) = %d, want %d (mask marks every coordinate)", len(buf), N)
	}
	for j, bit := range buf {
		want := (vPrime[j] >> 6) & 1
		if bit != want {
			t.Fatalf("buf[%d] = %d, want %d", j, bit, want)
		}
	}
}

func TestPopcountEmptyAndFull(t *testing.T) {
	var empty [MaskLen]byte
	if Popcount(empty) != 0 {
		t.Fatalf("Popcount(empty) = %d, want 0", Popcount(empty))
	}
	var full [MaskLen]byte
	for i := range full {
		full[i] = 0xFF
	}
	if Popcount(full) != MaskLen*8 {
		t.Fatalf("Popcount(full) = %d, want %d", Popcount(full), MaskLen*8)
	}
}
