package lwr

import "github.com/kryptco/lwrkem/keccak"

// ternary maps the low two bits of r to {-1, 0, 1, 0} without a
// data-dependent branch: val=0,1,2 map to base=val-1, val=3 selects 0
// instead of base=2.
func ternary(r byte) int16 {
	val := int32(r & 3)
	base := val - 1
	isThree := equal32(val, 3)
	return int16(select32(isThree, 0, base))
}

// the two branchless primitives ternary needs are small enough to inline
// here rather than importing internal/ctutil into this hot, per-byte loop;
// this package's reconciliation step does use the shared ctutil helpers
// (see lwr/reconcile.go — that code runs per-coordinate, not
// per-byte-of-seed-expansion).
func equal32(a, b int32) uint32 {
	d := uint32(a ^ b)
	return 1 ^ ((d | -d) >> 31)
}

func select32(cond uint32, a, b int32) int32 {
	mask := -int32(cond)
	return b ^ ((a ^ b) & mask)
}

// GenerateSecretRow fills out (length N) with the ternary coordinates of
// secret/ephemeral row `row`, expanded from seed via SHAKE-256 with tag
// {0xFF, row} (ModeFast, one shared context, whole row squeezed) or tag
// {0xFF, row, idx} per coordinate (ModeLowRAM, fresh context each call).
func GenerateSecretRow(out []int16, seed [SeedLen]byte, row byte, mode Mode) {
	if mode == ModeLowRAM {
		for idx := 0; idx < N; idx++ {
			out[idx] = secretElement(seed, row, byte(idx))
		}
		return
	}

	var ctx keccak.Shake256
	ctx.Absorb(seed[:])
	ctx.Absorb([]byte{0xFF, row})
	ctx.Finalize()

	var buf [32]byte
	bufPos := len(buf)
	for idx := 0; idx < N; idx++ {
		if bufPos == len(buf) {
			ctx.Squeeze(buf[:])
			bufPos = 0
		}
		out[idx] = ternary(buf[bufPos])
		bufPos++
	}
}

func secretElement(seed [SeedLen]byte, row, idx byte) int16 {
	var ctx keccak.Shake256
	ctx.Absorb(seed[:])
	ctx.Absorb([]byte{0xFF, row, idx})
	ctx.Finalize()

	var b [1]byte
	ctx.Squeeze(b[:])
	return ternary(b[0])
}

// GenerateMatrixBlock fills out (length N) with the uniform-mod-Q
// coordinates of matrix block A[row][col], expanded from seed via
// SHAKE-256 with tag {0x00, row, col} (ModeFast) or {0x00, row, col, idx}
// per coordinate (ModeLowRAM). Each coordinate is two little-endian
// squeeze bytes masked with QMask — the mask is the reduction, there is
// no rejection sampling.
func GenerateMatrixBlock(out []int32, seed [SeedLen]byte, row, col byte, mode Mode) {
	if mode == ModeLowRAM {
		for idx := 0; idx < N; idx++ {
			out[idx] = matrixElement(seed, row, col, byte(idx))
		}
		return
	}

	var ctx keccak.Shake256
	ctx.Absorb(seed[:])
	ctx.Absorb([]byte{0x00, row, col})
	ctx.Finalize()

	var buf [32]byte
	bufPos := len(buf)
	for idx := 0; idx < N; idx++ {
		if bufPos == len(buf) {
			ctx.Squeeze(buf[:])
			bufPos = 0
		}
		lo, hi := buf[bufPos], buf[bufPos+1]
		out[idx] = int32(uint16(lo)|uint16(hi)<<8) & QMask
		bufPos += 2
	}
}

func matrixElement(seed [SeedLen]byte, row, col, idx byte) int32 {
	var ctx keccak.Shake256
	ctx.Absorb(seed[:])
	ctx.Absorb([]byte{0x00, row, col, idx})
	ctx.Finalize()

	var b [2]byte
	ctx.Squeeze(b[:])
	return int32(uint16(b[0])|uint16(b[1])<<8) & QMask
}
