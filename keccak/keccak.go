// Package keccak implements the Keccak-f[1600] permutation and the two
// sponge modes this module needs on top of it: SHAKE-256 (streaming XOF)
// and SHA3-256 (one-shot, fixed output). It does not wrap
// golang.org/x/crypto/sha3 — the permutation is reproduced here because
// the KEM's bit-exact behavior depends on it (see package lwr).
package keccak

// Rate is the SHAKE-256/SHA3-256 sponge rate in bytes: (1600 - 2*256) / 8.
const Rate = 136

const numLanes = 25

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A,
	0x8000000080008000, 0x000000000000808B, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009, 0x000000000000008A,
	0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089,
	0x8000000000008003, 0x8000000000008002, 0x8000000000000080,
	0x000000000000800A, 0x800000008000000A, 0x8000000080008081,
	0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// piLane[i] is the destination lane for the rho+pi chase step i.
var piLane = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// rhoOffset[i] is the left-rotation amount applied at chase step i.
var rhoOffset = [24]uint{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

func rotl64(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

// f1600 applies the 24-round Keccak-f[1600] permutation in place to a
// 25-lane, 64-bit-per-lane state: theta, rho+pi (combined chase), chi,
// iota, round constants and offsets per FIPS 202.
func f1600(a *[numLanes]uint64) {
	var bc [5]uint64

	for round := 0; round < 24; round++ {
		// theta
		bc[0] = a[0] ^ a[5] ^ a[10] ^ a[15] ^ a[20]
		bc[1] = a[1] ^ a[6] ^ a[11] ^ a[16] ^ a[21]
		bc[2] = a[2] ^ a[7] ^ a[12] ^ a[17] ^ a[22]
		bc[3] = a[3] ^ a[8] ^ a[13] ^ a[18] ^ a[23]
		bc[4] = a[4] ^ a[9] ^ a[14] ^ a[19] ^ a[24]

		t := bc[4] ^ rotl64(bc[1], 1)
		a[0] ^= t
		a[5] ^= t
		a[10] ^= t
		a[15] ^= t
		a[20] ^= t
		t = bc[0] ^ rotl64(bc[2], 1)
		a[1] ^= t
		a[6] ^= t
		a[11] ^= t
		a[16] ^= t
		a[21] ^= t
		t = bc[1] ^ rotl64(bc[3], 1)
		a[2] ^= t
		a[7] ^= t
		a[12] ^= t
		a[17] ^= t
		a[22] ^= t
		t = bc[2] ^ rotl64(bc[4], 1)
		a[3] ^= t
		a[8] ^= t
		a[13] ^= t
		a[18] ^= t
		a[23] ^= t
		t = bc[3] ^ rotl64(bc[0], 1)
		a[4] ^= t
		a[9] ^= t
		a[14] ^= t
		a[19] ^= t
		a[24] ^= t

		// rho + pi (lane chase)
		t = a[1]
		for i := 0; i < 24; i++ {
			j := piLane[i]
			bc[0] = a[j]
			a[j] = rotl64(t, rhoOffset[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			bc[0] = a[j]
			bc[1] = a[j+1]
			bc[2] = a[j+2]
			bc[3] = a[j+3]
			bc[4] = a[j+4]
			a[j] ^= (^bc[1]) & bc[2]
			a[j+1] ^= (^bc[2]) & bc[3]
			a[j+2] ^= (^bc[3]) & bc[4]
			a[j+3] ^= (^bc[4]) & bc[0]
			a[j+4] ^= (^bc[0]) & bc[1]
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}
