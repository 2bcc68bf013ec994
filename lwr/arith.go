package lwr

// RoundedMatVec computes the compressed (rounded) product of the K-by-K
// block matrix A (expanded from seed) against a K*N coordinate vector
// (the secret s, for the public key, or the ephemeral r, for the
// ciphertext), writing K*N output bytes.
//
// transpose selects which operand of the block matrix is fetched for
// output row i and sum index l: transpose=false reads block A[i][l]
// (public key b = round(A·s)); transpose=true reads block A[l][i]
// (ciphertext u = round(Aᵀ·r)). All arithmetic is 32-bit signed,
// reduced mod Q by masking after every accumulation — no division, no
// branch on a coordinate of vec.
func RoundedMatVec(out []byte, seed [SeedLen]byte, vec []int16, transpose bool, mode Mode) {
	var block [N]int32
	var acc [N]int32

	for i := 0; i < K; i++ {
		for j := range acc {
			acc[j] = 0
		}

		for l := 0; l < K; l++ {
			row, col := byte(i), byte(l)
			if transpose {
				row, col = byte(l), byte(i)
			}
			GenerateMatrixBlock(block[:], seed, row, col, mode)

			vecRow := vec[l*N : l*N+N]
			for j := 0; j < N; j++ {
				acc[j] = (acc[j] + block[j]*int32(vecRow[j])) & QMask
			}
		}

		for j := 0; j < N; j++ {
			out[i*N+j] = byte((acc[j] & QMask) >> Shift)
		}
	}
}

// ReconciliationValue computes the N-byte value v (or, at the decapsulating
// side, v') from a compressed matrix-vector product and a small
// coordinate vector: for each column j, sum over row l of
// compressed[l*N+j] (read as an unsigned byte) times small[l*N+j],
// keeping only the low 8 bits of the running sum. The result is kept as
// raw bytes, not reduced mod Q — it is an approximation both parties
// derive independently and reconcile via the safe zone, not a value
// either party needs exactly.
func ReconciliationValue(out []byte, compressed []byte, small []int16) {
	for j := 0; j < N; j++ {
		var acc int32
		for l := 0; l < K; l++ {
			acc += int32(compressed[l*N+j]) * int32(small[l*N+j])
		}
		out[j] = byte(acc)
	}
}
