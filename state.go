package tsig

import (
	"math/big"

	"threshold.network/tsig/group"
)

// MuEntry is one signer's Round 1 commitment as recorded in the vector
// every signer hashes into its Round 2 commitment: an id and the 32-byte
// commitment digest that signer published.
type MuEntry struct {
	ID uint64
	Mu [32]byte
}

// SignerState carries the secrets and intermediate values a signer must
// remember between rounds of the protocol. Its fields are unexported
// because the only legitimate operations on a SignerState are "pass it to
// the next round" and "zeroize it" — there is no supported way to inspect
// or clone it, the same "owned handle" discipline the teacher codebase
// applies to its own in-flight nonce state.
type SignerState struct {
	a     *big.Int
	rho   [32]byte
	b     *group.Point
	a2    *group.Point
	g0    *group.Point
	g1    *group.Point
	muVec []MuEntry
}

// Zeroize scrubs the secret scalar and randomness held in st and drops its
// references to intermediate points, so a SignerState cannot be
// accidentally reused once its round has completed. It is safe to call on
// a nil receiver and safe to call more than once.
func (st *SignerState) Zeroize() {
	if st == nil {
		return
	}
	if st.a != nil {
		st.a.SetInt64(0)
	}
	for i := range st.rho {
		st.rho[i] = 0
	}
	st.a = nil
	st.b = nil
	st.a2 = nil
	st.g0 = nil
	st.g1 = nil
	st.muVec = nil
}
