package tsig

import (
	"fmt"

	"threshold.network/tsig/group"
	"threshold.network/tsig/sigma"
)

// Sig2 runs Round 2 for signer sk, given its Round 1 state st and the
// vector of every participating signer's Round 1 commitment. It derives
// the message- and commitment-vector-bound generators G0 and G1, opens its
// nonce point as A = g^a G0^r G1^u, and attaches a NIZK proof binding A, B,
// and the signer's public key share to a single witness (a, s, r, u).
//
// Sig2 does not zeroize or invalidate st; the SignerState it returns shares
// st's nonce scalar a unchanged, since Round 3's partial response is
// computed directly from it, alongside the opened point A for bookkeeping.
func Sig2(par *Params, message []byte, pkShare *PublicKeyShare, sk *SecretKeyShare, muVec []MuEntry, st *SignerState) (*OpeningMessage, *SignerState, error) {
	if st == nil || st.a == nil {
		return nil, nil, fmt.Errorf("tsig: signer state missing or already consumed")
	}

	sorted := sortedMuVec(muVec)
	encoded := serializeMuVec(sorted)

	g0 := group.G0(message, encoded)
	g1 := group.G1(message, encoded)

	a2 := par.G.Mul(st.a).Add(g0.Mul(sk.R)).Add(g1.Mul(sk.U))

	stmt := sigma.Statement{
		PK:  pkShare.PK,
		A:   a2,
		B:   st.b,
		G0:  g0,
		G1:  g1,
		Rho: st.rho,
	}
	wit := sigma.Witness{A: st.a, S: sk.S, R: sk.R, U: sk.U}

	proof, err := sigma.Prove(par.H, par.V, stmt, wit)
	if err != nil {
		return nil, nil, fmt.Errorf("tsig: proving Round 2 statement: %w", err)
	}

	opening := &OpeningMessage{ID: sk.ID, A: a2, B: st.b, Rho: st.rho, Proof: proof}
	next := &SignerState{a: st.a, a2: a2, g0: g0, g1: g1, muVec: sorted}

	return opening, next, nil
}
