package tsig

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
	"threshold.network/tsig/shamir"
	"threshold.network/tsig/sigma"
)

// Sig3 runs Round 3 for signer sk: it validates every signing-set member's
// Round 2 opening, its own included, against its Round 1 commitment and its NIZK
// proof, aggregates the validated nonce points into the group commitment
// Â, and returns signer sk's weighted partial Schnorr response.
//
// ss is the signing set: the full list of signer ids participating in
// this signature, which must include signerID and have at least t+1
// members. openings and pubShares must contain an entry for every id in
// ss. Any inconsistency among a participant's contributions is reported as
// a ProtocolViolationError naming that signer, never silently ignored.
func Sig3(
	par *Params,
	message []byte,
	ss []uint64,
	signerID uint64,
	pk *group.Point,
	pubShares map[uint64]*PublicKeyShare,
	sk *SecretKeyShare,
	st *SignerState,
	muVec []MuEntry,
	openings map[uint64]*OpeningMessage,
) (*PartialSignature, error) {
	if len(ss) < par.T+1 {
		return nil, fmt.Errorf("tsig: signing set has %d members, need at least t+1=%d", len(ss), par.T+1)
	}

	member := false
	ssInt := make([]int64, len(ss))
	for i, id := range ss {
		ssInt[i] = int64(id)
		if id == signerID {
			member = true
		}
	}
	if !member {
		return nil, fmt.Errorf("tsig: signer %d is not a member of the signing set", signerID)
	}

	muByID := make(map[uint64][32]byte, len(muVec))
	for _, e := range muVec {
		muByID[e.ID] = e.Mu
	}

	sorted := sortedMuVec(muVec)
	encoded := serializeMuVec(sorted)
	g0 := group.G0(message, encoded)
	g1 := group.G1(message, encoded)

	ahat := group.Identity()
	for _, id := range ss {
		op, ok := openings[id]
		if !ok {
			return nil, &ProtocolViolationError{SignerID: id, Reason: "opening missing from signing set"}
		}
		if op.A == nil || op.B == nil {
			return nil, &MalformedInputError{Field: "OpeningMessage", Err: fmt.Errorf("signer %d: nil commitment point", id)}
		}
		mu, ok := muByID[id]
		if !ok {
			return nil, &ProtocolViolationError{SignerID: id, Reason: "no Round 1 commitment for signer in signing set"}
		}
		if group.Hcom(id, op.Rho, op.B) != mu {
			return nil, &ProtocolViolationError{SignerID: id, Reason: "commitment mismatch: Hcom(i, rho_i, B_i) != mu_i"}
		}
		pubShare, ok := pubShares[id]
		if !ok {
			return nil, &MalformedInputError{Field: "pubShares", Err: fmt.Errorf("missing public key share for signer %d", id)}
		}

		stmt := sigma.Statement{PK: pubShare.PK, A: op.A, B: op.B, G0: g0, G1: g1, Rho: op.Rho}
		if !sigma.Verify(par.H, par.V, stmt, op.Proof) {
			return nil, &ProtocolViolationError{SignerID: id, Reason: "NIZK proof verification failed"}
		}

		lambda, err := shamir.LagrangeCoeff(int64(id), ssInt)
		if err != nil {
			return nil, fmt.Errorf("tsig: computing Lagrange coefficient for signer %d: %w", id, err)
		}
		ahat = ahat.Add(op.A.Mul(lambda))
	}

	c := group.Hsig(ahat, pk, message)

	lambdaI, err := shamir.LagrangeCoeff(int64(signerID), ssInt)
	if err != nil {
		return nil, fmt.Errorf("tsig: computing own Lagrange coefficient: %w", err)
	}

	if st == nil || st.a == nil {
		return nil, fmt.Errorf("tsig: signer state missing or already consumed")
	}

	zi := new(big.Int).Mul(c, sk.S)
	zi.Add(zi, st.a)
	zi.Mul(zi, lambdaI)
	zi.Mod(zi, group.Order())

	return &PartialSignature{ID: signerID, Z: zi}, nil
}
