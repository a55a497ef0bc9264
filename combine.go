package tsig

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
	"threshold.network/tsig/shamir"
)

// Combine aggregates every signing-set member's opening and partial
// signature into a complete Signature. It recomputes the Lagrange-weighted
// group commitment Â the same way Sig3 does, so a coordinator that only
// ever sees openings and partial signatures (never secret shares) can
// assemble the final signature.
func Combine(ss []uint64, openings map[uint64]*OpeningMessage, partials map[uint64]*PartialSignature) (*Signature, error) {
	ssInt := make([]int64, len(ss))
	for i, id := range ss {
		ssInt[i] = int64(id)
	}

	ahat := group.Identity()
	z := new(big.Int)
	for _, id := range ss {
		op, ok := openings[id]
		if !ok {
			return nil, &ProtocolViolationError{SignerID: id, Reason: "opening missing for combine"}
		}
		lambda, err := shamir.LagrangeCoeff(int64(id), ssInt)
		if err != nil {
			return nil, fmt.Errorf("tsig: computing Lagrange coefficient for signer %d: %w", id, err)
		}
		ahat = ahat.Add(op.A.Mul(lambda))

		ps, ok := partials[id]
		if !ok {
			return nil, &ProtocolViolationError{SignerID: id, Reason: "partial signature missing for combine"}
		}
		z.Add(z, ps.Z)
		z.Mod(z, group.Order())
	}

	return &Signature{AHat: ahat, Z: z}, nil
}

// Verify checks sig against the joint public key pk over message.
func Verify(par *Params, pk *group.Point, message []byte, sig *Signature) bool {
	if sig == nil || sig.AHat == nil || sig.Z == nil || pk == nil {
		return false
	}
	c := group.Hsig(sig.AHat, pk, message)
	lhs := par.G.Mul(sig.Z)
	rhs := sig.AHat.Add(pk.Mul(c))
	return lhs.Equal(rhs)
}
