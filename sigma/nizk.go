// Package sigma implements the three-equation Σ-protocol used to prove, in
// zero knowledge, that a signer's Round 1 and Round 2 commitment points and
// its public key share all open consistently to the same secret witness
// (a, s, r, u). It is a Fiat–Shamir-transformed, non-interactive
// generalization of the single-equation Schnorr proof-of-knowledge pattern
// the teacher codebase uses for its challenge computation, extended here to
// three simultaneous equations sharing witness components.
package sigma

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
)

// Statement bundles the public values a Proof is produced or checked
// against:
//
//	A  = g·a + G0·r + G1·u
//	B  = g·a + F0(ρ)·r + F1(ρ)·u
//	PK = g·s + h·r + v·u
type Statement struct {
	PK, A, B, G0, G1 *group.Point
	Rho              [32]byte
}

// Witness bundles the secret values a Proof attests knowledge of.
type Witness struct {
	A, S, R, U *big.Int
}

// Proof is a non-interactive zero-knowledge proof of knowledge of a
// Witness satisfying a Statement: three announcement points and four
// response scalars.
type Proof struct {
	XA, XB, Xpk    *group.Point
	Za, Zs, Zr, Zu *big.Int
}

// Prove constructs a Proof for st given witness w. h and v are the
// protocol's second and third generators (Params.H and Params.V).
func Prove(h, v *group.Point, st Statement, w Witness) (*Proof, error) {
	ah, err := group.SampleScalar()
	if err != nil {
		return nil, fmt.Errorf("sigma: sampling announcement scalar: %w", err)
	}
	sh, err := group.SampleScalar()
	if err != nil {
		return nil, fmt.Errorf("sigma: sampling announcement scalar: %w", err)
	}
	rh, err := group.SampleScalar()
	if err != nil {
		return nil, fmt.Errorf("sigma: sampling announcement scalar: %w", err)
	}
	uh, err := group.SampleScalar()
	if err != nil {
		return nil, fmt.Errorf("sigma: sampling announcement scalar: %w", err)
	}

	f0 := group.F0(st.Rho)
	f1 := group.F1(st.Rho)

	xa := group.BaseMul(ah).Add(st.G0.Mul(rh)).Add(st.G1.Mul(uh))
	xb := group.BaseMul(ah).Add(f0.Mul(rh)).Add(f1.Mul(uh))
	xpk := group.BaseMul(sh).Add(h.Mul(rh)).Add(v.Mul(uh))

	e := group.HFS(xa, xb, xpk, st.A, st.B, st.PK, st.G0, st.G1, st.Rho)

	return &Proof{
		XA:  xa,
		XB:  xb,
		Xpk: xpk,
		Za:  respond(ah, w.A, e),
		Zs:  respond(sh, w.S, e),
		Zr:  respond(rh, w.R, e),
		Zu:  respond(uh, w.U, e),
	}, nil
}

func respond(announce, witness, challenge *big.Int) *big.Int {
	res := new(big.Int).Mul(witness, challenge)
	res.Add(res, announce)
	return res.Mod(res, group.Order())
}

// Verify checks proof against st. Any malformed or nil point in proof
// causes verification to fail rather than panic.
func Verify(h, v *group.Point, st Statement, proof *Proof) bool {
	if proof == nil {
		return false
	}
	if proof.XA == nil || proof.XB == nil || proof.Xpk == nil ||
		proof.Za == nil || proof.Zs == nil || proof.Zr == nil || proof.Zu == nil {
		return false
	}

	f0 := group.F0(st.Rho)
	f1 := group.F1(st.Rho)

	e := group.HFS(proof.XA, proof.XB, proof.Xpk, st.A, st.B, st.PK, st.G0, st.G1, st.Rho)

	lhsA := group.BaseMul(proof.Za).Add(st.G0.Mul(proof.Zr)).Add(st.G1.Mul(proof.Zu))
	rhsA := proof.XA.Add(st.A.Mul(e))
	if !lhsA.Equal(rhsA) {
		return false
	}

	lhsB := group.BaseMul(proof.Za).Add(f0.Mul(proof.Zr)).Add(f1.Mul(proof.Zu))
	rhsB := proof.XB.Add(st.B.Mul(e))
	if !lhsB.Equal(rhsB) {
		return false
	}

	lhsPk := group.BaseMul(proof.Zs).Add(h.Mul(proof.Zr)).Add(v.Mul(proof.Zu))
	rhsPk := proof.Xpk.Add(st.PK.Mul(e))
	return lhsPk.Equal(rhsPk)
}
