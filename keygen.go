package tsig

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
	"threshold.network/tsig/shamir"
)

// KGen runs trusted-dealer key generation for par: it samples a joint
// secret and three independent degree-t polynomials (s carrying the
// secret, r and u constant-term-zero binding polynomials), evaluates each
// at every signer index 1..par.N, and returns the joint public key, the
// per-signer secret shares, and their public commitments.
//
// A production deployment would replace this trusted dealer with a
// distributed key generation protocol; KGen exists so the signing
// protocol can be exercised and tested end to end without one.
func KGen(par *Params) (*group.Point, []*SecretKeyShare, []*PublicKeyShare, error) {
	secret, err := group.SampleScalar()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tsig: sampling joint secret: %w", err)
	}

	sPoly, err := shamir.SamplePolyWithConstant(par.T, secret)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tsig: sampling s polynomial: %w", err)
	}
	rPoly, err := shamir.SamplePolyWithConstant(par.T, big.NewInt(0))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tsig: sampling r polynomial: %w", err)
	}
	uPoly, err := shamir.SamplePolyWithConstant(par.T, big.NewInt(0))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tsig: sampling u polynomial: %w", err)
	}

	shares := make([]*SecretKeyShare, par.N)
	pubShares := make([]*PublicKeyShare, par.N)
	for idx := 1; idx <= par.N; idx++ {
		i := int64(idx)
		s := sPoly.Eval(i)
		r := rPoly.Eval(i)
		u := uPoly.Eval(i)

		shares[idx-1] = &SecretKeyShare{ID: uint64(idx), S: s, R: r, U: u}

		pki := par.G.Mul(s).Add(par.H.Mul(r)).Add(par.V.Mul(u))
		pubShares[idx-1] = &PublicKeyShare{ID: uint64(idx), PK: pki}
	}

	pk := par.G.Mul(secret)
	return pk, shares, pubShares, nil
}
