// Package tsig implements the threshold Schnorr signing protocol: setup and
// key generation over Shamir-shared signing keys, the three-round signing
// protocol (commit, open, partial-sign), share combination, and
// verification. Its component packages (group, shamir, sigma) supply the
// underlying algebra; this package wires them into the protocol proper,
// following the same split the teacher codebase draws between its curve and
// hashing primitives and its participant/signer protocol logic.
package tsig

import (
	"fmt"

	"threshold.network/tsig/group"
)

// Params holds the public parameters shared by every participant in an
// instance of the protocol: the group size n, the reconstruction threshold
// t (t+1 signers are required to produce a signature), and the three
// generators the signing equations are built over.
type Params struct {
	N, T int
	G, H, V *group.Point
}

// Setup derives the public parameters for an n-party, t-threshold instance.
// G is the group's canonical base point; H and V are deterministically
// derived, nothing-up-my-sleeve generators whose discrete logarithms with
// respect to G are unknown to any participant.
func Setup(n, t int) (*Params, error) {
	if n <= 0 {
		return nil, fmt.Errorf("tsig: n must be positive, got %d", n)
	}
	if t < 1 || t >= n {
		return nil, fmt.Errorf("tsig: threshold t must satisfy 1 <= t < n, got t=%d n=%d", t, n)
	}
	return &Params{
		N: n,
		T: t,
		G: group.BasePoint(),
		H: group.DeriveGenerator("h"),
		V: group.DeriveGenerator("v"),
	}, nil
}
