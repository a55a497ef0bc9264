// Package pedersen implements a Pedersen-commitment combiner for threshold
// signature partial results: rather than broadcasting a signer's raw
// partial response z_i in the clear during aggregation, each signer
// commits to it, commitments are aggregated homomorphically, and only the
// final sum is opened. This lets a coordinator verify the aggregate
// without learning any individual signer's contribution before combination
// completes.
package pedersen

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
)

// HVC derives the Pedersen commitment's second generator from the
// protocol's base point g, the same "nothing-up-my-sleeve" derivation the
// group package uses for its own fixed generators, so that no party can
// know the discrete log relating h to g.
func HVC(g *group.Point) *group.Point {
	return group.HashToPoint("derive_h_from_g", g.Bytes())
}

// CommitmentMsg is a signer's published commitment to its partial result.
type CommitmentMsg struct {
	ID uint64
	C  *group.Point
}

// Opening is the randomness a signer used when committing, revealed only
// once every signer's commitment has been collected.
type Opening struct {
	ID uint64
	R  *big.Int
}

// CommitZ commits to z under generators g and hvc, returning the
// commitment to publish and the opening to reveal afterward.
func CommitZ(g, hvc *group.Point, id uint64, z *big.Int) (*CommitmentMsg, *Opening, error) {
	r, err := group.SampleScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("pedersen: sampling commitment randomness: %w", err)
	}
	c := g.Mul(z).Add(hvc.Mul(r))
	return &CommitmentMsg{ID: id, C: c}, &Opening{ID: id, R: r}, nil
}

// AggregateCommitments homomorphically sums a set of published
// commitments into the commitment to their combined value.
func AggregateCommitments(msgs []*CommitmentMsg) *group.Point {
	sum := group.Identity()
	for _, m := range msgs {
		sum = sum.Add(m.C)
	}
	return sum
}

// AggregateOpenings sums a set of openings into the randomness that opens
// the aggregate commitment.
func AggregateOpenings(openings []*Opening) *big.Int {
	sum := new(big.Int)
	order := group.Order()
	for _, o := range openings {
		sum.Add(sum, o.R)
		sum.Mod(sum, order)
	}
	return sum
}

// VerifyAggregate checks that the aggregate commitment c opens to z under
// randomness r, i.e. that c == g^z hvc^r.
func VerifyAggregate(g, hvc *group.Point, c *group.Point, z, r *big.Int) bool {
	if c == nil || z == nil || r == nil {
		return false
	}
	return c.Equal(g.Mul(z).Add(hvc.Mul(r)))
}
