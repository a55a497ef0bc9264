package shamir

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
)

// LagrangeCoeff computes the interpolation weight L_{i,SS} = Π_{k∈SS,
// k≠i} k/(k−i) mod ℓ, the scalar by which signer i's share is weighted to
// reconstruct the joint secret at x=0 from the signing set SS.
//
// LagrangeCoeff returns an error — rather than silently producing a
// meaningless result — if i does not appear in ss, if ss contains a
// duplicate id, or if the computed denominator is not invertible modulo ℓ
// (a degenerate signing set).
func LagrangeCoeff(i int64, ss []int64) (*big.Int, error) {
	order := group.Order()

	num := big.NewInt(1)
	den := big.NewInt(1)
	seen := make(map[int64]bool, len(ss))
	found := false

	for _, k := range ss {
		if seen[k] {
			return nil, fmt.Errorf("shamir: duplicate id %d in signing set", k)
		}
		seen[k] = true

		if k == i {
			found = true
			continue
		}

		num.Mul(num, big.NewInt(k))
		num.Mod(num, order)

		diff := new(big.Int).Sub(big.NewInt(k), big.NewInt(i))
		diff.Mod(diff, order)
		den.Mul(den, diff)
		den.Mod(den, order)
	}

	if !found {
		return nil, fmt.Errorf("shamir: id %d is not a member of the signing set", i)
	}

	denInv := new(big.Int).ModInverse(den, order)
	if denInv == nil {
		return nil, fmt.Errorf("shamir: degenerate signing set: denominator is not invertible")
	}

	res := new(big.Int).Mul(num, denInv)
	return res.Mod(res, order), nil
}
