package group

import (
	"encoding/binary"
	"math/big"
)

// HashToPoint maps a tagged message to a uniformly-distributed curve point
// using try-and-increment: it hashes (tag, msgs, counter) to a candidate X
// coordinate and accepts it once x^3 + 7 mod p is a quadratic residue,
// incrementing the counter otherwise. This is the same square-root trick
// the teacher codebase's BIP-340 liftX helper uses, generalized into a
// loop so it can be applied to an arbitrary tagged message rather than
// only to an already-valid X coordinate.
//
// Deriving generators this way (rather than as hashToScalar(tag)·g) is what
// keeps their discrete logs with respect to g unknown: a scalar-multiply
// construction would make that relationship exactly the hash output.
func HashToPoint(tag string, msgs ...[]byte) *Point {
	var counter uint32
	for {
		cb := make([]byte, 4)
		binary.BigEndian.PutUint32(cb, counter)

		all := make([][]byte, 0, len(msgs)+1)
		all = append(all, msgs...)
		all = append(all, cb)

		h := taggedHash(tag, all...)
		x := new(big.Int).SetBytes(h[:32])
		x.Mod(x, curve.P)

		if p := liftX(x); p != nil {
			return p
		}
		counter++
	}
}

// liftX returns the point P on the curve with x(P) = x and an even Y
// coordinate, or nil if no such point exists. secp256k1's field prime is
// congruent to 3 mod 4, so the square root of a quadratic residue c is
// simply c^((p+1)/4) mod p.
func liftX(x *big.Int) *Point {
	p := curve.P
	if x.Cmp(p) >= 0 {
		return nil
	}

	c := new(big.Int).Exp(x, big.NewInt(3), p)
	c.Add(c, big.NewInt(7))
	c.Mod(c, p)

	e := new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2)
	y := new(big.Int).Exp(c, e, p)

	y2 := new(big.Int).Exp(y, big.NewInt(2), p)
	if y2.Cmp(c) != 0 {
		return nil
	}

	if y.Bit(0) != 0 {
		y.Sub(p, y)
	}

	return &Point{x, y}
}
