// Package shamir implements Shamir secret sharing over the scalar field of
// the protocol's prime-order group: polynomial sampling and evaluation, and
// Lagrange interpolation coefficients for reconstruction at a chosen subset
// of signers.
package shamir

import (
	"fmt"
	"math/big"

	"threshold.network/tsig/group"
)

// Poly is a polynomial over the scalar field, represented as coefficients
// ordered from the constant term upward: c0 + c1*x + ... + ct*x^t. Its
// degree is exactly len(Coeffs)-1, and c0 is the secret for polynomials
// used as signing-key shares.
type Poly struct {
	Coeffs []*big.Int
}

// Degree returns the polynomial's degree.
func (p *Poly) Degree() int {
	return len(p.Coeffs) - 1
}

// Eval evaluates the polynomial at x using Horner's method.
func (p *Poly) Eval(x int64) *big.Int {
	order := group.Order()
	bigX := big.NewInt(x)

	result := new(big.Int)
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		result.Mul(result, bigX)
		result.Add(result, p.Coeffs[i])
		result.Mod(result, order)
	}
	return result
}

// SamplePolyWithConstant returns a degree-t polynomial with its constant
// term fixed to c0 and every other coefficient sampled uniformly at
// random. Passing c0 = 0 produces one of the "binding" polynomials (r or
// u) whose value at x=0 must vanish so it contributes nothing to the joint
// public key.
func SamplePolyWithConstant(t int, c0 *big.Int) (*Poly, error) {
	if t < 0 {
		return nil, fmt.Errorf("shamir: degree must be non-negative, got %d", t)
	}

	coeffs := make([]*big.Int, t+1)
	coeffs[0] = new(big.Int).Mod(c0, group.Order())
	for i := 1; i <= t; i++ {
		c, err := group.SampleScalar()
		if err != nil {
			return nil, fmt.Errorf("shamir: sampling coefficient %d: %w", i, err)
		}
		coeffs[i] = c
	}

	return &Poly{Coeffs: coeffs}, nil
}
