// Package group implements the prime-order group primitives the signing
// protocol is built over: scalar and point arithmetic on the secp256k1
// elliptic curve, canonical point/scalar encoding, and the domain-separated
// hash oracles the protocol's Σ-protocol and Fiat–Shamir transform rely on.
package group

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

var curve = btcec.S256()

// Order returns the order ℓ of the secp256k1 base point's subgroup. Scalars
// throughout the protocol are taken modulo this value.
func Order() *big.Int {
	return new(big.Int).Set(curve.N)
}

// Point is an element of the group: a point on the secp256k1 curve, or the
// distinguished identity value.
type Point struct {
	x, y *big.Int
}

// BasePoint returns the canonical secp256k1 generator g.
func BasePoint() *Point {
	return &Point{new(big.Int).Set(curve.Gx), new(big.Int).Set(curve.Gy)}
}

// Identity returns the group's identity element. Following the convention
// also used by this protocol's teacher codebase, the identity is
// represented as the cartesian pair (0, 0), which does not lie on the
// secp256k1 curve and therefore cannot collide with a real point.
func Identity() *Point {
	return &Point{big.NewInt(0), big.NewInt(0)}
}

// IsIdentity reports whether p is the group identity.
func (p *Point) IsIdentity() bool {
	return p.x.Sign() == 0 && p.y.Sign() == 0
}

// Copy returns an independent copy of p.
func (p *Point) Copy() *Point {
	return &Point{new(big.Int).Set(p.x), new(big.Int).Set(p.y)}
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	if p.IsIdentity() {
		return q.Copy()
	}
	if q.IsIdentity() {
		return p.Copy()
	}
	x, y := curve.Add(p.x, p.y, q.x, q.y)
	return &Point{x, y}
}

// Neg returns -p.
func (p *Point) Neg() *Point {
	if p.IsIdentity() {
		return Identity()
	}
	return &Point{new(big.Int).Set(p.x), new(big.Int).Sub(curve.P, p.y)}
}

// Sub returns p - q.
func (p *Point) Sub(q *Point) *Point {
	return p.Add(q.Neg())
}

// Mul returns s·p.
func (p *Point) Mul(s *big.Int) *Point {
	sMod := new(big.Int).Mod(s, curve.N)
	if sMod.Sign() == 0 || p.IsIdentity() {
		return Identity()
	}
	x, y := curve.ScalarMult(p.x, p.y, sMod.Bytes())
	return &Point{x, y}
}

// BaseMul returns s·g, where g is the canonical base point.
func BaseMul(s *big.Int) *Point {
	sMod := new(big.Int).Mod(s, curve.N)
	if sMod.Sign() == 0 {
		return Identity()
	}
	x, y := curve.ScalarBaseMult(sMod.Bytes())
	return &Point{x, y}
}

// Equal reports whether p and q represent the same group element.
func (p *Point) Equal(q *Point) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// IsOnCurve reports whether p is a valid non-identity point on the curve.
func (p *Point) IsOnCurve() bool {
	if p.IsIdentity() {
		return false
	}
	return curve.IsOnCurve(p.x, p.y)
}

// Bytes returns the canonical SEC1-compressed encoding of p: a one-byte
// parity prefix followed by the 32-byte big-endian X coordinate. The
// identity element encodes as 33 zero bytes, a value that can never be
// produced by SerializeCompressed for a real curve point.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, 33)
	}
	pk := btcec.PublicKey{Curve: curve, X: p.x, Y: p.y}
	return pk.SerializeCompressed()
}

// DecodePoint decodes the canonical encoding produced by Bytes. It returns
// an error rather than panicking when b does not encode a valid point on
// the curve, per the protocol's malformed-input error class.
func DecodePoint(b []byte) (*Point, error) {
	if len(b) == 33 && isAllZero(b) {
		return Identity(), nil
	}
	pk, err := btcec.ParsePubKey(b, curve)
	if err != nil {
		return nil, fmt.Errorf("group: invalid point encoding: %w", err)
	}
	return &Point{pk.X, pk.Y}, nil
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// SampleScalar returns a scalar sampled uniformly from [0, ℓ) using
// rejection sampling over a CSPRNG, the same technique the teacher codebase
// uses for nonce generation.
func SampleScalar() (*big.Int, error) {
	b := make([]byte, 32)
	for {
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("group: reading random bytes: %w", err)
		}
		i := new(big.Int).SetBytes(b)
		if i.Cmp(curve.N) < 0 {
			return i, nil
		}
	}
}

// FillRandom fills b with uniform random bytes from a CSPRNG, surfacing any
// RNG failure to the caller rather than silently falling back.
func FillRandom(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("group: reading random bytes: %w", err)
	}
	return nil
}

// ScalarToBytes encodes s as a 32-byte little-endian representation,
// reduced modulo ℓ, per the protocol's wire contract.
func ScalarToBytes(s *big.Int) []byte {
	be := new(big.Int).Mod(s, curve.N).FillBytes(make([]byte, 32))
	reverse(be)
	return be
}

// ScalarFromBytes decodes a 32-byte little-endian scalar encoding, reducing
// the result modulo ℓ.
func ScalarFromBytes(b []byte) (*big.Int, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("group: scalar encoding must be 32 bytes, got %d", len(b))
	}
	be := make([]byte, 32)
	copy(be, b)
	reverse(be)
	s := new(big.Int).SetBytes(be)
	return s.Mod(s, curve.N), nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// concat performs a concatenation of byte slices without modifying any of
// the slices passed in, mirroring the teacher codebase's own concat helper.
func concat(a []byte, bs ...[]byte) []byte {
	c := make([]byte, len(a))
	copy(c, a)
	for _, b := range bs {
		c = append(c, b...)
	}
	return c
}
