package group

import (
	"crypto/sha512"
	"encoding/binary"
	"math/big"
)

// domainPrefix is prefixed to every tagged hash computed by this package,
// separating this protocol's oracles from any other hash domain that might
// otherwise collide on the same (tag, message) pair.
const domainPrefix = "tsig-v1"

// taggedHash computes SHA-512(domainPrefix || tag || msgs...), the wide hash
// every domain-separated oracle in this package is built from.
func taggedHash(tag string, msgs ...[]byte) [64]byte {
	h := sha512.New()
	h.Write([]byte(domainPrefix))
	h.Write([]byte(tag))
	for _, m := range msgs {
		h.Write(m)
	}
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashToScalar(tag string, msgs ...[]byte) *big.Int {
	h := taggedHash(tag, msgs...)
	s := new(big.Int).SetBytes(h[:])
	return s.Mod(s, curve.N)
}

func hashTo32(tag string, msgs ...[]byte) [32]byte {
	h := taggedHash(tag, msgs...)
	var out [32]byte
	copy(out[:], h[:32])
	return out
}

func idBytes(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)
	return b
}

// Hcom is the Round 1 commitment oracle: Hcom(i, ρ, B) -> 32 bytes.
func Hcom(i uint64, rho [32]byte, b *Point) [32]byte {
	return hashTo32("Hcom", idBytes(i), rho[:], b.Bytes())
}

// F0 binds a signer's r-share into the Round 1 commitment point B_i.
func F0(rho [32]byte) *Point {
	return HashToPoint("F0", rho[:])
}

// F1 binds a signer's u-share into the Round 1 commitment point B_i.
func F1(rho [32]byte) *Point {
	return HashToPoint("F1", rho[:])
}

// G0 binds a signer's r-share into the Round 2 commitment point A_i, over
// the message and the serialized, ascending-id-sorted Round 1 commitment
// vector, so that every signer derives an identical G0.
func G0(message, serializedMuVec []byte) *Point {
	return HashToPoint("G0", message, serializedMuVec)
}

// G1 is G0's u-share counterpart.
func G1(message, serializedMuVec []byte) *Point {
	return HashToPoint("G1", message, serializedMuVec)
}

// Hsig computes the Fiat–Shamir challenge for the final Schnorr equation:
// c = Hsig(Â, pk, m).
func Hsig(ahat, pk *Point, message []byte) *big.Int {
	return hashToScalar("Hsig", ahat.Bytes(), pk.Bytes(), message)
}

// HFS computes the Σ-protocol's Fiat–Shamir challenge over the full
// transcript of announcements and public statement values.
func HFS(xa, xb, xpk, a, b, pk, g0, g1 *Point, rho [32]byte) *big.Int {
	return hashToScalar(
		"HFS",
		concat(xa.Bytes(), xb.Bytes(), xpk.Bytes()),
		concat(a.Bytes(), b.Bytes(), pk.Bytes()),
		concat(g0.Bytes(), g1.Bytes(), rho[:]),
	)
}

// DeriveGenerator derives a "nothing-up-my-sleeve" generator from a fixed
// tag: hash_to_point("Gen" || tag). Used to produce the protocol's h and v
// parameters, whose discrete logs with respect to g must remain unknown to
// everyone.
func DeriveGenerator(tag string) *Point {
	return HashToPoint("Gen", []byte(tag))
}
