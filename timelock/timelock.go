// Package timelock implements time-lock encryption in the style of Rivest,
// Shamir, and Wagner's repeated-squaring construction, used here to encrypt
// a Paillier-encoded scalar share so that it becomes recoverable only after
// a fixed number of sequential modular squarings have been carried out —
// work that cannot be parallelized and so imposes a minimum wall-clock
// delay on decryption regardless of available compute.
//
// Setup retains the RSA-style factorization of N for the duration it takes
// to precompute the puzzle's time-lock generator, then scrubs it: nobody,
// including the party that ran Setup, can use it to skip the repeated
// squaring at decryption time.
package timelock

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Params holds a time-lock puzzle's public parameters: an RSA modulus N, a
// generator G used to derive a per-ciphertext puzzle base, the puzzle's
// time parameter T (the number of sequential squarings required to
// decrypt), and the fixed-time-exponentiated value H = G^(2^T) mod N that
// only Setup (which retains N's factorization momentarily) can compute
// directly.
type Params struct {
	N, G, H *big.Int
	T       int
}

// Ciphertext is a time-locked encryption of a scalar, Paillier-encoded
// modulo N², together with additional authenticated data that must be
// supplied unchanged at decryption time.
type Ciphertext struct {
	U, V *big.Int
	AAD  []byte
}

// Bytes encodes ct per spec.md §6's TimedCiphertext wire format:
// length-prefixed big-endian U and V, followed by the raw AAD bytes.
func (ct *Ciphertext) Bytes() []byte {
	uBytes := ct.U.Bytes()
	vBytes := ct.V.Bytes()

	out := make([]byte, 0, 4+len(uBytes)+4+len(vBytes)+len(ct.AAD))

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(uBytes)))
	out = append(out, lenBuf[:]...)
	out = append(out, uBytes...)

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(vBytes)))
	out = append(out, lenBuf[:]...)
	out = append(out, vBytes...)

	out = append(out, ct.AAD...)
	return out
}

// ParseCiphertext decodes the wire format produced by Bytes. Any trailing
// bytes after V are taken as AAD verbatim, since AAD has no length prefix
// of its own and always runs to the end of the message.
func ParseCiphertext(b []byte) (*Ciphertext, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("timelock: ciphertext too short to contain length prefixes")
	}

	uLen := binary.BigEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(uLen) {
		return nil, fmt.Errorf("timelock: truncated U field")
	}
	uBytes := b[:uLen]
	b = b[uLen:]

	if len(b) < 4 {
		return nil, fmt.Errorf("timelock: missing V length prefix")
	}
	vLen := binary.BigEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(vLen) {
		return nil, fmt.Errorf("timelock: truncated V field")
	}
	vBytes := b[:vLen]
	b = b[vLen:]

	aad := make([]byte, len(b))
	copy(aad, b)

	return &Ciphertext{
		U:   new(big.Int).SetBytes(uBytes),
		V:   new(big.Int).SetBytes(vBytes),
		AAD: aad,
	}, nil
}

// Setup generates a fresh time-lock puzzle: an RSA modulus of (at least)
// primeBits bits per prime factor, and a puzzle base G together with its
// forward-computed H = G^(2^timeParam) mod N. The factors p, q and Euler
// totient φ(N) are held only long enough to compute H, then zeroed, so
// that decryption genuinely requires timeParam sequential squarings rather
// than a single modular exponentiation.
func Setup(primeBits, timeParam int) (*Params, error) {
	if primeBits < 2 {
		return nil, fmt.Errorf("timelock: primeBits must be at least 2, got %d", primeBits)
	}
	if timeParam < 0 {
		return nil, fmt.Errorf("timelock: timeParam must be non-negative, got %d", timeParam)
	}

	p, err := rand.Prime(rand.Reader, primeBits)
	if err != nil {
		return nil, fmt.Errorf("timelock: generating prime p: %w", err)
	}
	q, err := rand.Prime(rand.Reader, primeBits)
	if err != nil {
		return nil, fmt.Errorf("timelock: generating prime q: %w", err)
	}

	n := new(big.Int).Mul(p, q)

	g, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, fmt.Errorf("timelock: sampling puzzle base: %w", err)
	}
	if g.Sign() == 0 {
		g = big.NewInt(2)
	}

	one := big.NewInt(1)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	phi := new(big.Int).Mul(pMinus1, qMinus1)

	exp := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(timeParam)), phi)
	h := new(big.Int).Exp(g, exp, n)

	// The factorization is only needed to shortcut this one computation;
	// retaining it any longer would let Setup's caller skip the puzzle's
	// time delay entirely.
	p.SetInt64(0)
	q.SetInt64(0)
	phi.SetInt64(0)

	return &Params{N: n, G: g, H: h, T: timeParam}, nil
}

// Encrypt Paillier-encrypts s under par's modulus, masked by a time-locked
// one-time pad derived from repeatedly squaring a fresh random base. s
// must lie in [0, N); Encrypt panics otherwise, since a plaintext outside
// the Paillier message space is a programming error in the caller rather
// than a condition a well-formed protocol run could ever trigger.
func Encrypt(par *Params, s *big.Int, aad []byte) (*Ciphertext, error) {
	if s.Sign() < 0 || s.Cmp(par.N) >= 0 {
		panic("timelock: plaintext out of range [0, N)")
	}

	nSquared := new(big.Int).Mul(par.N, par.N)

	r, err := rand.Int(rand.Reader, nSquared)
	if err != nil {
		return nil, fmt.Errorf("timelock: sampling encryption randomness: %w", err)
	}
	if r.Sign() == 0 {
		r = big.NewInt(1)
	}

	u := new(big.Int).Exp(par.G, r, par.N)

	rTimesN := new(big.Int).Mul(r, par.N)
	mask := new(big.Int).Exp(par.H, rTimesN, nSquared)

	onePlusN := new(big.Int).Add(big.NewInt(1), par.N)
	encoded := new(big.Int).Exp(onePlusN, s, nSquared)

	v := new(big.Int).Mul(mask, encoded)
	v.Mod(v, nSquared)

	aadCopy := make([]byte, len(aad))
	copy(aadCopy, aad)

	return &Ciphertext{U: u, V: v, AAD: aadCopy}, nil
}

// Decrypt recovers the plaintext encrypted in ct, performing par.T
// sequential modular squarings of ct.U to derive the time-lock mask — the
// work Setup's factorization shortcut was deliberately discarded to avoid
// letting anyone skip. Decrypt reports false, rather than an error, if aad
// does not match the value supplied at encryption time, if the mask is not
// invertible modulo N², or if the decoded value does not fit in 32 bytes
// (so a plaintext above 2^256 that Encrypt accepted under a larger N is
// also reported as false).
func Decrypt(par *Params, ct *Ciphertext, aad []byte) (*big.Int, bool) {
	if !bytes.Equal(ct.AAD, aad) {
		return nil, false
	}

	nSquared := new(big.Int).Mul(par.N, par.N)

	w := new(big.Int).Mod(ct.U, par.N)
	for i := 0; i < par.T; i++ {
		w.Mul(w, w)
		w.Mod(w, par.N)
	}

	mask := new(big.Int).Exp(w, par.N, nSquared)
	maskInv := new(big.Int).ModInverse(mask, nSquared)
	if maskInv == nil {
		return nil, false
	}

	x := new(big.Int).Mul(ct.V, maskInv)
	x.Mod(x, nSquared)

	xMinus1 := new(big.Int).Sub(x, big.NewInt(1))
	xMinus1.Mod(xMinus1, nSquared)

	s := new(big.Int)
	s.Div(xMinus1, par.N)
	s.Mod(s, par.N)

	if len(s.Bytes()) > 32 {
		return nil, false
	}
	return s, true
}

// EncodePlaintext left-pads s to a fixed 32-byte big-endian representation,
// the canonical form the tracing share wrapped inside a time-lock
// ciphertext is encoded in.
func EncodePlaintext(s *big.Int) [32]byte {
	var out [32]byte
	s.FillBytes(out[:])
	return out
}
