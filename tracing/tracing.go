// Package tracing implements a message-bound authority-recovery channel:
// an admitter holding a single long-term key can issue, for any message, a
// per-message token that lets it decrypt shares that were encrypted
// against that exact message — and no other. This lets a threshold
// signing deployment support an authorized recovery path (e.g. regulatory
// disclosure of which key shares contributed to a given signature)
// without giving the admitter a key that works across every message ever
// signed.
package tracing

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"threshold.network/tsig/group"
)

// AdmitterKey is the long-term keypair of a tracing admitter.
type AdmitterKey struct {
	SK *big.Int
	PK *group.Point
}

// SetupAdmitter generates a fresh admitter keypair. PK is derived from the
// protocol's canonical base point, matching every other public key in the
// system, rather than from the group identity.
func SetupAdmitter() (*AdmitterKey, error) {
	sk, err := group.SampleScalar()
	if err != nil {
		return nil, fmt.Errorf("tracing: sampling admitter secret key: %w", err)
	}
	return &AdmitterKey{SK: sk, PK: group.BaseMul(sk)}, nil
}

// Token is a per-message decryption capability: it lets its holder decrypt
// any Ciphertext produced for the exact message hash it was issued for,
// and no other.
type Token struct {
	MsgHash [32]byte
	Tau     *big.Int
}

// IssueToken derives the tracing token for message m under ad's secret
// key: τ = H(m)·sk, an ECDH-like binding between the admitter's key and
// the message being traced.
func IssueToken(ad *AdmitterKey, m []byte) *Token {
	msgHash := sha256.Sum256(m)
	h := new(big.Int).SetBytes(msgHash[:])
	h.Mod(h, group.Order())

	tau := new(big.Int).Mul(h, ad.SK)
	tau.Mod(tau, group.Order())

	return &Token{MsgHash: msgHash, Tau: tau}
}

// Ciphertext is a tracing-encrypted key share: a fresh ephemeral point C1,
// the 32-byte symmetric-encrypted payload, and the hash of the message the
// share is bound to.
type Ciphertext struct {
	C1      *group.Point
	C2      [32]byte
	MsgHash [32]byte
}

// Encrypt encrypts share under the admitter public key implied by token,
// for the message token was issued against, with an additional label
// (e.g. a signer id) mixed into the symmetric key so ciphertexts produced
// for different labels under the same token cannot be confused with one
// another. Decrypt must be called with the identical label.
func Encrypt(adPK *group.Point, token *Token, share [32]byte, label []byte) (*Ciphertext, error) {
	r, err := group.SampleScalar()
	if err != nil {
		return nil, fmt.Errorf("tracing: sampling ephemeral scalar: %w", err)
	}

	c1 := group.BaseMul(r)

	h := new(big.Int).SetBytes(token.MsgHash[:])
	h.Mod(h, group.Order())
	sharedPoint := adPK.Mul(r).Mul(h)

	key := deriveKey(c1, sharedPoint, label)

	var c2 [32]byte
	for i := range c2 {
		c2[i] = key[i] ^ share[i]
	}

	return &Ciphertext{C1: c1, C2: c2, MsgHash: token.MsgHash}, nil
}

// Decrypt recovers the share encrypted in ct using token. It returns
// (zero, false) if ct was not bound to the same message token was issued
// for, rather than producing a garbage share silently.
func Decrypt(token *Token, ct *Ciphertext, label []byte) ([32]byte, bool) {
	var zero [32]byte
	if ct.MsgHash != token.MsgHash {
		return zero, false
	}

	sharedPoint := ct.C1.Mul(token.Tau)
	key := deriveKey(ct.C1, sharedPoint, label)

	var share [32]byte
	for i := range share {
		share[i] = key[i] ^ ct.C2[i]
	}
	return share, true
}

// deriveKey expands the ECDH-like shared point (C1, sharedPoint) into a
// 32-byte symmetric key via HKDF, with label bound in as the expansion's
// info parameter so ciphertexts produced under distinct labels from the
// same shared secret derive independent keys.
func deriveKey(c1, sharedPoint *group.Point, label []byte) [32]byte {
	secret := append(c1.Bytes(), sharedPoint.Bytes()...)
	kdf := hkdf.New(sha256.New, secret, nil, label)
	var out [32]byte
	if _, err := io.ReadFull(kdf, out[:]); err != nil {
		panic(fmt.Sprintf("tracing: hkdf expand failed: %v", err))
	}
	return out
}

// SampleShareBytes produces a fresh 32-byte random key share payload, used
// by callers that need test or demo shares rather than real signing-key
// shares to thread through Encrypt/Decrypt.
func SampleShareBytes() ([32]byte, error) {
	var out [32]byte
	if _, err := rand.Read(out[:]); err != nil {
		return out, fmt.Errorf("tracing: sampling share bytes: %w", err)
	}
	return out, nil
}
