package tsig

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"threshold.network/tsig/group"
	"threshold.network/tsig/sigma"
)

// SecretKeyShare is one signer's private share of the jointly-generated
// signing key: its index and its evaluation of the three degree-t sharing
// polynomials (s carries the secret, r and u are constant-term-zero
// binding polynomials).
type SecretKeyShare struct {
	ID      uint64
	S, R, U *big.Int
}

// PublicKeyShare is the public commitment to a signer's SecretKeyShare:
// PK_i = g^s_i h^r_i v^u_i.
type PublicKeyShare struct {
	ID uint64
	PK *group.Point
}

// CommitmentMessage is a signer's Round 1 output: its id and the 32-byte
// digest Hcom(i, ρ_i, B_i) committing it to a nonce point without
// revealing it.
type CommitmentMessage struct {
	ID uint64
	Mu [32]byte
}

// Bytes encodes m as a fixed 36-byte wire message: a 4-byte little-endian
// id followed by the 32-byte commitment digest.
func (m *CommitmentMessage) Bytes() []byte {
	out := make([]byte, 36)
	binary.LittleEndian.PutUint32(out[:4], uint32(m.ID))
	copy(out[4:], m.Mu[:])
	return out
}

// ParseCommitmentMessage decodes the wire format produced by Bytes.
func ParseCommitmentMessage(b []byte) (*CommitmentMessage, error) {
	if len(b) != 36 {
		return nil, &MalformedInputError{Field: "CommitmentMessage", Err: fmt.Errorf("expected 36 bytes, got %d", len(b))}
	}
	m := &CommitmentMessage{ID: uint64(binary.LittleEndian.Uint32(b[:4]))}
	copy(m.Mu[:], b[4:])
	return m, nil
}

// OpeningMessage is a signer's Round 2 output: the opened nonce points A_i
// and B_i, the randomness ρ_i used to derive B_i's binding generators, and
// a NIZK proof that all of these are consistent with the signer's public
// key share.
type OpeningMessage struct {
	ID    uint64
	A, B  *group.Point
	Rho   [32]byte
	Proof *sigma.Proof
}

// pointLen and scalarLen are the fixed per-field widths OpeningMessage's
// and PartialSignature's wire encodings are built from: this group's
// canonical compressed point encoding (33 bytes: 1 parity byte + 32-byte
// X, per spec.md §6's note on secp256k1's point width) and the protocol's
// 32-byte little-endian scalar encoding.
const (
	pointLen  = 33
	scalarLen = 32
)

// Bytes encodes m per spec.md §6's OpeningMessage wire format: id ‖
// a-scalar ‖ A ‖ ρ ‖ B ‖ proof. The a-scalar slot is never populated with
// the signer's actual nonce — a_i is local-only secret state that must
// never cross the wire — and is instead written as 32 zero bytes, exactly
// as spec.md §6 anticipates ("transmit zeroed if layout demands").
func (m *OpeningMessage) Bytes() []byte {
	out := make([]byte, 0, 4+scalarLen+pointLen+32+pointLen+3*pointLen+4*scalarLen)

	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], uint32(m.ID))
	out = append(out, idBuf[:]...)
	out = append(out, make([]byte, scalarLen)...)
	out = append(out, m.A.Bytes()...)
	out = append(out, m.Rho[:]...)
	out = append(out, m.B.Bytes()...)
	out = append(out, m.Proof.XA.Bytes()...)
	out = append(out, m.Proof.XB.Bytes()...)
	out = append(out, m.Proof.Xpk.Bytes()...)
	out = append(out, group.ScalarToBytes(m.Proof.Za)...)
	out = append(out, group.ScalarToBytes(m.Proof.Zs)...)
	out = append(out, group.ScalarToBytes(m.Proof.Zr)...)
	out = append(out, group.ScalarToBytes(m.Proof.Zu)...)
	return out
}

// ParseOpeningMessage decodes the wire format produced by Bytes. The
// untransmitted a-scalar slot is skipped rather than interpreted.
func ParseOpeningMessage(b []byte) (*OpeningMessage, error) {
	want := 4 + scalarLen + pointLen + 32 + pointLen + 3*pointLen + 4*scalarLen
	if len(b) != want {
		return nil, &MalformedInputError{Field: "OpeningMessage", Err: fmt.Errorf("expected %d bytes, got %d", want, len(b))}
	}

	off := 0
	id := binary.LittleEndian.Uint32(b[off : off+4])
	off += 4 + scalarLen // skip id, then the untransmitted a-scalar slot

	a, err := group.DecodePoint(b[off : off+pointLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "OpeningMessage.A", Err: err}
	}
	off += pointLen

	var rho [32]byte
	copy(rho[:], b[off:off+32])
	off += 32

	bPoint, err := group.DecodePoint(b[off : off+pointLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "OpeningMessage.B", Err: err}
	}
	off += pointLen

	xa, err := group.DecodePoint(b[off : off+pointLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.XA", Err: err}
	}
	off += pointLen

	xb, err := group.DecodePoint(b[off : off+pointLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.XB", Err: err}
	}
	off += pointLen

	xpk, err := group.DecodePoint(b[off : off+pointLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.Xpk", Err: err}
	}
	off += pointLen

	za, err := group.ScalarFromBytes(b[off : off+scalarLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.Za", Err: err}
	}
	off += scalarLen

	zs, err := group.ScalarFromBytes(b[off : off+scalarLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.Zs", Err: err}
	}
	off += scalarLen

	zr, err := group.ScalarFromBytes(b[off : off+scalarLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.Zr", Err: err}
	}
	off += scalarLen

	zu, err := group.ScalarFromBytes(b[off : off+scalarLen])
	if err != nil {
		return nil, &MalformedInputError{Field: "Proof.Zu", Err: err}
	}

	return &OpeningMessage{
		ID:  uint64(id),
		A:   a,
		B:   bPoint,
		Rho: rho,
		Proof: &sigma.Proof{
			XA: xa, XB: xb, Xpk: xpk,
			Za: za, Zs: zs, Zr: zr, Zu: zu,
		},
	}, nil
}

// PartialSignature is a signer's Round 3 output: its Lagrange-weighted
// contribution to the aggregate Schnorr response.
type PartialSignature struct {
	ID uint64
	Z  *big.Int
}

// Bytes encodes p per spec.md §6's PartialSignature wire format: a
// 4-byte little-endian id followed by the 32-byte scalar z.
func (p *PartialSignature) Bytes() []byte {
	out := make([]byte, 0, 4+scalarLen)
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], uint32(p.ID))
	out = append(out, idBuf[:]...)
	out = append(out, group.ScalarToBytes(p.Z)...)
	return out
}

// ParsePartialSignature decodes the wire format produced by Bytes.
func ParsePartialSignature(b []byte) (*PartialSignature, error) {
	want := 4 + scalarLen
	if len(b) != want {
		return nil, &MalformedInputError{Field: "PartialSignature", Err: fmt.Errorf("expected %d bytes, got %d", want, len(b))}
	}
	id := binary.LittleEndian.Uint32(b[:4])
	z, err := group.ScalarFromBytes(b[4:])
	if err != nil {
		return nil, &MalformedInputError{Field: "PartialSignature.Z", Err: err}
	}
	return &PartialSignature{ID: uint64(id), Z: z}, nil
}

// Signature is a complete, verifiable threshold signature.
type Signature struct {
	AHat *group.Point
	Z    *big.Int
}

// sortedMuVec returns a copy of entries sorted in ascending order by id,
// the canonical order every signer must agree on before hashing the vector
// into G0/G1.
func sortedMuVec(entries []MuEntry) []MuEntry {
	out := make([]MuEntry, len(entries))
	copy(out, entries)
	slices.SortFunc(out, func(a, b MuEntry) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// serializeMuVec encodes a (already sorted) commitment vector as the exact
// byte string G0 and G1 hash: each entry as a 4-byte little-endian id
// followed by its 32-byte digest, concatenated in order.
func serializeMuVec(entries []MuEntry) []byte {
	out := make([]byte, 0, len(entries)*36)
	for _, e := range entries {
		var idBuf [4]byte
		binary.LittleEndian.PutUint32(idBuf[:], uint32(e.ID))
		out = append(out, idBuf[:]...)
		out = append(out, e.Mu[:]...)
	}
	return out
}
