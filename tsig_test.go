package tsig

import (
	"testing"

	"threshold.network/tsig/group"
)

type session struct {
	par       *Params
	pk        *group.Point
	shares    map[uint64]*SecretKeyShare
	pubShares map[uint64]*PublicKeyShare
}

func newSession(t *testing.T, n, th int) *session {
	t.Helper()
	par, err := Setup(n, th)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	pk, shares, pubShares, err := KGen(par)
	if err != nil {
		t.Fatalf("KGen: %v", err)
	}
	sharesByID := make(map[uint64]*SecretKeyShare, n)
	pubByID := make(map[uint64]*PublicKeyShare, n)
	for i, s := range shares {
		sharesByID[s.ID] = shares[i]
		pubByID[s.ID] = pubShares[i]
	}
	return &session{par: par, pk: pk, shares: sharesByID, pubShares: pubByID}
}

// sign runs the full three-round protocol for the given signing set ss and
// returns the resulting combined Signature.
func (sess *session) sign(t *testing.T, message []byte, ss []uint64) *Signature {
	t.Helper()

	commitments := make([]*CommitmentMessage, 0, len(ss))
	states1 := make(map[uint64]*SignerState, len(ss))
	for _, id := range ss {
		cm, st, err := Sig1(sess.par, sess.shares[id])
		if err != nil {
			t.Fatalf("Sig1(%d): %v", id, err)
		}
		commitments = append(commitments, cm)
		states1[id] = st
	}

	muVec := make([]MuEntry, 0, len(commitments))
	for _, cm := range commitments {
		muVec = append(muVec, MuEntry{ID: cm.ID, Mu: cm.Mu})
	}

	openings := make(map[uint64]*OpeningMessage, len(ss))
	states2 := make(map[uint64]*SignerState, len(ss))
	for _, id := range ss {
		op, st, err := Sig2(sess.par, message, sess.pubShares[id], sess.shares[id], muVec, states1[id])
		if err != nil {
			t.Fatalf("Sig2(%d): %v", id, err)
		}
		openings[id] = op
		states2[id] = st
	}

	partials := make(map[uint64]*PartialSignature, len(ss))
	for _, id := range ss {
		ps, err := Sig3(sess.par, message, ss, id, sess.pk, sess.pubShares, sess.shares[id], states2[id], muVec, openings)
		if err != nil {
			t.Fatalf("Sig3(%d): %v", id, err)
		}
		partials[id] = ps
		// Round 3 has consumed this signer's nonce; the state must not
		// outlive the signing attempt it belongs to.
		states2[id].Zeroize()
	}

	sig, err := Combine(ss, openings, partials)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	return sig
}

func TestEndToEndSigningAndVerification(t *testing.T) {
	sess := newSession(t, 4, 2)
	message := []byte("transfer 10 coins to alice")

	for _, ss := range [][]uint64{{1, 2, 3}, {1, 2, 4}} {
		sig := sess.sign(t, message, ss)
		if !Verify(sess.par, sess.pk, message, sig) {
			t.Fatalf("signature produced by signing set %v failed to verify", ss)
		}
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	sess := newSession(t, 4, 2)
	sig := sess.sign(t, []byte("original message"), []uint64{1, 2, 3})
	if Verify(sess.par, sess.pk, []byte("tampered message"), sig) {
		t.Fatalf("expected verification to fail for a tampered message")
	}
}

func TestSig3RejectsTamperedCommitment(t *testing.T) {
	sess := newSession(t, 4, 2)
	message := []byte("tampered mu test")
	ss := []uint64{1, 2, 3}

	states1 := make(map[uint64]*SignerState, len(ss))
	var muVec []MuEntry
	for _, id := range ss {
		cm, st, err := Sig1(sess.par, sess.shares[id])
		if err != nil {
			t.Fatalf("Sig1(%d): %v", id, err)
		}
		states1[id] = st
		muVec = append(muVec, MuEntry{ID: cm.ID, Mu: cm.Mu})
	}

	// Tamper with signer 2's committed digest after it has been published.
	for i := range muVec {
		if muVec[i].ID == 2 {
			muVec[i].Mu[0] ^= 0xFF
		}
	}

	openings := make(map[uint64]*OpeningMessage, len(ss))
	states2 := make(map[uint64]*SignerState, len(ss))
	for _, id := range ss {
		op, st, err := Sig2(sess.par, message, sess.pubShares[id], sess.shares[id], muVec, states1[id])
		if err != nil {
			t.Fatalf("Sig2(%d): %v", id, err)
		}
		openings[id] = op
		states2[id] = st
	}

	_, err := Sig3(sess.par, message, ss, 1, sess.pk, sess.pubShares, sess.shares[1], states2[1], muVec, openings)
	if err == nil {
		t.Fatalf("expected Sig3 to reject a tampered Round 1 commitment")
	}
	if _, ok := err.(*ProtocolViolationError); !ok {
		t.Fatalf("expected a *ProtocolViolationError, got %T: %v", err, err)
	}

	log := NewEvidenceLog(NopLogger{})
	log.Record(err)
	if reasons := log.For(2); len(reasons) != 1 {
		t.Fatalf("expected one recorded violation for signer 2, got %v", reasons)
	}
	if offenders := log.Offenders(); len(offenders) != 1 || offenders[0] != 2 {
		t.Fatalf("expected signer 2 to be the sole recorded offender, got %v", offenders)
	}
}

func TestEvidenceLogIgnoresNonProtocolErrors(t *testing.T) {
	log := NewEvidenceLog(nil)
	log.Record(nil)
	log.Record(&MalformedInputError{Field: "x"})
	if offenders := log.Offenders(); len(offenders) != 0 {
		t.Fatalf("expected no offenders recorded, got %v", offenders)
	}
}

func TestSig2RejectsConsumedState(t *testing.T) {
	sess := newSession(t, 4, 2)
	message := []byte("reuse test")

	cm, st, err := Sig1(sess.par, sess.shares[1])
	if err != nil {
		t.Fatalf("Sig1: %v", err)
	}
	muVec := []MuEntry{{ID: cm.ID, Mu: cm.Mu}}

	if _, _, err := Sig2(sess.par, message, sess.pubShares[1], sess.shares[1], muVec, st); err != nil {
		t.Fatalf("unexpected error on first Sig2 call: %v", err)
	}

	st.Zeroize()
	if _, _, err := Sig2(sess.par, message, sess.pubShares[1], sess.shares[1], muVec, st); err == nil {
		t.Fatalf("expected Sig2 to reject a zeroized/consumed state")
	}
}

func TestCombineFailsWhenOpeningMissing(t *testing.T) {
	ss := []uint64{1, 2, 3}
	_, err := Combine(ss, map[uint64]*OpeningMessage{}, map[uint64]*PartialSignature{})
	if err == nil {
		t.Fatalf("expected Combine to fail when no openings are present")
	}
}
