package tracing

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ad, err := SetupAdmitter()
	if err != nil {
		t.Fatalf("SetupAdmitter: %v", err)
	}

	message := []byte("some signed transaction bytes")
	token := IssueToken(ad, message)

	share, err := SampleShareBytes()
	if err != nil {
		t.Fatalf("SampleShareBytes: %v", err)
	}

	label := []byte("signer-2")
	ct, err := Encrypt(ad.PK, token, share, label)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, ok := Decrypt(token, ct, label)
	if !ok {
		t.Fatalf("expected decryption to succeed")
	}
	if !bytes.Equal(got[:], share[:]) {
		t.Fatalf("decrypted share does not match original")
	}
}

func TestDecryptRejectsTokenForDifferentMessage(t *testing.T) {
	ad, err := SetupAdmitter()
	if err != nil {
		t.Fatalf("SetupAdmitter: %v", err)
	}

	share, err := SampleShareBytes()
	if err != nil {
		t.Fatalf("SampleShareBytes: %v", err)
	}

	label := []byte("signer-1")
	tokenA := IssueToken(ad, []byte("message A"))
	ct, err := Encrypt(ad.PK, tokenA, share, label)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tokenB := IssueToken(ad, []byte("message B"))
	if _, ok := Decrypt(tokenB, ct, label); ok {
		t.Fatalf("expected decryption to fail for a token issued for a different message")
	}
}

func TestDifferentLabelsYieldDifferentCiphertexts(t *testing.T) {
	ad, err := SetupAdmitter()
	if err != nil {
		t.Fatalf("SetupAdmitter: %v", err)
	}
	token := IssueToken(ad, []byte("shared message"))
	share, err := SampleShareBytes()
	if err != nil {
		t.Fatalf("SampleShareBytes: %v", err)
	}

	ct1, err := Encrypt(ad.PK, token, share, []byte("signer-1"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	ct2, err := Encrypt(ad.PK, token, share, []byte("signer-2"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if bytes.Equal(ct1.C2[:], ct2.C2[:]) {
		t.Fatalf("expected distinct labels to produce distinct ciphertexts even for the same share")
	}

	// Decrypting ct1 with the wrong label recovers garbage, not the
	// original share.
	got, ok := Decrypt(token, ct1, []byte("signer-2"))
	if ok && bytes.Equal(got[:], share[:]) {
		t.Fatalf("expected a mismatched label to not recover the original share")
	}
}

func TestIssueTokenIsDeterministic(t *testing.T) {
	ad, err := SetupAdmitter()
	if err != nil {
		t.Fatalf("SetupAdmitter: %v", err)
	}
	m := []byte("fixed message")
	t1 := IssueToken(ad, m)
	t2 := IssueToken(ad, m)
	if t1.Tau.Cmp(t2.Tau) != 0 {
		t.Fatalf("IssueToken must be deterministic for a fixed admitter key and message")
	}
}
