package group

import (
	"bytes"
	"math/big"
	"testing"
)

func TestBaseMulMatchesScalarMulOfBasePoint(t *testing.T) {
	s := big.NewInt(12345)
	a := BaseMul(s)
	b := BasePoint().Mul(s)
	if !a.Equal(b) {
		t.Fatalf("BaseMul(s) != BasePoint().Mul(s)")
	}
}

func TestPointAddSubRoundTrip(t *testing.T) {
	a := BaseMul(big.NewInt(7))
	b := BaseMul(big.NewInt(11))
	sum := a.Add(b)
	back := sum.Sub(b)
	if !back.Equal(a) {
		t.Fatalf("(a + b) - b != a")
	}
}

func TestIdentityIsAdditiveUnit(t *testing.T) {
	a := BaseMul(big.NewInt(42))
	if !a.Add(Identity()).Equal(a) {
		t.Fatalf("a + identity != a")
	}
	if !Identity().Add(a).Equal(a) {
		t.Fatalf("identity + a != a")
	}
}

func TestPointEncodeDecodeRoundTrip(t *testing.T) {
	p := BaseMul(big.NewInt(999))
	encoded := p.Bytes()
	decoded, err := DecodePoint(encoded)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !decoded.Equal(p) {
		t.Fatalf("decoded point does not match original")
	}
}

func TestDecodePointRejectsGarbage(t *testing.T) {
	_, err := DecodePoint(bytes.Repeat([]byte{0xAB}, 33))
	if err == nil {
		t.Fatalf("expected an error decoding an invalid point encoding")
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	s := big.NewInt(123456789)
	encoded := ScalarToBytes(s)
	decoded, err := ScalarFromBytes(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Cmp(s) != 0 {
		t.Fatalf("expected %v, got %v", s, decoded)
	}
}

func TestHashOraclesAreDomainSeparated(t *testing.T) {
	var rho [32]byte
	copy(rho[:], []byte("some fixed 32 byte randomness!!!"))

	if F0(rho).Equal(F1(rho)) {
		t.Fatalf("F0(rho) and F1(rho) must differ")
	}

	msg := []byte("abc")
	muVec := []byte{}
	if G0(msg, muVec).Equal(G1(msg, muVec)) {
		t.Fatalf("G0 and G1 must differ")
	}
	if F0(rho).Equal(G0(msg, muVec)) {
		t.Fatalf("F0 and G0 must differ even on related inputs")
	}
}

func TestHcomIsSensitiveToEveryInput(t *testing.T) {
	var rho1, rho2 [32]byte
	copy(rho1[:], []byte("randomness-one-32-bytes-exactly"))
	copy(rho2[:], []byte("randomness-two-32-bytes-exactly"))

	b := BaseMul(big.NewInt(5))

	h1 := Hcom(1, rho1, b)
	h2 := Hcom(2, rho1, b)
	h3 := Hcom(1, rho2, b)
	h4 := Hcom(1, rho1, BaseMul(big.NewInt(6)))

	if h1 == h2 || h1 == h3 || h1 == h4 {
		t.Fatalf("Hcom must be sensitive to id, rho, and B independently")
	}
}

func TestDeriveGeneratorIsDeterministicAndDistinct(t *testing.T) {
	h1 := DeriveGenerator("h")
	h2 := DeriveGenerator("h")
	v := DeriveGenerator("v")

	if !h1.Equal(h2) {
		t.Fatalf("DeriveGenerator must be deterministic")
	}
	if h1.Equal(v) {
		t.Fatalf("generators derived from distinct tags must differ")
	}
	if !h1.IsOnCurve() {
		t.Fatalf("derived generator must lie on the curve")
	}
}
