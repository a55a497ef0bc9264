package pedersen

import (
	"math/big"
	"testing"

	"threshold.network/tsig/group"
)

func TestCommitAndVerifySingleValue(t *testing.T) {
	g := group.BasePoint()
	hvc := HVC(g)

	z := big.NewInt(42)
	cm, opening, err := CommitZ(g, hvc, 1, z)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !VerifyAggregate(g, hvc, cm.C, z, opening.R) {
		t.Fatalf("expected commitment to open correctly")
	}
}

func TestAggregationIsHomomorphicAcrossPartition(t *testing.T) {
	g := group.BasePoint()
	hvc := HVC(g)
	order := group.Order()

	values := []*big.Int{big.NewInt(7), big.NewInt(11), big.NewInt(23), big.NewInt(5)}

	var commitments []*CommitmentMsg
	var openings []*Opening
	for i, v := range values {
		cm, op, err := CommitZ(g, hvc, uint64(i+1), v)
		if err != nil {
			t.Fatalf("CommitZ(%d): %v", i, err)
		}
		commitments = append(commitments, cm)
		openings = append(openings, op)
	}

	aggC := AggregateCommitments(commitments)
	aggR := AggregateOpenings(openings)

	total := new(big.Int)
	for _, v := range values {
		total.Add(total, v)
		total.Mod(total, order)
	}

	if !VerifyAggregate(g, hvc, aggC, total, aggR) {
		t.Fatalf("expected aggregate commitment to open to the sum of contributions")
	}
}

func TestVerifyAggregateRejectsWrongValue(t *testing.T) {
	g := group.BasePoint()
	hvc := HVC(g)

	cm, opening, err := CommitZ(g, hvc, 1, big.NewInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if VerifyAggregate(g, hvc, cm.C, big.NewInt(101), opening.R) {
		t.Fatalf("expected verification to fail for a mismatched value")
	}
}

func TestHVCIsDeterministicAndDistinctFromG(t *testing.T) {
	g := group.BasePoint()
	h1 := HVC(g)
	h2 := HVC(g)
	if !h1.Equal(h2) {
		t.Fatalf("HVC must be deterministic for a fixed g")
	}
	if h1.Equal(g) {
		t.Fatalf("HVC(g) must differ from g")
	}
}
