// Command tsigbench drives the threshold signing protocol end to end for a
// chosen party count and threshold and reports timing, mirroring the
// teacher codebase's own benchmark-style main(): a flag-configured run
// that optionally captures a CPU profile while exercising the protocol.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"runtime/pprof"
	"time"

	"threshold.network/tsig"
	"threshold.network/tsig/group"
	"threshold.network/tsig/pedersen"
	"threshold.network/tsig/timelock"
	"threshold.network/tsig/tracing"
)

func main() {
	n := flag.Int("n", 10, "number of signers")
	t := flag.Int("t", 5, "reconstruction threshold (t+1 signers required)")
	mode := flag.String("mode", "plain", "benchmark mode: plain, pedersen, timelock, or tracing")
	reps := flag.Int("reps", 1, "number of signing sessions to run")
	timeParam := flag.Int("time-param", 14, "time-lock repeated-squaring parameter (timelock mode only)")
	primeBits := flag.Int("prime-bits", 256, "time-lock RSA prime size in bits (timelock mode only)")
	cpuprofile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("tsigbench: creating profile output: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("tsigbench: starting CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	switch *mode {
	case "plain":
		runPlain(*n, *t, *reps)
	case "pedersen":
		runPedersen(*n, *t, *reps)
	case "timelock":
		runTimelock(*primeBits, *timeParam, *reps)
	case "tracing":
		runTracing(*reps)
	default:
		log.Fatalf("tsigbench: unknown mode %q", *mode)
	}
}

func runPlain(n, t, reps int) {
	logger := &tsig.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}
	evidence := tsig.NewEvidenceLog(logger)

	par, err := tsig.Setup(n, t)
	if err != nil {
		log.Fatalf("tsigbench: Setup: %v", err)
	}
	pk, shares, pubShares, err := tsig.KGen(par)
	if err != nil {
		log.Fatalf("tsigbench: KGen: %v", err)
	}
	logger.Infof("setup complete: n=%d t=%d", n, t)

	sharesByID := make(map[uint64]*tsig.SecretKeyShare, n)
	pubByID := make(map[uint64]*tsig.PublicKeyShare, n)
	for _, s := range shares {
		sharesByID[s.ID] = s
	}
	for _, p := range pubShares {
		pubByID[p.ID] = p
	}

	ss := make([]uint64, t+1)
	for i := range ss {
		ss[i] = uint64(i + 1)
	}

	message := []byte("tsigbench message")

	for r := 0; r < reps; r++ {
		start := time.Now()
		sig := signOnce(par, pk, message, ss, sharesByID, pubByID, evidence)
		elapsed := time.Since(start)

		ok := tsig.Verify(par, pk, message, sig)
		fmt.Printf("RESULT,n=%d,t=%d,mode=plain,rep=%d,verified=%v,elapsed_ns=%d\n", n, t, r, ok, elapsed.Nanoseconds())
	}
}

func signOnce(
	par *tsig.Params,
	pk *group.Point,
	message []byte,
	ss []uint64,
	shares map[uint64]*tsig.SecretKeyShare,
	pubShares map[uint64]*tsig.PublicKeyShare,
	evidence *tsig.EvidenceLog,
) *tsig.Signature {
	states1 := make(map[uint64]*tsig.SignerState, len(ss))
	var muVec []tsig.MuEntry
	for _, id := range ss {
		cm, st, err := tsig.Sig1(par, shares[id])
		if err != nil {
			log.Fatalf("tsigbench: Sig1(%d): %v", id, err)
		}
		states1[id] = st
		muVec = append(muVec, tsig.MuEntry{ID: cm.ID, Mu: cm.Mu})
	}

	openings := make(map[uint64]*tsig.OpeningMessage, len(ss))
	states2 := make(map[uint64]*tsig.SignerState, len(ss))
	for _, id := range ss {
		op, st, err := tsig.Sig2(par, message, pubShares[id], shares[id], muVec, states1[id])
		if err != nil {
			log.Fatalf("tsigbench: Sig2(%d): %v", id, err)
		}
		openings[id] = op
		states2[id] = st
	}

	partials := make(map[uint64]*tsig.PartialSignature, len(ss))
	for _, id := range ss {
		ps, err := tsig.Sig3(par, message, ss, id, pk, pubShares, shares[id], states2[id], muVec, openings)
		if err != nil {
			evidence.Record(err)
			log.Fatalf("tsigbench: Sig3(%d): %v", id, err)
		}
		partials[id] = ps
		states2[id].Zeroize()
	}

	sig, err := tsig.Combine(ss, openings, partials)
	if err != nil {
		evidence.Record(err)
		log.Fatalf("tsigbench: Combine: %v", err)
	}
	return sig
}

func runPedersen(n, t, reps int) {
	g := group.BasePoint()
	hvc := pedersen.HVC(g)

	for r := 0; r < reps; r++ {
		start := time.Now()

		var commitments []*pedersen.CommitmentMsg
		var openings []*pedersen.Opening
		for id := 1; id <= t+1; id++ {
			z, err := group.SampleScalar()
			if err != nil {
				log.Fatalf("tsigbench: sampling z: %v", err)
			}
			cm, op, err := pedersen.CommitZ(g, hvc, uint64(id), z)
			if err != nil {
				log.Fatalf("tsigbench: CommitZ: %v", err)
			}
			commitments = append(commitments, cm)
			openings = append(openings, op)
		}

		aggC := pedersen.AggregateCommitments(commitments)
		aggR := pedersen.AggregateOpenings(openings)
		elapsed := time.Since(start)

		_ = aggC
		_ = aggR
		fmt.Printf("RESULT,n=%d,t=%d,mode=pedersen,rep=%d,elapsed_ns=%d\n", n, t, r, elapsed.Nanoseconds())
	}
}

func runTimelock(primeBits, timeParam, reps int) {
	par, err := timelock.Setup(primeBits, timeParam)
	if err != nil {
		log.Fatalf("tsigbench: timelock.Setup: %v", err)
	}

	for r := 0; r < reps; r++ {
		start := time.Now()

		ct, err := timelock.Encrypt(par, big.NewInt(42), []byte("bench-aad"))
		if err != nil {
			log.Fatalf("tsigbench: Encrypt: %v", err)
		}
		_, ok := timelock.Decrypt(par, ct, []byte("bench-aad"))
		elapsed := time.Since(start)

		fmt.Printf("RESULT,mode=timelock,rep=%d,T=%d,decrypted=%v,elapsed_ns=%d\n", r, timeParam, ok, elapsed.Nanoseconds())
	}
}

func runTracing(reps int) {
	ad, err := tracing.SetupAdmitter()
	if err != nil {
		log.Fatalf("tsigbench: SetupAdmitter: %v", err)
	}

	message := []byte("tsigbench tracing message")
	token := tracing.IssueToken(ad, message)

	for r := 0; r < reps; r++ {
		start := time.Now()

		share, err := tracing.SampleShareBytes()
		if err != nil {
			log.Fatalf("tsigbench: SampleShareBytes: %v", err)
		}
		ct, err := tracing.Encrypt(ad.PK, token, share, []byte("signer-1"))
		if err != nil {
			log.Fatalf("tsigbench: Encrypt: %v", err)
		}
		_, ok := tracing.Decrypt(token, ct, []byte("signer-1"))
		elapsed := time.Since(start)

		fmt.Printf("RESULT,mode=tracing,rep=%d,decrypted=%v,elapsed_ns=%d\n", r, ok, elapsed.Nanoseconds())
	}
}
