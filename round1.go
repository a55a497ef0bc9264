package tsig

import (
	"fmt"

	"threshold.network/tsig/group"
)

// Sig1 runs Round 1 for signer sk: it samples a fresh nonce a and 32 bytes
// of binding randomness ρ, computes the nonce point B = g^a F0(ρ)^r F1(ρ)^u,
// and commits to it as μ = Hcom(id, ρ, B) without revealing B itself. The
// returned SignerState must be passed unchanged into Sig2 and must not be
// reused across signing attempts.
func Sig1(par *Params, sk *SecretKeyShare) (*CommitmentMessage, *SignerState, error) {
	a, err := group.SampleScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("tsig: sampling nonce scalar: %w", err)
	}

	var rho [32]byte
	if err := group.FillRandom(rho[:]); err != nil {
		return nil, nil, fmt.Errorf("tsig: sampling binding randomness: %w", err)
	}

	b := par.G.Mul(a).Add(group.F0(rho).Mul(sk.R)).Add(group.F1(rho).Mul(sk.U))
	mu := group.Hcom(sk.ID, rho, b)

	return &CommitmentMessage{ID: sk.ID, Mu: mu},
		&SignerState{a: a, rho: rho, b: b},
		nil
}
