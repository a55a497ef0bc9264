package tsig

import "sync"

// EvidenceLog is a concurrency-safe record of protocol-violation events
// raised during a signing attempt, keyed by the offending signer's id. A
// coordinator that runs Sig3 for every member of a signing set can feed
// every resulting error through Record and later inspect, per signer,
// what went wrong — the same post-mortem role the teacher codebase's own
// evidenceLog plays for DKG complaint resolution, generalized here from
// storing raw protocol messages to storing violation reasons.
type EvidenceLog struct {
	mu      sync.Mutex
	entries map[uint64][]string
	log     Logger
}

// NewEvidenceLog returns an empty EvidenceLog that also warns through log
// every time a violation is recorded. A nil log is replaced with
// NopLogger, matching the teacher's own convention of accepting a Logger
// interface and defaulting silently when the caller supplies none.
func NewEvidenceLog(log Logger) *EvidenceLog {
	if log == nil {
		log = NopLogger{}
	}
	return &EvidenceLog{entries: make(map[uint64][]string), log: log}
}

// Record stores err's reason against its offending signer id if err is a
// *ProtocolViolationError. It is a no-op for any other error or a nil
// EvidenceLog, since only a protocol violation carries an attributable
// signer id worth logging for post-mortem review.
func (l *EvidenceLog) Record(err error) {
	if l == nil || err == nil {
		return
	}
	pv, ok := err.(*ProtocolViolationError)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[pv.SignerID] = append(l.entries[pv.SignerID], pv.Reason)
	l.log.Warnf("signer %d: %s", pv.SignerID, pv.Reason)
}

// For returns every violation reason recorded against signer id, in the
// order Record observed them.
func (l *EvidenceLog) For(id uint64) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries[id]))
	copy(out, l.entries[id])
	return out
}

// Offenders returns the set of signer ids with at least one recorded
// violation.
func (l *EvidenceLog) Offenders() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]uint64, 0, len(l.entries))
	for id := range l.entries {
		out = append(out, id)
	}
	return out
}
