// Package verify implements the client-side checks of spec §4.H: given
// only the master threshold public key, validate that a claimed
// (progress, certificate, proof) tuple was produced by quorum and that its
// proofs commit to the claimed operations. None of these functions mutate
// or trust anything beyond the master identity passed in.
package verify

import (
	"errors"

	"github.com/nullcasino/corechain/internal/authstore"
	"github.com/nullcasino/corechain/internal/codec"
	"github.com/nullcasino/corechain/internal/threshold"
)

var (
	ErrInvalidSignature          = errors.New("verify: invalid certificate signature")
	ErrProgressDigestMismatch    = errors.New("verify: progress digest does not match certificate item")
	ErrStateOpsRangeMismatch     = errors.New("verify: state op count does not match claimed range")
	ErrEventsOpsRangeMismatch    = errors.New("verify: events op count does not match claimed range")
	ErrStateProofInvalid         = errors.New("verify: state proof does not authenticate against state root")
	ErrEventsProofInvalid        = errors.New("verify: events proof does not authenticate against events root")
	ErrLookupProofInvalid        = errors.New("verify: lookup proof does not authenticate against state root")
	ErrFilteredEventsOutOfRange  = errors.New("verify: filtered events location outside claimed range")
	ErrFilteredEventsProofInvalid = errors.New("verify: filtered events proof does not authenticate against events root")
)

// verifyCertificate checks (1) the certificate's threshold signature and
// (2) that the progress' own digest matches the certificate's signed item,
// the two checks every verification entry point in this package starts
// with (spec §4.H steps 1-2).
func verifyCertificate(namespace []byte, progress codec.Progress, cert codec.Certificate, master threshold.MasterIdentity) error {
	if cert.Item.Index != progress.Height {
		return ErrProgressDigestMismatch
	}
	if progress.Digest() != cert.Item.Digest {
		return ErrProgressDigestMismatch
	}
	if err := threshold.VerifyCertificate(namespace, cert.Item.Index, cert.Item.Digest, cert.Signature, master); err != nil {
		return ErrInvalidSignature
	}
	return nil
}

// VerifySeed checks a consensus Seed against the master identity (spec
// §6.2), the per-view counterpart to VerifySummary's per-block check.
func VerifySeed(namespace []byte, seed codec.Seed, master threshold.MasterIdentity) error {
	if err := threshold.VerifySeed(namespace, seed.View, seed.Signature, master); err != nil {
		return ErrInvalidSignature
	}
	return nil
}

// VerifySummary runs the full spec §4.H checklist: certificate and digest,
// both sides' op-count-matches-range check, then both Merkle proofs.
func VerifySummary(namespace []byte, s codec.Summary, master threshold.MasterIdentity) error {
	if err := verifyCertificate(namespace, s.Progress, s.Certificate, master); err != nil {
		return err
	}

	if uint64(len(s.StateOps)) != s.Progress.StateEnd-s.Progress.StateStart {
		return ErrStateOpsRangeMismatch
	}
	if uint64(len(s.EventsOps)) != s.Progress.EventsEnd-s.Progress.EventsStart {
		return ErrEventsOpsRangeMismatch
	}

	if !authstore.VerifyProof(s.StateProof, s.StateOps, s.Progress.StateEnd, s.Progress.StateRoot) {
		return ErrStateProofInvalid
	}
	if !authstore.VerifyProof(s.EventsProof, s.EventsOps, s.Progress.EventsEnd, s.Progress.EventsRoot) {
		return ErrEventsProofInvalid
	}
	return nil
}

// VerifyLookup checks a single-key query: certificate and digest, then the
// one operation's proof against state_root at Location.
func VerifyLookup(namespace []byte, l codec.Lookup, master threshold.MasterIdentity) error {
	if err := verifyCertificate(namespace, l.Progress, l.Certificate, master); err != nil {
		return err
	}
	if l.Operation.Position != l.Location {
		return ErrLookupProofInvalid
	}
	if !authstore.VerifyProof(l.Proof, []codec.Operation{l.Operation}, l.Progress.StateEnd, l.Progress.StateRoot) {
		return ErrLookupProofInvalid
	}
	return nil
}

// VerifyFilteredEvents checks an account-filtered event slice: certificate
// and digest, every location within [events_start, events_end], then the
// multi-proof against events_root.
func VerifyFilteredEvents(namespace []byte, f codec.FilteredEvents, master threshold.MasterIdentity) error {
	if err := verifyCertificate(namespace, f.Progress, f.Certificate, master); err != nil {
		return err
	}
	ops := make([]codec.Operation, 0, len(f.Ops))
	for _, op := range f.Ops {
		if op.Location < f.Progress.EventsStart || op.Location > f.Progress.EventsEnd {
			return ErrFilteredEventsOutOfRange
		}
		ops = append(ops, codec.Operation{Position: op.Location, Value: op.Output.Encode()})
	}
	if !authstore.VerifyProof(f.Proof, ops, f.Progress.EventsEnd, f.Progress.EventsRoot) {
		return ErrFilteredEventsProofInvalid
	}
	return nil
}

// VerifyEvents checks a contiguous event-log slice's certificate and
// digest and that the claimed entry count matches the claimed range; the
// slice carries no Merkle proof of its own (spec §6.4), so callers that
// need cryptographic authentication of event contents should request a
// Summary covering the same range instead.
func VerifyEvents(namespace []byte, e codec.Events, master threshold.MasterIdentity) error {
	if err := verifyCertificate(namespace, e.Progress, e.Certificate, master); err != nil {
		return err
	}
	if uint64(len(e.Entries)) != e.End-e.Start {
		return ErrEventsOpsRangeMismatch
	}
	return nil
}
