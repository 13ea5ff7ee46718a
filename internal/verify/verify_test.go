package verify

import (
	"encoding/binary"
	"sync"
	"testing"

	bls "github.com/herumi/bls-eth-go-binary/bls"

	"github.com/nullcasino/corechain/internal/authstore"
	"github.com/nullcasino/corechain/internal/codec"
	"github.com/nullcasino/corechain/internal/threshold"
)

var namespace = []byte("nullcasino-corechain-v1-test")

var blsInitOnce sync.Once

func genMaster(t *testing.T) (*bls.SecretKey, threshold.MasterIdentity) {
	t.Helper()
	blsInitOnce.Do(func() {
		if err := bls.Init(bls.BLS12_381); err != nil {
			t.Fatalf("bls init: %v", err)
		}
		_ = bls.SetETHmode(bls.EthModeDraft07)
	})
	sk := &bls.SecretKey{}
	sk.SetByCSPRNG()
	master, err := threshold.ParseMasterIdentity(sk.GetPublicKey().Serialize())
	if err != nil {
		t.Fatalf("parse master identity: %v", err)
	}
	return sk, master
}

func certFor(sk *bls.SecretKey, progress codec.Progress) codec.Certificate {
	digest := progress.Digest()
	msg := make([]byte, 0, len(namespace)+8+32)
	msg = append(msg, namespace...)
	var h [8]byte
	binary.BigEndian.PutUint64(h[:], progress.Height)
	msg = append(msg, h[:]...)
	msg = append(msg, digest[:]...)
	sig := sk.SignByte(msg)
	return codec.Certificate{
		Item:      codec.CertificateItem{Index: progress.Height, Digest: digest},
		Signature: sig.Serialize(),
	}
}

func buildSummary(t *testing.T, sk *bls.SecretKey) codec.Summary {
	t.Helper()
	state := authstore.NewKeyedStore()
	events := authstore.NewKeylessStore()

	var k1, k2 [32]byte
	k1[0], k2[0] = 1, 2
	state.Update(k1, []byte("a"))
	state.Update(k2, []byte("b"))
	state.Commit(codec.Commit{Height: 1, Start: 0})
	events.Append([]byte("event-a"))
	events.Commit(codec.Commit{Height: 1, Start: 0})

	progress := codec.Progress{
		View: 1, Height: 1,
		StateRoot: state.Root(), StateStart: 0, StateEnd: state.OpCount(),
		EventsRoot: events.Root(), EventsStart: 0, EventsEnd: events.OpCount(),
	}
	cert := certFor(sk, progress)

	stateProof, stateOps, err := state.HistoricalProof(state.OpCount(), 0, 0)
	if err != nil {
		t.Fatalf("state historical proof: %v", err)
	}
	eventsProof, eventsOps, err := events.HistoricalProof(events.OpCount(), 0, 0)
	if err != nil {
		t.Fatalf("events historical proof: %v", err)
	}

	return codec.Summary{
		Progress: progress, Certificate: cert,
		StateProof: stateProof, StateOps: stateOps,
		EventsProof: eventsProof, EventsOps: eventsOps,
	}
}

func TestVerifySummarySucceedsOnValidProof(t *testing.T) {
	sk, master := genMaster(t)
	s := buildSummary(t, sk)

	if err := VerifySummary(namespace, s, master); err != nil {
		t.Fatalf("expected valid summary, got %v", err)
	}
}

func TestVerifySummaryRejectsTamperedStateOp(t *testing.T) {
	sk, master := genMaster(t)
	s := buildSummary(t, sk)
	s.StateOps[0].Value = []byte("tampered")

	if err := VerifySummary(namespace, s, master); err != ErrStateProofInvalid {
		t.Fatalf("expected ErrStateProofInvalid, got %v", err)
	}
}

func TestVerifySummaryRejectsWrongSignature(t *testing.T) {
	sk, master := genMaster(t)
	s := buildSummary(t, sk)

	otherSk := &bls.SecretKey{}
	otherSk.SetByCSPRNG()
	s.Certificate = certFor(otherSk, s.Progress)

	if err := VerifySummary(namespace, s, master); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySummaryRejectsDigestMismatch(t *testing.T) {
	sk, master := genMaster(t)
	s := buildSummary(t, sk)
	s.Progress.View = 999 // mutate progress without re-signing

	if err := VerifySummary(namespace, s, master); err != ErrProgressDigestMismatch {
		t.Fatalf("expected ErrProgressDigestMismatch, got %v", err)
	}
}

func TestVerifyLookupSucceedsOnValidProof(t *testing.T) {
	sk, master := genMaster(t)
	state := authstore.NewKeyedStore()
	var k [32]byte
	k[0] = 7
	state.Update(k, []byte("value"))
	state.Commit(codec.Commit{Height: 1, Start: 0})

	progress := codec.Progress{Height: 1, StateRoot: state.Root(), StateEnd: state.OpCount()}
	cert := certFor(sk, progress)
	proof, ops, err := state.HistoricalProof(1, 0, 0)
	if err != nil {
		t.Fatalf("historical proof: %v", err)
	}

	l := codec.Lookup{Progress: progress, Certificate: cert, Proof: proof, Location: 0, Operation: ops[0]}
	if err := VerifyLookup(namespace, l, master); err != nil {
		t.Fatalf("expected valid lookup, got %v", err)
	}
}

func TestVerifyFilteredEventsRejectsOutOfRangeLocation(t *testing.T) {
	sk, master := genMaster(t)
	progress := codec.Progress{Height: 1, EventsStart: 0, EventsEnd: 2}
	cert := certFor(sk, progress)

	f := codec.FilteredEvents{
		Progress: progress, Certificate: cert,
		Ops: []codec.FilteredEventsOp{{Location: 5, Output: codec.Event{Tag: codec.EventCasinoDeposited}}},
	}
	if err := VerifyFilteredEvents(namespace, f, master); err != ErrFilteredEventsOutOfRange {
		t.Fatalf("expected ErrFilteredEventsOutOfRange, got %v", err)
	}
}
