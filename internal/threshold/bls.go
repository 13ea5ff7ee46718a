// Package threshold verifies the BLS12-381 threshold signatures produced by
// the consensus collaborator: per-view Seeds and per-block Certificates,
// both checked against a single master identity rather than reconstructed
// locally (aggregation and committee management are the consensus engine's
// job, not this package's).
package threshold

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	bls "github.com/herumi/bls-eth-go-binary/bls"
)

var initOnce sync.Once

func ensureInit() {
	initOnce.Do(func() {
		if err := bls.Init(bls.BLS12_381); err != nil {
			panic(fmt.Errorf("threshold: bls init: %w", err))
		}
		if err := bls.SetETHmode(bls.EthModeDraft07); err != nil {
			panic(fmt.Errorf("threshold: bls eth mode: %w", err))
		}
	})
}

// ErrInvalidSignature is returned whenever a Seed or Certificate fails to
// verify against the master identity.
var ErrInvalidSignature = errors.New("threshold: invalid signature")

// MasterIdentity is the committee's aggregate BLS public key, published out
// of band and held by every client.
type MasterIdentity struct {
	pub bls.PublicKey
}

// ParseMasterIdentity deserializes a compressed BLS12-381 public key.
func ParseMasterIdentity(compressed []byte) (MasterIdentity, error) {
	ensureInit()
	var m MasterIdentity
	if err := m.pub.Deserialize(compressed); err != nil {
		return MasterIdentity{}, fmt.Errorf("threshold: master identity: %w", err)
	}
	return m, nil
}

func viewMessage(namespace []byte, suffix string, view uint64) []byte {
	buf := make([]byte, 0, len(namespace)+len(suffix)+8)
	buf = append(buf, namespace...)
	buf = append(buf, suffix...)
	var v [8]byte
	binary.BigEndian.PutUint64(v[:], view)
	return append(buf, v[:]...)
}

// VerifySeed checks view_msg(view) = NAMESPACE || "seed" || view_be under
// BLS_MinSig against the master identity.
func VerifySeed(namespace []byte, view uint64, signature []byte, master MasterIdentity) error {
	ensureInit()
	var sig bls.Sign
	if err := sig.Deserialize(signature); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	msg := viewMessage(namespace, "seed", view)
	if !sig.VerifyByte(&master.pub, msg) {
		return ErrInvalidSignature
	}
	return nil
}

// VerifyCertificate checks a threshold aggregate over (height, digest)
// under the master identity. digest is the Progress' own digest; callers
// must additionally compare it against the certificate's claimed digest
// before calling this (internal/codec's Certificate carries the claim,
// this package only checks the cryptography).
func VerifyCertificate(namespace []byte, height uint64, digest [32]byte, signature []byte, master MasterIdentity) error {
	ensureInit()
	var sig bls.Sign
	if err := sig.Deserialize(signature); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	msg := make([]byte, 0, len(namespace)+8+32)
	msg = append(msg, namespace...)
	var h [8]byte
	binary.BigEndian.PutUint64(h[:], height)
	msg = append(msg, h[:]...)
	msg = append(msg, digest[:]...)
	if !sig.VerifyByte(&master.pub, msg) {
		return ErrInvalidSignature
	}
	return nil
}

// AggregateSignatures merges compressed per-validator signatures over an
// identical message into one threshold signature, mirroring how the
// consensus collaborator would produce the Certificate this package later
// verifies. Exposed for test fixtures and for nodes that additionally
// participate in committee signing.
func AggregateSignatures(sigs [][]byte) ([]byte, error) {
	ensureInit()
	if len(sigs) == 0 {
		return nil, errors.New("threshold: no signatures to aggregate")
	}
	var agg bls.Sign
	for i, raw := range sigs {
		var s bls.Sign
		if err := s.Deserialize(raw); err != nil {
			return nil, fmt.Errorf("threshold: signature %d: %w", i, err)
		}
		if i == 0 {
			agg = s
		} else {
			agg.Add(&s)
		}
	}
	return agg.Serialize(), nil
}
