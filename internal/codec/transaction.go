package codec

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
)

// Namespace prefixes every signed payload in the system, kept
// as a package-level default so tests and the driver agree on one value
// without threading it through every call site.
var Namespace = []byte("nullcasino-corechain-v1")

// ErrInvalidSignature is returned when a Transaction's Ed25519 signature
// does not verify against its public key and encoded instruction.
var ErrInvalidSignature = errors.New("codec: invalid transaction signature")

// Transaction is (public, nonce, signature, Instruction). The signature
// covers SHA256(NAMESPACE || nonce_be || encode(instruction)) under
// Ed25519.
type Transaction struct {
	Public      ed25519.PublicKey
	Nonce       uint64
	Signature   []byte
	Instruction Instruction
}

// SigningDigest computes the message a Transaction's signature must cover.
func SigningDigest(namespace []byte, nonce uint64, instr Instruction) [32]byte {
	w := NewWriter()
	w.WriteBytesFixed(namespace)
	w.WriteU64(nonce)
	w.WriteBytesFixed(instr.Encode())
	return sha256.Sum256(w.Bytes())
}

// Sign populates Signature given the matching private key.
func (t *Transaction) Sign(priv ed25519.PrivateKey) {
	digest := SigningDigest(Namespace, t.Nonce, t.Instruction)
	t.Signature = ed25519.Sign(priv, digest[:])
}

// Verify checks the transaction's signature; callers should reject the
// transaction entirely (never partially apply) if this fails.
func (t Transaction) Verify() error {
	if len(t.Public) != ed25519.PublicKeySize || len(t.Signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	digest := SigningDigest(Namespace, t.Nonce, t.Instruction)
	if !ed25519.Verify(t.Public, digest[:], t.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

func (t Transaction) Encode() []byte {
	w := NewWriter()
	w.WriteBytes(t.Public)
	w.WriteU64(t.Nonce)
	w.WriteBytes(t.Signature)
	w.WriteBytesFixed(t.Instruction.Encode())
	return w.Bytes()
}

func DecodeTransaction(r *Reader) (Transaction, error) {
	var t Transaction
	pub, err := r.ReadBytes(64)
	if err != nil {
		return Transaction{}, err
	}
	t.Public = ed25519.PublicKey(pub)
	if t.Nonce, err = r.ReadU64(); err != nil {
		return Transaction{}, err
	}
	sig, err := r.ReadBytes(ed25519.SignatureSize)
	if err != nil {
		return Transaction{}, err
	}
	t.Signature = sig
	instr, err := DecodeInstruction(r)
	if err != nil {
		return Transaction{}, err
	}
	t.Instruction = instr
	return t, nil
}
