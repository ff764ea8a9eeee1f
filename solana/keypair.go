package solana

import (
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// Keypair wraps the treasury signing key.
type Keypair struct {
	private ed25519.PrivateKey
}

// KeypairFromBase58 parses a base58-encoded 64-byte secret key (the
// standard wallet export format: 32-byte seed followed by the public key).
func KeypairFromBase58(encoded string) (*Keypair, error) {
	raw := base58.Decode(encoded)
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid secret key length %d, want %d", len(raw), ed25519.PrivateKeySize)
	}
	return &Keypair{private: ed25519.PrivateKey(raw)}, nil
}

// PublicKey returns the base58 public key of the keypair.
func (k *Keypair) PublicKey() string {
	return base58.Encode(k.private.Public().(ed25519.PublicKey))
}

// Sign signs a serialized transaction message.
func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}
