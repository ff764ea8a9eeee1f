package solana

import (
	"crypto/ed25519"

	"github.com/btcsuite/btcutil/base58"
)

// VerifyWalletSignature checks an ed25519 signature over message made by
// the wallet's keypair. Wallet is a base58 public key, signature a base58
// 64-byte signature.
func VerifyWalletSignature(wallet, signature, message string) bool {
	pubKey := base58.Decode(wallet)
	if len(pubKey) != ed25519.PublicKeySize {
		return false
	}

	sig := base58.Decode(signature)
	if len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(pubKey), []byte(message), sig)
}
