package entities

import "time"

// NFTMint records one minted token of the collection. The registry backs
// milestone announcements and holder double-checks.
type NFTMint struct {
	TokenID     int64     `db:"token_id"`
	MintAddress string    `db:"mint_address"`
	OwnerWallet string    `db:"owner_wallet"`
	MintedAt    time.Time `db:"minted_at"`
}

// SocialProfile is a resolved Farcaster identity.
type SocialProfile struct {
	Username string
	PfpURL   string
	FID      int64
}
