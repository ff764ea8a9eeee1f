package repository

import (
	"context"
	"fmt"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
)

// MintRepository implements token mint registry data access
type MintRepository struct {
	q Queryable
}

// NewMintRepository creates a new mint repository
func NewMintRepository(q Queryable) interfaces.MintRepository {
	return &MintRepository{q: q}
}

// Create records a newly minted token
func (r *MintRepository) Create(ctx context.Context, mint *entities.NFTMint) error {
	query := `
		INSERT INTO nft_mints (token_id, mint_address, owner_wallet)
		VALUES ($1, $2, $3)
		RETURNING minted_at
	`

	err := r.q.QueryRow(ctx, query, mint.TokenID, mint.MintAddress, mint.OwnerWallet).Scan(&mint.MintedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("token %d already registered", mint.TokenID)
		}
		return fmt.Errorf("failed to register mint %s: %w", mint.MintAddress, err)
	}

	return nil
}

// Count returns the total number of minted tokens
func (r *MintRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM nft_mints`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mints: %w", err)
	}
	return count, nil
}

// AnyRegistered reports whether any of the given mint addresses belongs
// to the collection registry. An NFT whose mint is not registered here is
// some other collection's token.
func (r *MintRepository) AnyRegistered(ctx context.Context, mintAddresses []string) (bool, error) {
	if len(mintAddresses) == 0 {
		return false, nil
	}

	query := `SELECT EXISTS (SELECT 1 FROM nft_mints WHERE mint_address = ANY($1))`

	var registered bool
	if err := r.q.QueryRow(ctx, query, mintAddresses).Scan(&registered); err != nil {
		return false, fmt.Errorf("failed to check mint registration: %w", err)
	}

	return registered, nil
}

// OwnerHoldsToken reports whether the wallet owns at least one token
// according to the local registry
func (r *MintRepository) OwnerHoldsToken(ctx context.Context, wallet string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM nft_mints WHERE owner_wallet = $1)`

	var holds bool
	if err := r.q.QueryRow(ctx, query, wallet).Scan(&holds); err != nil {
		return false, fmt.Errorf("failed to check token ownership for wallet %s: %w", wallet, err)
	}

	return holds, nil
}
