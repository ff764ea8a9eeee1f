package interfaces

import (
	"context"

	"sigil/domain/entities"
)

// ChainClient is the on-chain ledger collaborator. The service never runs
// program logic itself; it only confirms transactions, inspects their
// senders, checks token holdings, and dispatches treasury transfers.
type ChainClient interface {
	// ConfirmTransaction blocks until the transaction is confirmed or the
	// poll deadline expires
	ConfirmTransaction(ctx context.Context, signature string) error

	// TransactionSender returns the fee payer of a confirmed transaction
	TransactionSender(ctx context.Context, signature string) (string, error)

	// NFTMints returns the mint addresses of every NFT held by the wallet.
	// Collection membership is decided against the local mint registry,
	// never by the chain alone.
	NFTMints(ctx context.Context, wallet string) ([]string, error)

	// Transfer sends lamports from the treasury to the given wallet and
	// returns the transaction signature
	Transfer(ctx context.Context, toWallet string, lamports int64) (string, error)
}

// ProfileResolver resolves a social username to a profile. Failures are
// non-fatal; callers leave profile fields empty.
type ProfileResolver interface {
	Resolve(ctx context.Context, username string) (*entities.SocialProfile, error)
}

// ObjectStore persists billboard images. Put returns the public URL of the
// stored object.
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, name string) error
}

// ModerationReview carries everything the reviewer needs to approve or
// deny a billboard claim.
type ModerationReview struct {
	EpochDay          int64
	ClaimerWallet     string
	IncentiveLamports int64
	ImageURL          string
	LinkURL           string
	FarcasterUsername string
}

// Mailer delivers moderation review requests to the admin.
type Mailer interface {
	SendModerationReview(ctx context.Context, review ModerationReview) error
}

// BroadcastReport records per-platform outcomes of one announcement.
type BroadcastReport struct {
	Platforms map[string]bool
	Errors    map[string]string
}

// Posted returns true if at least one platform accepted the announcement.
func (r *BroadcastReport) Posted() bool {
	for _, ok := range r.Platforms {
		if ok {
			return true
		}
	}
	return false
}

// Broadcaster fans an announcement out to the social platforms. Platform
// failures are isolated; the report carries them, the call never errors.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string, links []string) *BroadcastReport
}
