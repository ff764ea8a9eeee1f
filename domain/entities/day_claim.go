package entities

import "time"

// ModerationStatus represents the review state of a claimed day's billboard
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationDenied   ModerationStatus = "denied"
)

// DayClaim represents the billboard claim and incentive pool for one epoch
// day. TotalWeight is 0 until the settlement worker freezes the day's
// check-in weights; a non-zero value means the day is settled and
// entitlements are stable.
type DayClaim struct {
	EpochDay          int64            `db:"epoch_day"`
	ClaimerWallet     string           `db:"claimer_wallet"`
	LinkURL           *string          `db:"link_url"`
	ImageURL          *string          `db:"image_url"`
	IncentiveLamports int64            `db:"incentive_lamports"`
	TotalWeight       int64            `db:"total_weight"`
	FarcasterUsername *string          `db:"farcaster_username"`
	FarcasterPfpURL   *string          `db:"farcaster_pfp_url"`
	FarcasterFID      *int64           `db:"farcaster_fid"`
	ModerationStatus  ModerationStatus `db:"moderation_status"`
	ClaimedAt         time.Time        `db:"claimed_at"`
}

// IsSettled returns true once the day's total weight has been frozen.
func (d *DayClaim) IsSettled() bool {
	return d.TotalWeight > 0
}

// IsApproved returns true if the billboard content passed moderation.
func (d *DayClaim) IsApproved() bool {
	return d.ModerationStatus == ModerationApproved
}

// HasImage returns true if a billboard image was uploaded for this day.
func (d *DayClaim) HasImage() bool {
	return d.ImageURL != nil && *d.ImageURL != ""
}

// DisplayName returns the Farcaster handle when known, otherwise a
// shortened wallet address.
func (d *DayClaim) DisplayName() string {
	if d.FarcasterUsername != nil && *d.FarcasterUsername != "" {
		return "@" + *d.FarcasterUsername
	}
	if len(d.ClaimerWallet) > 8 {
		return d.ClaimerWallet[:8] + "..."
	}
	return d.ClaimerWallet
}
