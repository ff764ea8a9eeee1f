package entities

import "time"

// Click represents one visitor following a billboard's link through the
// redirect endpoint. The visitor IP is stored only as a hash.
type Click struct {
	ID        int64     `db:"id"`
	EpochDay  int64     `db:"epoch_day"`
	IPHash    string    `db:"ip_hash"`
	Referrer  *string   `db:"referrer"`
	UserAgent *string   `db:"user_agent"`
	ClickedAt time.Time `db:"clicked_at"`
}
