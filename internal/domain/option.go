package domain

import "time"

// Option is a tradeable contract offered for an asset at a point in time.
// Options are transient: the broker recomputes the catalog continuously and
// nothing here is persisted.
type Option struct {
	ID      int64
	AssetID int64
	// CloseTime is when the option expires, UTC.
	CloseTime time.Time
	// NoPositionTime is the cutoff window in minutes before CloseTime during
	// which new positions are no longer accepted.
	NoPositionTime int
	// Profit is the payout percentage.
	Profit int
	RuleID int64
}

// Cutoff returns the last instant at which a position may still be opened.
func (o Option) Cutoff() time.Time {
	return o.CloseTime.Add(-time.Duration(o.NoPositionTime) * time.Minute)
}
