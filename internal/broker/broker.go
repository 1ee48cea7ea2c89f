// Package broker defines the remote binary-options provider interface. The
// provider owns customers, positions, options and rates; this system only
// forwards calls and reshapes the results.
package broker

import (
	"context"
	"errors"
	"time"

	"github.com/valeradishlevii/trade-api-sample/internal/domain"
)

// ErrNoResults is the provider's distinguished "query succeeded, zero
// matching records" condition. It is not a transport failure.
var ErrNoResults = errors.New("no results")

// PositionFilter narrows a position listing. Zero values mean "no filter".
type PositionFilter struct {
	Status domain.PositionStatus
	// MinDate keeps positions dated at or after this instant (UTC).
	MinDate time.Time
}

// TradeOrder carries everything the provider needs to open a position.
// Direction is the provider's lowercase string ("up"/"down"); AssetID is
// the provider-side asset identifier, never a local instrument id.
type TradeOrder struct {
	CustomerID int64
	Direction  string
	Amount     float64
	OptionID   int64
	AssetID    int64
	RuleID     int64
}

// TradeResult is the provider's acknowledgement of a placed position. Rate
// is zero when the provider omits it.
type TradeResult struct {
	Success bool
	Rate    float64
}

// RatePoint is one historical quote.
type RatePoint struct {
	Timestamp int64
	Rate      float64
}

// Broker abstracts the remote provider's API.
type Broker interface {
	// CustomerByCredentials authenticates by email+password. Zero matches
	// surface as ErrNoResults.
	CustomerByCredentials(ctx context.Context, email, password string) (*domain.Customer, error)
	CustomerByID(ctx context.Context, id int64) (*domain.Customer, error)

	// Positions lists a customer's positions. AssetClass is left unresolved;
	// callers map it through the local instrument store.
	Positions(ctx context.Context, customerID int64, f PositionFilter) ([]domain.Position, error)

	// AvailableOptions returns the asset ids currently open for trading and
	// the option catalog. A non-zero assetID restricts the catalog to one
	// asset.
	AvailableOptions(ctx context.Context, assetID int64) ([]int64, []domain.Option, error)

	AddPosition(ctx context.Context, order TradeOrder) (TradeResult, error)

	AssetHistory(ctx context.Context, assetID int64) ([]RatePoint, error)
	LastRate(ctx context.Context, assetID int64) (float64, error)
}
