// Package core implements the gateway semantics: every endpoint's work of
// calling the remote provider and the instrument store and reshaping the
// results. It holds no state across calls.
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/valeradishlevii/trade-api-sample/internal/broker"
	"github.com/valeradishlevii/trade-api-sample/internal/domain"
	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

// closedPositionWindow bounds the closed-position listing to recent history.
const closedPositionWindow = 7 * 24 * time.Hour

// TradeableInstrument is an instrument currently open for trading, paired
// with the provider-side id it resolved from.
type TradeableInstrument struct {
	domain.Instrument
	ExternalID int64
}

type Gateway struct {
	broker     broker.Broker
	repo       port.Repository
	brokerName string
}

func NewGateway(b broker.Broker, repo port.Repository, brokerName string) *Gateway {
	return &Gateway{
		broker:     b,
		repo:       repo,
		brokerName: brokerName,
	}
}

// Authenticate checks credentials against the provider and returns the
// customer id. Every failure collapses into ErrWrongCredentials; the
// underlying cause stays attached for logging only.
func (g *Gateway) Authenticate(ctx context.Context, email, password string) (int64, error) {
	customer, err := g.broker.CustomerByCredentials(ctx, email, password)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWrongCredentials, err)
	}
	return customer.ID, nil
}

func (g *Gateway) Profile(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return g.broker.CustomerByID(ctx, customerID)
}

// OpenPositions lists the customer's open positions. A provider "no
// results" is an empty list, not a failure.
func (g *Gateway) OpenPositions(ctx context.Context, customerID int64) ([]domain.Position, error) {
	positions, err := g.broker.Positions(ctx, customerID, broker.PositionFilter{
		Status: domain.PositionOpen,
	})
	if errors.Is(err, broker.ErrNoResults) {
		return []domain.Position{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := g.resolveAssetClasses(ctx, positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// ClosedPositions lists positions settled within the last seven days. The
// provider's date filter also matches rows that are still open, so those
// are dropped here.
func (g *Gateway) ClosedPositions(ctx context.Context, customerID int64) ([]domain.Position, error) {
	positions, err := g.broker.Positions(ctx, customerID, broker.PositionFilter{
		MinDate: time.Now().UTC().Add(-closedPositionWindow),
	})
	if errors.Is(err, broker.ErrNoResults) {
		return []domain.Position{}, nil
	}
	if err != nil {
		return nil, err
	}

	closed := positions[:0]
	for _, p := range positions {
		if p.Status == domain.PositionOpen {
			continue
		}
		closed = append(closed, p)
	}
	if err := g.resolveAssetClasses(ctx, closed); err != nil {
		return nil, err
	}
	return closed, nil
}

// resolveAssetClasses maps each provider asset id to the local instrument's
// asset class. A missing mapping is a data-integrity failure: the provider
// reported an asset this deployment does not know.
func (g *Gateway) resolveAssetClasses(ctx context.Context, positions []domain.Position) error {
	for i := range positions {
		in, err := g.repo.InstrumentByExternalID(ctx, positions[i].AssetID)
		if err != nil {
			return fmt.Errorf("resolve asset class for asset %d: %w", positions[i].AssetID, err)
		}
		positions[i].AssetClass = in.AssetClass
	}
	return nil
}

// TradeableInstruments returns the instruments the provider currently
// accepts trades on, name ascending. Every provider asset id must resolve
// locally.
func (g *Gateway) TradeableInstruments(ctx context.Context) ([]TradeableInstrument, error) {
	ids, _, err := g.broker.AvailableOptions(ctx, 0)
	if err != nil {
		return nil, err
	}

	instruments := make([]TradeableInstrument, 0, len(ids))
	for _, externalID := range ids {
		in, err := g.repo.InstrumentByExternalID(ctx, externalID)
		if err != nil {
			return nil, fmt.Errorf("resolve instrument for asset %d: %w", externalID, err)
		}
		instruments = append(instruments, TradeableInstrument{
			Instrument: *in,
			ExternalID: externalID,
		})
	}
	sort.SliceStable(instruments, func(i, j int) bool {
		return instruments[i].Name < instruments[j].Name
	})
	return instruments, nil
}

// AllInstruments returns every persisted instrument regardless of
// tradeability, name ascending. No provider call is made.
func (g *Gateway) AllInstruments(ctx context.Context) ([]domain.Instrument, error) {
	instruments, err := g.repo.Instruments(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(instruments, func(i, j int) bool {
		return instruments[i].Name < instruments[j].Name
	})
	return instruments, nil
}

// Options lists the active options for an instrument. Options whose cutoff
// has already passed are excluded.
func (g *Gateway) Options(ctx context.Context, instrumentID int64) ([]domain.Option, error) {
	externalID, err := g.externalID(ctx, instrumentID)
	if err != nil {
		return nil, err
	}
	_, options, err := g.broker.AvailableOptions(ctx, externalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	active := options[:0]
	for _, o := range options {
		if !o.Cutoff().After(now) {
			continue
		}
		o.AssetID = externalID
		active = append(active, o)
	}
	return active, nil
}

// PlaceTrade opens a position for the customer. The instrument id and
// direction enum are translated to the provider's identifiers here; clients
// never supply provider-side values.
func (g *Gateway) PlaceTrade(ctx context.Context, customerID, instrumentID int64, direction domain.TradeType, amount float64, optionID, ruleID int64) (broker.TradeResult, error) {
	code, ok := direction.BrokerCode()
	if !ok {
		return broker.TradeResult{}, fmt.Errorf("%w: %d", ErrUnknownDirection, direction)
	}
	externalID, err := g.externalID(ctx, instrumentID)
	if err != nil {
		return broker.TradeResult{}, err
	}
	return g.broker.AddPosition(ctx, broker.TradeOrder{
		CustomerID: customerID,
		Direction:  code,
		Amount:     amount,
		OptionID:   optionID,
		AssetID:    externalID,
		RuleID:     ruleID,
	})
}

func (g *Gateway) RateHistory(ctx context.Context, instrumentID int64) ([]broker.RatePoint, error) {
	externalID, err := g.externalID(ctx, instrumentID)
	if err != nil {
		return nil, err
	}
	return g.broker.AssetHistory(ctx, externalID)
}

func (g *Gateway) LastRate(ctx context.Context, instrumentID int64) (float64, error) {
	externalID, err := g.externalID(ctx, instrumentID)
	if err != nil {
		return 0, err
	}
	return g.broker.LastRate(ctx, externalID)
}

func (g *Gateway) externalID(ctx context.Context, instrumentID int64) (int64, error) {
	b, err := g.repo.BrokerByName(ctx, g.brokerName)
	if err != nil {
		return 0, fmt.Errorf("load broker %q: %w", g.brokerName, err)
	}
	externalID, err := g.repo.ExternalID(ctx, b.ID, instrumentID)
	if err != nil {
		return 0, fmt.Errorf("resolve external id for instrument %d: %w", instrumentID, err)
	}
	return externalID, nil
}
