package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeradishlevii/trade-api-sample/internal/domain"
	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

var _ port.Repository = (*PgRepo)(nil)

type PgRepo struct {
	pool *pgxpool.Pool
}

// call Close when finished working with the database.
func NewPgRepo(ctx context.Context, dsn string) (*PgRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	return &PgRepo{pool: pool}, nil
}

func (p *PgRepo) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PgRepo) Instrument(ctx context.Context, id int64) (*domain.Instrument, error) {
	var in domain.Instrument
	err := p.pool.QueryRow(ctx, `
SELECT id, name, symbol, asset_class, trade_type
FROM instruments
WHERE id = $1
`, id).Scan(&in.ID, &in.Name, &in.Symbol, &in.AssetClass, &in.TradeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: load instrument %d: %w", id, err)
	}
	return &in, nil
}

func (p *PgRepo) Instruments(ctx context.Context) ([]domain.Instrument, error) {
	rows, err := p.pool.Query(ctx, `
SELECT id, name, symbol, asset_class, trade_type
FROM instruments
`)
	if err != nil {
		return nil, fmt.Errorf("pg: load instruments: %w", err)
	}
	defer rows.Close()

	var res []domain.Instrument
	for rows.Next() {
		var in domain.Instrument
		if err := rows.Scan(&in.ID, &in.Name, &in.Symbol, &in.AssetClass, &in.TradeType); err != nil {
			return nil, fmt.Errorf("pg: scan instrument: %w", err)
		}
		res = append(res, in)
	}
	return res, rows.Err()
}

func (p *PgRepo) BrokerByName(ctx context.Context, name string) (*domain.Broker, error) {
	var b domain.Broker
	err := p.pool.QueryRow(ctx, `
SELECT id, name
FROM brokers
WHERE name = $1
`, name).Scan(&b.ID, &b.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: load broker %q: %w", name, err)
	}
	return &b, nil
}

func (p *PgRepo) ExternalID(ctx context.Context, brokerID, instrumentID int64) (int64, error) {
	var externalID int64
	err := p.pool.QueryRow(ctx, `
SELECT external_id
FROM instrument_broker_data
WHERE broker_id = $1 AND instrument_id = $2
`, brokerID, instrumentID).Scan(&externalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, port.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("pg: load external id for instrument %d: %w", instrumentID, err)
	}
	return externalID, nil
}

func (p *PgRepo) InstrumentByExternalID(ctx context.Context, externalID int64) (*domain.Instrument, error) {
	var in domain.Instrument
	err := p.pool.QueryRow(ctx, `
SELECT i.id, i.name, i.symbol, i.asset_class, i.trade_type
FROM instruments i
JOIN instrument_broker_data d ON d.instrument_id = i.id
WHERE d.external_id = $1
`, externalID).Scan(&in.ID, &in.Name, &in.Symbol, &in.AssetClass, &in.TradeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: load instrument by external id %d: %w", externalID, err)
	}
	return &in, nil
}
