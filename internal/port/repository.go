package port

import (
	"context"
	"errors"

	"github.com/valeradishlevii/trade-api-sample/internal/domain"
)

// ErrNotFound is returned by lookups with no matching record.
var ErrNotFound = errors.New("not found")

// Repository provides read access to locally persisted instrument data and
// the per-broker external id mapping. The gateway never writes through it.
type Repository interface {
	Instrument(ctx context.Context, id int64) (*domain.Instrument, error)
	Instruments(ctx context.Context) ([]domain.Instrument, error)
	BrokerByName(ctx context.Context, name string) (*domain.Broker, error)
	// ExternalID resolves the broker-side identifier for an instrument.
	ExternalID(ctx context.Context, brokerID, instrumentID int64) (int64, error)
	// InstrumentByExternalID resolves a broker-supplied asset id back to the
	// local instrument, regardless of broker.
	InstrumentByExternalID(ctx context.Context, externalID int64) (*domain.Instrument, error)
}
