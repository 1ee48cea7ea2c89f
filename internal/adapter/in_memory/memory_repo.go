package in_memory

import (
	"context"
	"sync"

	"github.com/valeradishlevii/trade-api-sample/internal/domain"
	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

var _ port.Repository = (*MemoryRepo)(nil)

// MemoryRepo is a map-backed Repository for tests and local runs without
// Postgres. Seed it with AddBroker/AddInstrument/AddMapping.
type MemoryRepo struct {
	mu          sync.Mutex
	brokers     map[string]domain.Broker
	instruments map[int64]domain.Instrument
	// (brokerID, instrumentID) → external id
	mappings map[[2]int64]int64
	// external id → instrument id
	byExternal map[int64]int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		brokers:     make(map[string]domain.Broker),
		instruments: make(map[int64]domain.Instrument),
		mappings:    make(map[[2]int64]int64),
		byExternal:  make(map[int64]int64),
	}
}

func (r *MemoryRepo) AddBroker(b domain.Broker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brokers[b.Name] = b
}

func (r *MemoryRepo) AddInstrument(in domain.Instrument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instruments[in.ID] = in
}

func (r *MemoryRepo) AddMapping(m domain.InstrumentBrokerData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings[[2]int64{m.BrokerID, m.InstrumentID}] = m.ExternalID
	r.byExternal[m.ExternalID] = m.InstrumentID
}

func (r *MemoryRepo) Instrument(ctx context.Context, id int64) (*domain.Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.instruments[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &in, nil
}

func (r *MemoryRepo) Instruments(ctx context.Context) ([]domain.Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]domain.Instrument, 0, len(r.instruments))
	for _, in := range r.instruments {
		res = append(res, in)
	}
	return res, nil
}

func (r *MemoryRepo) BrokerByName(ctx context.Context, name string) (*domain.Broker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brokers[name]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &b, nil
}

func (r *MemoryRepo) ExternalID(ctx context.Context, brokerID, instrumentID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ext, ok := r.mappings[[2]int64{brokerID, instrumentID}]
	if !ok {
		return 0, port.ErrNotFound
	}
	return ext, nil
}

func (r *MemoryRepo) InstrumentByExternalID(ctx context.Context, externalID int64) (*domain.Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byExternal[externalID]
	if !ok {
		return nil, port.ErrNotFound
	}
	in, ok := r.instruments[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &in, nil
}
