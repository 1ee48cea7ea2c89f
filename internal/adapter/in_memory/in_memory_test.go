package in_memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeradishlevii/trade-api-sample/internal/domain"
	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	repo.AddBroker(domain.Broker{ID: 1, Name: "GOptions"})
	repo.AddInstrument(domain.Instrument{ID: 5, Name: "Gold", Symbol: "XAU", AssetClass: domain.AssetClassCommodities})
	repo.AddMapping(domain.InstrumentBrokerData{BrokerID: 1, InstrumentID: 5, ExternalID: 900})

	in, err := repo.Instrument(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Gold", in.Name)

	_, err = repo.Instrument(ctx, 404)
	assert.ErrorIs(t, err, port.ErrNotFound)

	all, err := repo.Instruments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	b, err := repo.BrokerByName(ctx, "GOptions")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	_, err = repo.BrokerByName(ctx, "Unknown")
	assert.ErrorIs(t, err, port.ErrNotFound)

	ext, err := repo.ExternalID(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(900), ext)

	_, err = repo.ExternalID(ctx, 1, 404)
	assert.ErrorIs(t, err, port.ErrNotFound)

	byExt, err := repo.InstrumentByExternalID(ctx, 900)
	require.NoError(t, err)
	assert.Equal(t, int64(5), byExt.ID)

	_, err = repo.InstrumentByExternalID(ctx, 999)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, store.Set(ctx, "tok", 42))
	id, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, port.ErrNotFound)

	// Deleting an unknown token is a no-op.
	assert.NoError(t, store.Delete(ctx, "missing"))
}
