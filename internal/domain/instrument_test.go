package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrokerCode(t *testing.T) {
	tests := []struct {
		direction TradeType
		code      string
		ok        bool
	}{
		{TradeTypeUp, "up", true},
		{TradeTypeDown, "down", true},
		{TradeType(2), "", false},
		{TradeType(-1), "", false},
	}
	for _, tt := range tests {
		code, ok := tt.direction.BrokerCode()
		assert.Equal(t, tt.code, code)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestAssetClasses(t *testing.T) {
	classes := AssetClasses()
	assert.Equal(t, map[AssetClass]string{
		AssetClassCurrencies:  "Currencies",
		AssetClassCommodities: "Commodities",
		AssetClassIndices:     "Indices",
		AssetClassStocks:      "Stocks",
	}, classes)
}
