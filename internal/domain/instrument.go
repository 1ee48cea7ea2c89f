package domain

import "strings"

type AssetClass int

const (
	AssetClassCurrencies AssetClass = iota
	AssetClassCommodities
	AssetClassIndices
	AssetClassStocks
)

// AssetClasses returns the enumeration table sent to clients alongside
// instrument and position listings.
func AssetClasses() map[AssetClass]string {
	return map[AssetClass]string{
		AssetClassCurrencies:  "Currencies",
		AssetClassCommodities: "Commodities",
		AssetClassIndices:     "Indices",
		AssetClassStocks:      "Stocks",
	}
}

type TradeType int

const (
	TradeTypeUp TradeType = iota
	TradeTypeDown
)

var tradeTypeNames = map[TradeType]string{
	TradeTypeUp:   "Up",
	TradeTypeDown: "Down",
}

// TradeTypes returns the direction enumeration keyed by wire code.
func TradeTypes() map[TradeType]string {
	out := make(map[TradeType]string, len(tradeTypeNames))
	for k, v := range tradeTypeNames {
		out[k] = v
	}
	return out
}

// BrokerCode returns the lowercase direction string the remote API expects
// ("up" or "down"), or false for an unknown direction value.
func (t TradeType) BrokerCode() (string, bool) {
	name, ok := tradeTypeNames[t]
	if !ok {
		return "", false
	}
	return strings.ToLower(name), true
}

// Instrument is a tradeable asset as persisted locally. Records are owned
// by the persistence layer and read-only here.
type Instrument struct {
	ID         int64
	Name       string
	Symbol     string
	AssetClass AssetClass
	TradeType  TradeType
}

// Broker is a remote trading provider.
type Broker struct {
	ID   int64
	Name string
}

// InstrumentBrokerData maps an instrument to the identifier a broker uses
// for the same asset. At most one row exists per (broker, instrument).
type InstrumentBrokerData struct {
	BrokerID     int64
	InstrumentID int64
	ExternalID   int64
}
