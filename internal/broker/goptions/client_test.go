package goptions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeradishlevii/trade-api-sample/internal/broker"
	"github.com/valeradishlevii/trade-api-sample/internal/domain"
)

// fakeBroker returns a test server answering every call with body and
// recording the last form it received.
func fakeBroker(t *testing.T, body string) (*httptest.Server, map[string]string) {
	t.Helper()
	seen := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		for k := range r.PostForm {
			seen[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestCustomerByCredentials(t *testing.T) {
	srv, seen := fakeBroker(t, `
<response>
  <status>true</status>
  <data>
    <Customer>
      <row>
        <id>42</id>
        <FirstName>Alice</FirstName>
        <accountBalance>250.50</accountBalance>
        <currency>USD</currency>
      </row>
    </Customer>
  </data>
</response>`)

	c := NewClient(srv.URL, "api-user", "api-pass", time.Second)
	customer, err := c.CustomerByCredentials(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, &domain.Customer{
		ID:             42,
		Name:           "Alice",
		AccountBalance: 250.50,
		Currency:       "USD",
	}, customer)

	assert.Equal(t, "api-user", seen["api_username"])
	assert.Equal(t, "api-pass", seen["api_password"])
	assert.Equal(t, "Customer", seen["MODULE"])
	assert.Equal(t, "view", seen["COMMAND"])
	assert.Equal(t, "a@b.com", seen["FILTER[email]"])
	assert.Equal(t, "x", seen["FILTER[password]"])
}

func TestCustomerByCredentialsNoResults(t *testing.T) {
	srv, _ := fakeBroker(t, `
<response>
  <status>false</status>
  <errors><error><msg>No results found</msg></error></errors>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	_, err := c.CustomerByCredentials(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, broker.ErrNoResults)
}

func TestCallAPIErrorMessage(t *testing.T) {
	srv, _ := fakeBroker(t, `
<response>
  <status>false</status>
  <errors><error><msg>Invalid api credentials</msg></error></errors>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	_, err := c.CustomerByID(context.Background(), 42)
	require.Error(t, err)
	assert.NotErrorIs(t, err, broker.ErrNoResults)
	assert.Contains(t, err.Error(), "Invalid api credentials")
}

func TestPositions(t *testing.T) {
	srv, seen := fakeBroker(t, `
<response>
  <status>true</status>
  <data>
    <Positions>
      <row>
        <name>EUR/USD</name>
        <assetId>900</assetId>
        <executionDate>2026-08-20 10:00:00</executionDate>
        <entryRate>1.1050</entryRate>
        <optionEndDate>2026-08-20 11:00:00</optionEndDate>
        <amount>10.00</amount>
        <currency>USD</currency>
        <position>up</position>
        <winSum>18.50</winSum>
        <status>open</status>
      </row>
      <row>
        <name>Gold</name>
        <assetId>901</assetId>
        <executionDate>2026-08-19 09:00:00</executionDate>
        <entryRate>1890.2</entryRate>
        <optionEndDate>2026-08-19 10:00:00</optionEndDate>
        <amount>25</amount>
        <currency>USD</currency>
        <position>down</position>
        <endRate>1885.7</endRate>
        <payout>46.25</payout>
        <status>closed</status>
      </row>
    </Positions>
  </data>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	minDate := time.Date(2026, 8, 13, 12, 0, 0, 0, time.UTC)
	positions, err := c.Positions(context.Background(), 42, broker.PositionFilter{MinDate: minDate})
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, "42", seen["FILTER[customerId]"])
	assert.Equal(t, "2026-08-13 12:00:00", seen["FILTER[date][min]"])

	open := positions[0]
	assert.Equal(t, "EUR/USD", open.AssetName)
	assert.Equal(t, int64(900), open.AssetID)
	assert.Equal(t, 1.1050, open.OpenRate)
	assert.Equal(t, int64(10), open.Amount)
	assert.Equal(t, 18.50, open.PotentialPayout)
	assert.Equal(t, domain.PositionOpen, open.Status)

	closed := positions[1]
	assert.Equal(t, domain.PositionClosed, closed.Status)
	assert.Equal(t, 1885.7, closed.CloseRate)
	assert.Equal(t, 46.25, closed.Payout)
}

func TestPositionsStatusFilter(t *testing.T) {
	srv, seen := fakeBroker(t, `<response><status>true</status><data><Positions/></data></response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	positions, err := c.Positions(context.Background(), 7, broker.PositionFilter{Status: domain.PositionOpen})
	require.NoError(t, err)
	assert.Empty(t, positions)
	assert.Equal(t, "open", seen["FILTER[status]"])
	assert.NotContains(t, seen, "FILTER[date][min]")
}

func TestAvailableOptions(t *testing.T) {
	srv, seen := fakeBroker(t, `
<response>
  <status>true</status>
  <data>
    <TradingOptions>
      <row>
        <id>7</id>
        <assetId>900</assetId>
        <endDate>2026-08-28 15:00:00</endDate>
        <lastPositionTime>5</lastPositionTime>
        <profit>85</profit>
        <ruleId>3</ruleId>
      </row>
      <row>
        <id>8</id>
        <assetId>901</assetId>
        <endDate>2026-08-28 16:00:00</endDate>
        <lastPositionTime>10</lastPositionTime>
        <profit>80</profit>
        <ruleId>3</ruleId>
      </row>
      <row>
        <id>9</id>
        <assetId>900</assetId>
        <endDate>2026-08-28 17:00:00</endDate>
        <lastPositionTime>5</lastPositionTime>
        <profit>85</profit>
        <ruleId>4</ruleId>
      </row>
    </TradingOptions>
  </data>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	ids, options, err := c.AvailableOptions(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "TradingOptions", seen["MODULE"])
	assert.NotContains(t, seen, "FILTER[assetId]")

	assert.Equal(t, []int64{900, 901}, ids)
	require.Len(t, options, 3)
	assert.Equal(t, int64(7), options[0].ID)
	assert.Equal(t, time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC), options[0].CloseTime)
	assert.Equal(t, 5, options[0].NoPositionTime)
	assert.Equal(t, 85, options[0].Profit)
	assert.Equal(t, int64(3), options[0].RuleID)
}

func TestAvailableOptionsForAsset(t *testing.T) {
	srv, seen := fakeBroker(t, `<response><status>true</status><data><TradingOptions/></data></response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	_, _, err := c.AvailableOptions(context.Background(), 900)
	require.NoError(t, err)
	assert.Equal(t, "900", seen["FILTER[assetId]"])
}

func TestAddPosition(t *testing.T) {
	srv, seen := fakeBroker(t, `
<response>
  <status>true</status>
  <data>
    <Positions><row><rate>1.23</rate></row></Positions>
  </data>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	res, err := c.AddPosition(context.Background(), broker.TradeOrder{
		CustomerID: 42,
		Direction:  "up",
		Amount:     10,
		OptionID:   7,
		AssetID:    900,
		RuleID:     3,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1.23, res.Rate)

	assert.Equal(t, "Positions", seen["MODULE"])
	assert.Equal(t, "add", seen["COMMAND"])
	assert.Equal(t, "42", seen["customerId"])
	assert.Equal(t, "up", seen["position"])
	assert.Equal(t, "10", seen["amount"])
	assert.Equal(t, "7", seen["optionId"])
	assert.Equal(t, "900", seen["assetId"])
	assert.Equal(t, "3", seen["ruleId"])
}

func TestAddPositionWithoutRate(t *testing.T) {
	srv, _ := fakeBroker(t, `<response><status>true</status><data><Positions/></data></response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	res, err := c.AddPosition(context.Background(), broker.TradeOrder{CustomerID: 1, Direction: "down", Amount: 5})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.Rate)
}

func TestAssetHistory(t *testing.T) {
	srv, _ := fakeBroker(t, `
<response>
  <status>true</status>
  <data>
    <AssetHistory>
      <row><timestamp>1000</timestamp><rate>1.1</rate></row>
      <row><timestamp>1060</timestamp><rate>1.2</rate></row>
    </AssetHistory>
  </data>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	history, err := c.AssetHistory(context.Background(), 900)
	require.NoError(t, err)
	assert.Equal(t, []broker.RatePoint{{Timestamp: 1000, Rate: 1.1}, {Timestamp: 1060, Rate: 1.2}}, history)
}

func TestLastRate(t *testing.T) {
	srv, seen := fakeBroker(t, `
<response>
  <status>true</status>
  <data><Rates><row><rate>1.105</rate></row></Rates></data>
</response>`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	rate, err := c.LastRate(context.Background(), 900)
	require.NoError(t, err)
	assert.Equal(t, 1.105, rate)
	assert.Equal(t, "Rates", seen["MODULE"])
	assert.Equal(t, "last", seen["COMMAND"])
}

func TestUnexpectedHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "u", "p", time.Second)
	_, err := c.LastRate(context.Background(), 900)
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestMalformedXML(t *testing.T) {
	srv, _ := fakeBroker(t, `{"not":"xml"}`)

	c := NewClient(srv.URL, "u", "p", time.Second)
	_, err := c.LastRate(context.Background(), 900)
	assert.ErrorContains(t, err, "parse response")
}
