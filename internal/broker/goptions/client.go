package goptions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valeradishlevii/trade-api-sample/internal/broker"
	"github.com/valeradishlevii/trade-api-sample/internal/domain"
)

// Compile-time interface check.
var _ broker.Broker = (*Client)(nil)

// Client talks to the GOptions remote API: form-encoded POST in, XML out.
// Calls are synchronous with a single attempt; the only resiliency knob is
// the request timeout.
type Client struct {
	endpoint string
	username string
	password string
	httpc    *http.Client
}

func NewClient(endpoint, username, password string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		username: username,
		password: password,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// callAPI performs one remote call. The provider signals "zero records" via
// an error message; that is mapped to broker.ErrNoResults so callers can
// treat it as an empty result rather than a failure.
func (c *Client) callAPI(ctx context.Context, params map[string]string) (*document, error) {
	form := url.Values{}
	form.Set("api_username", c.username)
	form.Set("api_password", c.password)
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("goptions: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goptions: %s %s: %w", params["MODULE"], params["COMMAND"], err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("goptions: %s %s: unexpected status %d", params["MODULE"], params["COMMAND"], resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goptions: read response: %w", err)
	}

	doc, err := parseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("goptions: %w", err)
	}
	if doc.noResults() {
		return nil, broker.ErrNoResults
	}
	if msg := doc.firstError(); msg != "" {
		return nil, fmt.Errorf("goptions: %s %s: %s", params["MODULE"], params["COMMAND"], msg)
	}
	return doc, nil
}

func (c *Client) CustomerByCredentials(ctx context.Context, email, password string) (*domain.Customer, error) {
	doc, err := c.callAPI(ctx, map[string]string{
		"MODULE":           "Customer",
		"COMMAND":          "view",
		"FILTER[email]":    email,
		"FILTER[password]": password,
	})
	if err != nil {
		return nil, err
	}
	return parseCustomer(doc)
}

func (c *Client) CustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	doc, err := c.callAPI(ctx, map[string]string{
		"MODULE":     "Customer",
		"COMMAND":    "view",
		"FILTER[id]": strconv.FormatInt(id, 10),
	})
	if err != nil {
		return nil, err
	}
	return parseCustomer(doc)
}

func parseCustomer(doc *document) (*domain.Customer, error) {
	rows := doc.rows["Customer"]
	if len(rows) == 0 {
		return nil, broker.ErrNoResults
	}
	r := rows[0]
	id, err := r.int64("id")
	if err != nil {
		return nil, fmt.Errorf("goptions: customer: %w", err)
	}
	name, err := r.str("FirstName")
	if err != nil {
		return nil, fmt.Errorf("goptions: customer: %w", err)
	}
	balance, err := r.float("accountBalance")
	if err != nil {
		return nil, fmt.Errorf("goptions: customer: %w", err)
	}
	currency, err := r.str("currency")
	if err != nil {
		return nil, fmt.Errorf("goptions: customer: %w", err)
	}
	return &domain.Customer{
		ID:             id,
		Name:           name,
		AccountBalance: balance,
		Currency:       currency,
	}, nil
}

func (c *Client) Positions(ctx context.Context, customerID int64, f broker.PositionFilter) ([]domain.Position, error) {
	params := map[string]string{
		"MODULE":             "Positions",
		"COMMAND":            "view",
		"FILTER[customerId]": strconv.FormatInt(customerID, 10),
	}
	if f.Status != "" {
		params["FILTER[status]"] = string(f.Status)
	}
	if !f.MinDate.IsZero() {
		params["FILTER[date][min]"] = f.MinDate.UTC().Format(wireTime)
	}

	doc, err := c.callAPI(ctx, params)
	if err != nil {
		return nil, err
	}

	positions := make([]domain.Position, 0, len(doc.rows["Positions"]))
	for _, r := range doc.rows["Positions"] {
		p, err := parsePosition(r)
		if err != nil {
			return nil, fmt.Errorf("goptions: position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func parsePosition(r row) (domain.Position, error) {
	var p domain.Position
	var err error

	if p.AssetName, err = r.str("name"); err != nil {
		return p, err
	}
	if p.AssetID, err = r.int64("assetId"); err != nil {
		return p, err
	}
	// "date" exists too but in the wrong display format; executionDate is
	// the one clients expect.
	if p.OpenDate, err = r.str("executionDate"); err != nil {
		return p, err
	}
	if p.OpenRate, err = r.float("entryRate"); err != nil {
		return p, err
	}
	if p.CloseDate, err = r.str("optionEndDate"); err != nil {
		return p, err
	}
	if p.Amount, err = r.int64("amount"); err != nil {
		return p, err
	}
	if p.Currency, err = r.str("currency"); err != nil {
		return p, err
	}
	if p.Direction, err = r.str("position"); err != nil {
		return p, err
	}

	status, err := r.str("status")
	if err != nil {
		return p, err
	}
	p.Status = domain.PositionStatus(status)

	// Settlement fields only exist once the provider has closed or priced
	// the position.
	if r.has("winSum") {
		if p.PotentialPayout, err = r.float("winSum"); err != nil {
			return p, err
		}
	}
	if r.has("endRate") {
		if p.CloseRate, err = r.float("endRate"); err != nil {
			return p, err
		}
	}
	if r.has("payout") {
		if p.Payout, err = r.float("payout"); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (c *Client) AvailableOptions(ctx context.Context, assetID int64) ([]int64, []domain.Option, error) {
	params := map[string]string{
		"MODULE":  "TradingOptions",
		"COMMAND": "view",
	}
	if assetID != 0 {
		params["FILTER[assetId]"] = strconv.FormatInt(assetID, 10)
	}

	doc, err := c.callAPI(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	var (
		ids     []int64
		seen    = make(map[int64]bool)
		options []domain.Option
	)
	for _, r := range doc.rows["TradingOptions"] {
		o, err := parseOption(r)
		if err != nil {
			return nil, nil, fmt.Errorf("goptions: option: %w", err)
		}
		options = append(options, o)
		if !seen[o.AssetID] {
			seen[o.AssetID] = true
			ids = append(ids, o.AssetID)
		}
	}
	return ids, options, nil
}

func parseOption(r row) (domain.Option, error) {
	var o domain.Option
	var err error

	if o.ID, err = r.int64("id"); err != nil {
		return o, err
	}
	if o.AssetID, err = r.int64("assetId"); err != nil {
		return o, err
	}
	endDate, err := r.str("endDate")
	if err != nil {
		return o, err
	}
	if o.CloseTime, err = time.ParseInLocation(wireTime, endDate, time.UTC); err != nil {
		return o, fmt.Errorf("field %q: %w", "endDate", err)
	}
	lastPositionTime, err := r.int64("lastPositionTime")
	if err != nil {
		return o, err
	}
	o.NoPositionTime = int(lastPositionTime)
	profit, err := r.int64("profit")
	if err != nil {
		return o, err
	}
	o.Profit = int(profit)
	if o.RuleID, err = r.int64("ruleId"); err != nil {
		return o, err
	}
	return o, nil
}

func (c *Client) AddPosition(ctx context.Context, order broker.TradeOrder) (broker.TradeResult, error) {
	doc, err := c.callAPI(ctx, map[string]string{
		"MODULE":     "Positions",
		"COMMAND":    "add",
		"customerId": strconv.FormatInt(order.CustomerID, 10),
		"position":   order.Direction,
		"amount":     strconv.FormatFloat(order.Amount, 'f', -1, 64),
		"optionId":   strconv.FormatInt(order.OptionID, 10),
		"assetId":    strconv.FormatInt(order.AssetID, 10),
		"ruleId":     strconv.FormatInt(order.RuleID, 10),
	})
	if err != nil {
		return broker.TradeResult{}, err
	}

	res := broker.TradeResult{Success: doc.status}
	if rows := doc.rows["Positions"]; len(rows) > 0 && rows[0].has("rate") {
		if res.Rate, err = rows[0].float("rate"); err != nil {
			return broker.TradeResult{}, fmt.Errorf("goptions: trade: %w", err)
		}
	}
	return res, nil
}

func (c *Client) AssetHistory(ctx context.Context, assetID int64) ([]broker.RatePoint, error) {
	doc, err := c.callAPI(ctx, map[string]string{
		"MODULE":          "AssetHistory",
		"COMMAND":         "view",
		"FILTER[assetId]": strconv.FormatInt(assetID, 10),
	})
	if err != nil {
		return nil, err
	}

	history := make([]broker.RatePoint, 0, len(doc.rows["AssetHistory"]))
	for _, r := range doc.rows["AssetHistory"] {
		ts, err := r.int64("timestamp")
		if err != nil {
			return nil, fmt.Errorf("goptions: history: %w", err)
		}
		rate, err := r.float("rate")
		if err != nil {
			return nil, fmt.Errorf("goptions: history: %w", err)
		}
		history = append(history, broker.RatePoint{Timestamp: ts, Rate: rate})
	}
	return history, nil
}

func (c *Client) LastRate(ctx context.Context, assetID int64) (float64, error) {
	doc, err := c.callAPI(ctx, map[string]string{
		"MODULE":          "Rates",
		"COMMAND":         "last",
		"FILTER[assetId]": strconv.FormatInt(assetID, 10),
	})
	if err != nil {
		return 0, err
	}

	rows := doc.rows["Rates"]
	if len(rows) == 0 {
		return 0, broker.ErrNoResults
	}
	rate, err := rows[0].float("rate")
	if err != nil {
		return 0, fmt.Errorf("goptions: rate: %w", err)
	}
	return rate, nil
}
