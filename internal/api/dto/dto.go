package dto

import "github.com/valeradishlevii/trade-api-sample/internal/domain"

type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Result string `json:"result"`
}

type AuthCheckResponse struct {
	Authorized bool `json:"authorized"`
}

type Profile struct {
	Name           string  `json:"name"`
	AccountBalance float64 `json:"account_balance"`
	Currency       string  `json:"currency"`
}

type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

type OpenPosition struct {
	AssetName       string            `json:"asset_name"`
	AssetID         int64             `json:"asset_id"`
	AssetClass      domain.AssetClass `json:"asset_class"`
	OpenDate        string            `json:"open_date"`
	OpenRate        float64           `json:"open_rate"`
	CloseDate       string            `json:"close_date"`
	Amount          int64             `json:"amount"`
	Currency        string            `json:"currency"`
	Position        string            `json:"position"`
	PotentialPayout float64           `json:"potential_payout"`
}

type ClosedPosition struct {
	AssetName  string            `json:"asset_name"`
	AssetID    int64             `json:"asset_id"`
	AssetClass domain.AssetClass `json:"asset_class"`
	OpenDate   string            `json:"open_date"`
	OpenRate   float64           `json:"open_rate"`
	CloseDate  string            `json:"close_date"`
	CloseRate  float64           `json:"close_rate"`
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Position   string            `json:"position"`
	Payout     float64           `json:"payout"`
	Status     string            `json:"status"`
}

type OpenPositionsResponse struct {
	AssetClasses map[domain.AssetClass]string `json:"asset_classes"`
	PositionList []OpenPosition               `json:"position_list"`
}

type ClosedPositionsResponse struct {
	AssetClasses map[domain.AssetClass]string `json:"asset_classes"`
	PositionList []ClosedPosition             `json:"position_list"`
}

type AllInstrumentsRequest struct {
	AllInstruments *bool `json:"all_instruments" binding:"required"`
}

type InstrumentEntry struct {
	ID         int64             `json:"id"`
	AssetClass domain.AssetClass `json:"asset_class"`
	Name       string            `json:"name"`
	Symbol     string            `json:"symbol"`
}

type InstrumentsResponse struct {
	AssetClasses   map[domain.AssetClass]string `json:"asset_classes"`
	InstrumentList []InstrumentEntry            `json:"instrument_list"`
}

type InstrumentRequest struct {
	InstrumentID int64 `json:"instrument_id" binding:"required"`
}

type OptionEntry struct {
	ID             int64  `json:"id"`
	CloseDate      string `json:"close_date"`
	NoPositionTime int    `json:"no_position_time"`
	Profit         int    `json:"profit"`
	RuleID         int64  `json:"rule_id"`
	AssetID        int64  `json:"asset_id"`
}

type OptionsResponse struct {
	OptionList []OptionEntry `json:"option_list"`
}

type TradeRequest struct {
	InstrumentID int64   `json:"instrument_id" binding:"required"`
	Position     *int    `json:"position" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	OptionID     int64   `json:"option_id" binding:"required"`
	RuleID       int64   `json:"rule_id" binding:"required"`
}

type TradeResponse struct {
	Success bool    `json:"success"`
	Rate    float64 `json:"rate"`
}

type RatePoint struct {
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
	Rate      float64 `json:"rate"`
}

type RateHistoryResponse struct {
	RateHistory []RatePoint `json:"rate_history"`
}

type RateResponse struct {
	Rate float64 `json:"rate"`
}
