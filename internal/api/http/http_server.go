// Package http exposes the gateway over a JSON HTTP API. Handlers validate
// input, require a session where applicable, delegate to the service, and
// map failures onto a small set of status codes. Downstream failure detail
// is logged, never returned.
package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valeradishlevii/trade-api-sample/internal/api/dto"
	"github.com/valeradishlevii/trade-api-sample/internal/broker"
	"github.com/valeradishlevii/trade-api-sample/internal/core"
	"github.com/valeradishlevii/trade-api-sample/internal/domain"
	"github.com/valeradishlevii/trade-api-sample/internal/middleware"
	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

// displayTime is the human-facing timestamp format used across responses.
const displayTime = "15:04 02/01/2006"

// Service is the gateway surface the HTTP layer depends on.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (int64, error)
	Profile(ctx context.Context, customerID int64) (*domain.Customer, error)
	OpenPositions(ctx context.Context, customerID int64) ([]domain.Position, error)
	ClosedPositions(ctx context.Context, customerID int64) ([]domain.Position, error)
	TradeableInstruments(ctx context.Context) ([]core.TradeableInstrument, error)
	AllInstruments(ctx context.Context) ([]domain.Instrument, error)
	Options(ctx context.Context, instrumentID int64) ([]domain.Option, error)
	PlaceTrade(ctx context.Context, customerID, instrumentID int64, direction domain.TradeType, amount float64, optionID, ruleID int64) (broker.TradeResult, error)
	RateHistory(ctx context.Context, instrumentID int64) ([]broker.RatePoint, error)
	LastRate(ctx context.Context, instrumentID int64) (float64, error)
}

var _ Service = (*core.Gateway)(nil)

type HTTPServer struct {
	svc        Service
	sessions   port.SessionStore
	log        *zap.Logger
	corsOrigin string
	sessionTTL time.Duration
}

func NewHTTPServer(svc Service, sessions port.SessionStore, log *zap.Logger, corsOrigin string, sessionTTL time.Duration) *HTTPServer {
	return &HTTPServer{
		svc:        svc,
		sessions:   sessions,
		log:        log,
		corsOrigin: corsOrigin,
		sessionTTL: sessionTTL,
	}
}

func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(s.log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(s.corsOrigin))

	r.GET("/api", s.apiRoot)
	r.POST("/api/auth", s.auth)
	r.GET("/api/auth-check", s.authCheck)

	authorized := r.Group("/api", middleware.RequireSession(s.sessions))
	authorized.GET("/profile", s.profile)
	authorized.GET("/positions-open", s.openPositions)
	authorized.GET("/positions-closed", s.closedPositions)
	authorized.GET("/instruments", s.instruments)
	authorized.POST("/instruments", s.instrumentsFiltered)
	authorized.POST("/options", s.options)
	authorized.POST("/trade", s.trade)
	authorized.POST("/rate-history", s.rateHistory)
	authorized.POST("/rate-last", s.rateLast)

	return r
}

// --- conversions ---

func convertOpenPositions(positions []domain.Position) []dto.OpenPosition {
	res := make([]dto.OpenPosition, len(positions))
	for i, p := range positions {
		res[i] = dto.OpenPosition{
			AssetName:       p.AssetName,
			AssetID:         p.AssetID,
			AssetClass:      p.AssetClass,
			OpenDate:        p.OpenDate,
			OpenRate:        p.OpenRate,
			CloseDate:       p.CloseDate,
			Amount:          p.Amount,
			Currency:        p.Currency,
			Position:        p.Direction,
			PotentialPayout: p.PotentialPayout,
		}
	}
	return res
}

func convertClosedPositions(positions []domain.Position) []dto.ClosedPosition {
	res := make([]dto.ClosedPosition, len(positions))
	for i, p := range positions {
		res[i] = dto.ClosedPosition{
			AssetName:  p.AssetName,
			AssetID:    p.AssetID,
			AssetClass: p.AssetClass,
			OpenDate:   p.OpenDate,
			OpenRate:   p.OpenRate,
			CloseDate:  p.CloseDate,
			CloseRate:  p.CloseRate,
			Amount:     p.Amount,
			Currency:   p.Currency,
			Position:   p.Direction,
			Payout:     p.Payout,
			Status:     string(p.Status),
		}
	}
	return res
}

func convertInstruments(instruments []domain.Instrument) []dto.InstrumentEntry {
	res := make([]dto.InstrumentEntry, len(instruments))
	for i, in := range instruments {
		res[i] = dto.InstrumentEntry{
			ID:         in.ID,
			AssetClass: in.AssetClass,
			Name:       in.Name,
			Symbol:     in.Symbol,
		}
	}
	return res
}

func convertOptions(options []domain.Option) []dto.OptionEntry {
	res := make([]dto.OptionEntry, len(options))
	for i, o := range options {
		res[i] = dto.OptionEntry{
			ID:             o.ID,
			CloseDate:      o.CloseTime.Format(displayTime),
			NoPositionTime: o.NoPositionTime,
			Profit:         o.Profit,
			RuleID:         o.RuleID,
			AssetID:        o.AssetID,
		}
	}
	return res
}

func convertRateHistory(history []broker.RatePoint) []dto.RatePoint {
	res := make([]dto.RatePoint, len(history))
	for i, r := range history {
		res[i] = dto.RatePoint{
			Date:      time.Unix(r.Timestamp, 0).UTC().Format(displayTime),
			Timestamp: r.Timestamp,
			Rate:      r.Rate,
		}
	}
	return res
}
