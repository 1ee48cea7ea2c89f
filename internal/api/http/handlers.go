package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valeradishlevii/trade-api-sample/internal/api/dto"
	"github.com/valeradishlevii/trade-api-sample/internal/core"
	"github.com/valeradishlevii/trade-api-sample/internal/domain"
	"github.com/valeradishlevii/trade-api-sample/internal/middleware"
	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

func (s *HTTPServer) internalError(c *gin.Context, where string, err error) {
	s.log.Error("internal error", zap.String("where", where), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}

func (s *HTTPServer) apiRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"auth":             "/api/auth",
		"auth-check":       "/api/auth-check",
		"profile":          "/api/profile",
		"positions-open":   "/api/positions-open",
		"positions-closed": "/api/positions-closed",
		"instruments":      "/api/instruments",
		"options":          "/api/options",
		"trade":            "/api/trade",
		"rate-history":     "/api/rate-history",
		"rate-last":        "/api/rate-last",
	})
}

func (s *HTTPServer) auth(c *gin.Context) {
	// Whatever happens next, the previous identity is gone.
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := s.sessions.Delete(c.Request.Context(), token); err != nil {
			s.internalError(c, "clear session", err)
			return
		}
	}

	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := s.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// The cause (bad password, unknown email, provider outage) is
		// deliberately indistinguishable to the client.
		s.log.Warn("authentication failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong credentials"})
		return
	}

	token := uuid.NewString()
	if err := s.sessions.Set(c.Request.Context(), token, customerID); err != nil {
		s.internalError(c, "store session", err)
		return
	}
	c.SetCookie(middleware.SessionCookie, token, int(s.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, dto.AuthResponse{Result: "Authorized"})
}

func (s *HTTPServer) authCheck(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil {
		c.JSON(http.StatusOK, dto.AuthCheckResponse{Authorized: false})
		return
	}
	_, err = s.sessions.Get(c.Request.Context(), token)
	if errors.Is(err, port.ErrNotFound) {
		c.JSON(http.StatusOK, dto.AuthCheckResponse{Authorized: false})
		return
	}
	if err != nil {
		s.internalError(c, "check session", err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthCheckResponse{Authorized: true})
}

func (s *HTTPServer) profile(c *gin.Context) {
	customer, err := s.svc.Profile(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		s.internalError(c, "profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Profile: dto.Profile{
		Name:           customer.Name,
		AccountBalance: customer.AccountBalance,
		Currency:       customer.Currency,
	}})
}

func (s *HTTPServer) openPositions(c *gin.Context) {
	positions, err := s.svc.OpenPositions(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		s.internalError(c, "open positions", err)
		return
	}
	c.JSON(http.StatusOK, dto.OpenPositionsResponse{
		AssetClasses: domain.AssetClasses(),
		PositionList: convertOpenPositions(positions),
	})
}

func (s *HTTPServer) closedPositions(c *gin.Context) {
	positions, err := s.svc.ClosedPositions(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		s.internalError(c, "closed positions", err)
		return
	}
	c.JSON(http.StatusOK, dto.ClosedPositionsResponse{
		AssetClasses: domain.AssetClasses(),
		PositionList: convertClosedPositions(positions),
	})
}

func (s *HTTPServer) instruments(c *gin.Context) {
	tradeable, err := s.svc.TradeableInstruments(c.Request.Context())
	if err != nil {
		s.internalError(c, "instruments", err)
		return
	}
	instruments := make([]domain.Instrument, len(tradeable))
	for i, t := range tradeable {
		instruments[i] = t.Instrument
	}
	c.JSON(http.StatusOK, dto.InstrumentsResponse{
		AssetClasses:   domain.AssetClasses(),
		InstrumentList: convertInstruments(instruments),
	})
}

func (s *HTTPServer) instrumentsFiltered(c *gin.Context) {
	var req dto.AllInstrumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !*req.AllInstruments {
		s.instruments(c)
		return
	}

	instruments, err := s.svc.AllInstruments(c.Request.Context())
	if err != nil {
		s.internalError(c, "all instruments", err)
		return
	}
	c.JSON(http.StatusOK, dto.InstrumentsResponse{
		AssetClasses:   domain.AssetClasses(),
		InstrumentList: convertInstruments(instruments),
	})
}

func (s *HTTPServer) options(c *gin.Context) {
	var req dto.InstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	options, err := s.svc.Options(c.Request.Context(), req.InstrumentID)
	if err != nil {
		s.internalError(c, "options", err)
		return
	}
	c.JSON(http.StatusOK, dto.OptionsResponse{OptionList: convertOptions(options)})
}

func (s *HTTPServer) trade(c *gin.Context) {
	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	direction := domain.TradeType(*req.Position)
	if _, ok := direction.BrokerCode(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position"})
		return
	}

	result, err := s.svc.PlaceTrade(c.Request.Context(), middleware.CustomerID(c),
		req.InstrumentID, direction, req.Amount, req.OptionID, req.RuleID)
	if errors.Is(err, core.ErrUnknownDirection) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position"})
		return
	}
	if err != nil {
		s.internalError(c, "trade", err)
		return
	}
	c.JSON(http.StatusOK, dto.TradeResponse{Success: result.Success, Rate: result.Rate})
}

func (s *HTTPServer) rateHistory(c *gin.Context) {
	var req dto.InstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	history, err := s.svc.RateHistory(c.Request.Context(), req.InstrumentID)
	if err != nil {
		s.internalError(c, "rate history", err)
		return
	}
	c.JSON(http.StatusOK, dto.RateHistoryResponse{RateHistory: convertRateHistory(history)})
}

func (s *HTTPServer) rateLast(c *gin.Context) {
	var req dto.InstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rate, err := s.svc.LastRate(c.Request.Context(), req.InstrumentID)
	if err != nil {
		s.internalError(c, "last rate", err)
		return
	}
	c.JSON(http.StatusOK, dto.RateResponse{Rate: rate})
}
