package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

const (
	// SessionCookie carries the opaque session token.
	SessionCookie = "gateway_session"
	// CustomerIDKey is the gin context key holding the authenticated id.
	CustomerIDKey = "customer_id"

	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequireSession rejects requests without a recognized session identity
// before any downstream work happens. On success the customer id is placed
// in the request context.
func RequireSession(store port.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			return
		}
		customerID, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			return
		}
		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}

// CustomerID returns the id stored by RequireSession. Only valid behind it.
func CustomerID(c *gin.Context) int64 {
	v, _ := c.Get(CustomerIDKey)
	id, _ := v.(int64)
	return id
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set(requestIDKey, requestID)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if origin == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if o := c.GetHeader("Origin"); o != "" && o == origin {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
