package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valeradishlevii/trade-api-sample/internal/adapter/pg"
	"github.com/valeradishlevii/trade-api-sample/internal/adapter/session"
	httpapi "github.com/valeradishlevii/trade-api-sample/internal/api/http"
	"github.com/valeradishlevii/trade-api-sample/internal/broker/goptions"
	"github.com/valeradishlevii/trade-api-sample/internal/config"
	"github.com/valeradishlevii/trade-api-sample/internal/core"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := pg.NewPgRepo(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	defer repo.Close()

	sessions := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	brokerClient := goptions.NewClient(cfg.BrokerURL, cfg.BrokerUsername, cfg.BrokerPassword, cfg.BrokerTimeout)
	gateway := core.NewGateway(brokerClient, repo, cfg.BrokerName)

	gin.SetMode(gin.ReleaseMode)
	api := httpapi.NewHTTPServer(gateway, sessions, logger, cfg.CORSOrigin, cfg.SessionTTL)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: api.Router()}
	go func() {
		logger.Info("http listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShut()
	_ = server.Shutdown(ctxShut)
	logger.Info("shutdown complete")
}
