package main

import (
	"fmt"
	"os"

	"driver-risk-service/internal/auth"
	"driver-risk-service/internal/config"
	httphandler "driver-risk-service/internal/http"
	"driver-risk-service/internal/http/middleware"
	"driver-risk-service/internal/logger"
	"driver-risk-service/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	reportService := service.NewReportService(log, cfg.Scoring.Workers)

	var authMiddleware gin.HandlerFunc
	if cfg.Auth.AccessSecret != "" {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	} else {
		log.Warn().Msg("JWT_ACCESS_SECRET not set, API is unauthenticated")
	}

	handler := httphandler.NewHandler(reportService, cfg.Upload.MaxBytes, log)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Int("workers", cfg.Scoring.Workers).Msg("starting driver risk service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
