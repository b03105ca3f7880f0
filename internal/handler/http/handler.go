package http

import (
	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server
	limiter  *clientRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		limiter:  newClientRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		logger:   logger,
	}
}
