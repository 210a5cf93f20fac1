package http

import (
	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/metrics"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	operations   map[string]operation
	loginLimiter *ipRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services:     services,
		metrics:      m,
		loginLimiter: newIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst),
		logger:       logger,
	}
	h.operations = h.operationTable()

	return h
}
