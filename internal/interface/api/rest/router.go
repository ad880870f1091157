package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"contacts-api/internal/interface/api/rest/middleware"
)

// NewRouter builds the engine with the global middleware. Only peers listed
// in trustedProxies may set the client address through X-Forwarded-For, so
// the rate-limit key cannot be chosen by the client.
func NewRouter(logger *zap.Logger, mCounter *prometheus.CounterVec, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	return r, nil
}
