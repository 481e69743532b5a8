package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/Th-ium/ThiumCore/pkg/config"
	"go.uber.org/zap"
)

// Service serves metrics-related endpoints.
type Service struct {
	servers     []*http.Server
	config      config.BasicService
	log         *zap.Logger
	serviceType string
}

// NewService configures logging and returns a new service instance.
func NewService(name string, servers []*http.Server, cfg config.BasicService, log *zap.Logger) *Service {
	return &Service{
		servers:     servers,
		config:      cfg,
		log:         log.With(zap.String("service", name)),
		serviceType: name,
	}
}

// Start runs the http service with the exposed endpoints on the configured
// addresses.
func (ms *Service) Start() error {
	if !ms.config.Enabled {
		ms.log.Info("service hasn't started since it's disabled")
		return nil
	}
	if len(ms.servers) == 0 {
		return errors.New("no bind addresses configured")
	}
	for _, srv := range ms.servers {
		ms.log.Info("starting service", zap.String("endpoint", srv.Addr))

		go func(s *http.Server) {
			err := s.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				ms.log.Error("failed to start service",
					zap.String("endpoint", s.Addr), zap.Error(err))
			}
		}(srv)
	}
	return nil
}

// ShutDown stops the service.
func (ms *Service) ShutDown() {
	if !ms.config.Enabled {
		return
	}
	for _, srv := range ms.servers {
		ms.log.Info("shutting down service", zap.String("endpoint", srv.Addr))
		err := srv.Shutdown(context.Background())
		if err != nil {
			ms.log.Error("can't shut service down",
				zap.String("endpoint", srv.Addr), zap.Error(err))
		}
	}
}
