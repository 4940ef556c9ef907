package httpserver

import (
	"fmt"

	"phonebook/contact"
	"phonebook/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		s.Config = cfg
		if cfg.Port != 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		s.AllowOrigins = cfg.Origins()
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		s.Logger = l
		return nil
	}
}

func WithBookService(svc contact.Service) Options {
	return func(s *Server) error {
		if svc == nil {
			return fmt.Errorf("httpserver: nil book service")
		}
		s.BookService = svc
		return nil
	}
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Options {
	return func(s *Server) error {
		s.Gatherer = g
		return nil
	}
}
