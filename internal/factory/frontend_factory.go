package factory

import (
	"fmt"

	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/adapters/chiapi"
	"github.com/mikey/email-classifier/internal/adapters/echoapi"
	"github.com/mikey/email-classifier/internal/adapters/smtpgate"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/ports"
	"go.uber.org/zap"
)

// FrontendFactory creates front ends based on configuration
type FrontendFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.ClassificationService
}

// NewFrontendFactory creates a new front end factory
func NewFrontendFactory(cfg *config.Config, logger *zap.Logger, service *core.ClassificationService) *FrontendFactory {
	return &FrontendFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateFrontends creates every front end listed in server.frontends
func (f *FrontendFactory) CreateFrontends() ([]ports.Frontend, error) {
	names := f.cfg.GetFrontends()
	if len(names) == 0 {
		return nil, fmt.Errorf("no front ends configured")
	}

	frontends := make([]ports.Frontend, 0, len(names))
	for _, name := range names {
		frontend, err := f.CreateFrontend(name)
		if err != nil {
			return nil, err
		}
		frontends = append(frontends, frontend)
	}
	return frontends, nil
}

// CreateFrontend creates a single front end by name
func (f *FrontendFactory) CreateFrontend(name string) (ports.Frontend, error) {
	switch name {
	case "http":
		return f.createHTTP()
	case "smtp":
		smtpCfg, err := f.cfg.GetSMTP()
		if err != nil {
			return nil, err
		}
		return smtpgate.NewGate(f.service, f.logger, smtpCfg), nil
	default:
		return nil, fmt.Errorf("unsupported front end: %s", name)
	}
}

func (f *FrontendFactory) createHTTP() (ports.Frontend, error) {
	httpCfg, err := f.cfg.GetHTTP()
	if err != nil {
		return nil, err
	}
	handlers := api.NewHandlers(f.service, f.cfg.GetAPI(), f.logger)

	switch httpCfg.Framework {
	case "chi":
		return chiapi.NewServer(handlers, f.logger, httpCfg), nil
	case "echo":
		return echoapi.NewServer(handlers, f.logger, httpCfg), nil
	default:
		return nil, fmt.Errorf("unsupported http framework: %s", httpCfg.Framework)
	}
}
