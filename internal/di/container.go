package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/disposable"
	"github.com/mikey/email-classifier/internal/factory"
	"github.com/mikey/email-classifier/internal/logging"
	"github.com/mikey/email-classifier/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideClassification(container); err != nil {
		return nil, err
	}

	// Register front ends
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FrontendFactory) ([]ports.Frontend, error) {
		return f.CreateFrontends()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideClassification registers the domain set, classifier and service.
// It expects *config.Config and *zap.Logger to be provided already.
func provideClassification(container *dig.Container) error {
	// Register disposable domain set
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.DomainSet {
		return disposable.NewSet(cfg.GetDisposableDomains(), logger)
	}); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(core.NewClassifier); err != nil {
		return err
	}

	// Register classification service
	return container.Provide(func(classifier *core.Classifier, logger *zap.Logger, cfg *config.Config) *core.ClassificationService {
		return core.NewClassificationService(classifier, logger, cfg.GetBatch().Workers)
	})
}
