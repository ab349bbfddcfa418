package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/logging"
)

// CLIFlags contains the global command line flags of the CLI application
type CLIFlags struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool
	Workers    int
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		return loadCLIConfig(flags, logger)
	}); err != nil {
		return nil, err
	}

	if err := provideClassification(container); err != nil {
		return nil, err
	}

	return container, nil
}

func loadCLIConfig(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	if flags.ConfigFile != "" {
		loaded, err := config.NewFromFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded configuration from file", zap.String("file", loaded.GetViper().ConfigFileUsed()))
		cfg = loaded
	} else {
		cfg = config.NewFromViper(config.NewEmptyViper())
	}

	if flags.Workers > 0 {
		cfg.GetViper().Set("batch.workers", flags.Workers)
	}
	return cfg, nil
}
