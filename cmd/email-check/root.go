package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/di"
)

var (
	flags   = &di.CLIFlags{}
	noColor bool

	// populated by PersistentPreRunE
	service *core.ClassificationService
	logger  *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "email-check",
	Short: "Classify email addresses offline",
	Long: `email-check classifies email addresses by syntax and disposable domain
membership and scores them 0 (invalid), 30 (disposable) or 100 (valid).

Examples:
  email-check classify user@example.com test@tempmail.com
  email-check batch -f emails.txt -o results.json
  email-check domains`,
	Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		container, err := di.BuildCLIContainer(flags)
		if err != nil {
			return fmt.Errorf("failed to build dependency container: %w", err)
		}
		return container.Invoke(func(l *zap.Logger, s *core.ClassificationService) {
			logger = l
			service = s
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "config file (defaults are used when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(classifyCmd, batchCmd, domainsCmd)
}
