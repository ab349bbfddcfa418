package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/core"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify <email>...",
	Short: "Classify one or more email addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output as JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	results := make([]api.VerifyResponse, 0, len(args))
	for _, email := range args {
		result, err := service.Verify(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("classify %q: %w", email, err)
		}
		if !classifyJSON {
			printResult(out, result)
			continue
		}
		results = append(results, api.NewVerifyResponse(result))
	}

	if classifyJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}
	return nil
}

func printResult(w io.Writer, result core.ClassificationResult) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	var verdict string
	switch {
	case !result.ValidFormat:
		verdict = red.Sprint("INVALID")
	case result.Disposable:
		verdict = yellow.Sprint("DISPOSABLE")
	default:
		verdict = green.Sprint("VALID")
	}

	domain := result.Domain
	if domain == "" {
		domain = "-"
	}
	fmt.Fprintf(w, "%-40s %-10s score=%-3d domain=%s\n", result.Email, verdict, result.Score, domain)
}
