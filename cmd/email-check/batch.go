package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/core"
)

const batchChunkSize = 100

var (
	batchFile       string
	batchOutput     string
	batchNoProgress bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify email addresses from a file",
	Long: `Classify email addresses read from a file (or stdin with -f -), one per line.
Blank lines and lines starting with # are skipped. Results are written as JSON.

Examples:
  email-check batch -f emails.txt
  email-check batch -f emails.txt -o results.json --workers 4
  cat emails.txt | email-check batch -f -`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Input file with one email per line (- for stdin)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output file (stdout when omitted)")
	batchCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Workers per batch (overrides batch.workers)")
	batchCmd.Flags().BoolVar(&batchNoProgress, "no-progress", false, "Disable the progress bar")
	_ = batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if batchFile != "-" {
		f, err := os.Open(batchFile)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	emails, err := readEmails(in)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return fmt.Errorf("no addresses in %s: %w", batchFile, core.ErrEmptyBatch)
	}
	logger.Info("Read input", zap.String("file", batchFile), zap.Int("emails", len(emails)))

	var bar *progressbar.ProgressBar
	if !batchNoProgress {
		bar = progressbar.NewOptions(len(emails),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Classifying"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	items, err := classifyInChunks(cmd, emails, bar)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(api.NewBatchResponse(items, nil)); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if batchOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to: %s\n", batchOutput)
	}
	return nil
}

func classifyInChunks(cmd *cobra.Command, emails []string, bar *progressbar.ProgressBar) ([]core.BatchItem, error) {
	items := make([]core.BatchItem, 0, len(emails))
	for start := 0; start < len(emails); start += batchChunkSize {
		end := min(start+batchChunkSize, len(emails))

		candidates := make([]core.Candidate, 0, end-start)
		for _, email := range emails[start:end] {
			candidates = append(candidates, core.Candidate{Email: email})
		}

		chunk, err := service.VerifyBatch(cmd.Context(), candidates)
		if err != nil {
			return nil, err
		}
		items = append(items, chunk...)

		if bar != nil {
			_ = bar.Add(len(chunk))
		}
	}
	return items, nil
}

// readEmails returns one trimmed address per non-blank, non-comment line
func readEmails(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var emails []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		emails = append(emails, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return emails, nil
}
