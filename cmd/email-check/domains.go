package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the configured disposable domains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, domain := range service.Domains() {
			fmt.Fprintln(out, domain)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d disposable domains\n", service.DomainCount())
		return nil
	},
}
