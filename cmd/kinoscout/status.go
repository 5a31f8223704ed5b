package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running server",
	Long: `Query a running 'kinoscout serve' instance.

Examples:
  kinoscout status
  kinoscout status --server http://media.local:8585`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	client := NewClient(serverURL)

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}
	providers, err := client.Providers()
	if err != nil {
		return fmt.Errorf("list providers: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, map[string]any{"status": status, "providers": providers.Providers})
		return nil
	}
	printStatusHuman(out, serverURL, status, providers.Providers)
	return nil
}

func printStatusHuman(w io.Writer, server string, s *StatusResponse, providers []string) {
	fmt.Fprintf(w, "Server:     %s (%s)\n", server, s.Status)
	fmt.Fprintf(w, "Version:    %s\n", s.Version)
	fmt.Fprintf(w, "Providers:  %s\n", strings.Join(providers, ", "))
	if len(s.Checks) == 0 {
		return
	}
	fmt.Fprintln(w, "Checks:")
	for _, c := range s.Checks {
		if c.Error != "" {
			fmt.Fprintf(w, "  %-10s %s (%s)\n", c.Name, c.Status, c.Error)
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", c.Name, c.Status)
	}
}
