package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List enabled source providers in display order",
	Args:  cobra.NoArgs,
	RunE:  runProvidersCmd,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProvidersCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	names := a.coordinator.Providers()
	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, map[string][]string{"providers": names})
		return nil
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "No providers enabled")
		return nil
	}
	for i, name := range names {
		fmt.Fprintf(out, "%d. %s\n", i+1, name)
	}
	return nil
}
