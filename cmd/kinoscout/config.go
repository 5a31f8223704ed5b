package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinoscout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd, configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Server:       %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Fprintf(w, "  Kinopoisk:    %s (cache %s)\n", cfg.Kinopoisk.BaseURL, cfg.Kinopoisk.CacheTTL)
	fmt.Fprintf(w, "  Aggregation:  %s per provider\n", cfg.Aggregation.Timeout)
	fmt.Fprintf(w, "  Presentation: %d items, %d torrents\n", cfg.Presentation.Limit, cfg.Presentation.TorrentLimit)

	p := cfg.Providers
	providers := []struct {
		name    string
		enabled bool
		note    string
	}{
		{"kodik", p.Kodik.IsEnabled(), credentialNote(p.Kodik.Token)},
		{"rutor", p.Rutor.IsEnabled(), ""},
		{"torznab", p.Torznab.IsEnabled(), credentialNote(p.Torznab.APIKey)},
		{"videocdn", p.VideoCDN.IsEnabled(), credentialNote(p.VideoCDN.Token)},
		{"library", p.Library.IsEnabled(), p.Library.Path},
	}
	var enabled, disabled []string
	for _, prov := range providers {
		if !prov.enabled {
			disabled = append(disabled, prov.name)
			continue
		}
		if prov.note != "" {
			enabled = append(enabled, fmt.Sprintf("%s (%s)", prov.name, prov.note))
		} else {
			enabled = append(enabled, prov.name)
		}
	}
	fmt.Fprintf(w, "  Providers:    %s\n", strings.Join(enabled, ", "))
	if len(disabled) > 0 {
		fmt.Fprintf(w, "  Disabled:     %s\n", strings.Join(disabled, ", "))
	}
}

func credentialNote(secret string) string {
	if secret == "" {
		return "no credentials"
	}
	return ""
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nSet KINOPOISK_API_KEY and run 'kinoscout config check'.\n", path)
	return nil
}
