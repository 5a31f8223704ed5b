package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinoscout/internal/kinopoisk"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search Kinopoisk for a title",
	Long: `Search Kinopoisk for movies and series.

Examples:
  kinoscout search Матрица
  kinoscout search "The Matrix"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	films, err := a.resolver.SearchByKeyword(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, films)
		return nil
	}
	printSearchResults(out, films)
	return nil
}

func printSearchResults(w io.Writer, films []kinopoisk.FilmSummary) {
	if len(films) == 0 {
		fmt.Fprintln(w, "No films found")
		return
	}
	for _, f := range films {
		year := "    "
		if f.Year > 0 {
			year = strconv.Itoa(int(f.Year))
		}
		fmt.Fprintf(w, "%9d  %s  %s", f.FilmID, year, titleStyle.Render(f.DisplayName()))
		if f.NameEn != "" && f.NameEn != f.DisplayName() {
			fmt.Fprintf(w, " %s", mutedStyle.Render("("+f.NameEn+")"))
		}
		if f.Rating != "" && f.Rating != "null" {
			fmt.Fprintf(w, "  ★ %s", f.Rating)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d found. Run 'kinoscout sources <id>' to see where to watch.\n", len(films))
}
