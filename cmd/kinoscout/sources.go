package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinoscout/internal/sources"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources <kinopoisk-id>",
	Short: "Show where a film can be watched",
	Long: `Ask every enabled provider where a film can be watched.

Examples:
  kinoscout sources 301
  kinoscout sources 301 --outcomes`,
	Args: cobra.ExactArgs(1),
	RunE: runSourcesCmd,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.Flags().Bool("outcomes", false, "Show how each provider lookup ended")
}

type sourcesOutput struct {
	FilmID   int64                `json:"film_id"`
	Title    string               `json:"title"`
	Year     int                  `json:"year,omitempty"`
	Sources  sources.Presentation `json:"sources"`
	Outcomes []outcomeOutput      `json:"outcomes,omitempty"`
}

type outcomeOutput struct {
	Provider   string `json:"provider"`
	Status     string `json:"status"`
	Cause      string `json:"cause,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

func toOutcomeOutput(outcomes []sources.Outcome) []outcomeOutput {
	out := make([]outcomeOutput, 0, len(outcomes))
	for _, o := range outcomes {
		oo := outcomeOutput{Provider: o.Provider, Status: string(o.Status), DurationMs: o.Duration.Milliseconds()}
		if o.Failure != nil {
			oo.Cause = string(o.Failure.Cause)
			oo.Error = o.Failure.Error()
		}
		out = append(out, oo)
	}
	return out
}

func runSourcesCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid kinopoisk ID: %s", args[0])
	}
	showOutcomes, _ := cmd.Flags().GetBool("outcomes")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	film, err := a.resolver.GetFilm(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get film: %w", err)
	}

	agg := a.coordinator.FindSources(cmd.Context(), film.Movie())
	p := a.presenter.Present(agg.Results)

	out := cmd.OutOrStdout()
	if jsonOutput {
		res := sourcesOutput{FilmID: film.KinopoiskID, Title: film.Title(), Year: int(film.Year), Sources: p}
		if showOutcomes {
			res.Outcomes = toOutcomeOutput(agg.Outcomes)
		}
		printJSON(out, res)
		return nil
	}

	title := film.Title()
	if film.Year > 0 {
		title = fmt.Sprintf("%s (%d)", title, film.Year)
	}
	fmt.Fprintln(out, titleStyle.Render(title))
	fmt.Fprintln(out)
	renderPresentation(out, p)
	if showOutcomes {
		fmt.Fprintln(out)
		renderOutcomes(out, agg.Outcomes)
	}
	return nil
}
