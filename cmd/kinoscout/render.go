package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmunix/kinoscout/internal/bot"
	"github.com/vmunix/kinoscout/internal/sources"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	linkStyle     = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#5FAFFF"))
	choiceNumbers = lipgloss.NewStyle().Bold(true)
)

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// renderCard prints the film caption, links and sources.
func renderCard(w io.Writer, card bot.Card) {
	caption := bot.Caption(card.Film)
	title, rest, _ := strings.Cut(caption, "\n")
	fmt.Fprintln(w, titleStyle.Render(title))
	if rest != "" {
		fmt.Fprintln(w, rest)
	}

	if card.PosterURL != "" || card.TrailerURL != "" {
		fmt.Fprintln(w)
	}
	if card.PosterURL != "" {
		fmt.Fprintf(w, "Poster:  %s\n", linkStyle.Render(card.PosterURL))
	}
	if card.TrailerURL != "" {
		fmt.Fprintf(w, "Trailer: %s\n", linkStyle.Render(card.TrailerURL))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Where to watch"))
	renderPresentation(w, card.Sources)
}

// renderPresentation prints one block per provider group.
func renderPresentation(w io.Writer, p sources.Presentation) {
	if p.Empty {
		fmt.Fprintln(w, mutedStyle.Render(p.Notice))
		return
	}
	for i, g := range p.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", headingStyle.Render(g.Provider), mutedStyle.Render("("+string(g.Kind)+")"))
		for _, item := range g.Items {
			fmt.Fprintf(w, "  • %s\n", bot.ItemLine(item))
		}
		if g.Hidden > 0 {
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  … and %d more", g.Hidden)))
		}
	}
}

// renderOutcomes prints how each provider lookup ended.
func renderOutcomes(w io.Writer, outcomes []sources.Outcome) {
	fmt.Fprintln(w, mutedStyle.Render("Providers:"))
	for _, o := range outcomes {
		line := fmt.Sprintf("  %-10s %-9s %5dms", o.Provider, o.Status, o.Duration.Milliseconds())
		if o.Failure != nil {
			line += fmt.Sprintf("  %s: %v", o.Failure.Cause, o.Failure.Err)
			fmt.Fprintln(w, errorStyle.Render(line))
			continue
		}
		fmt.Fprintln(w, mutedStyle.Render(line))
	}
}

// renderChoices prints a numbered choice list.
func renderChoices(w io.Writer, text string, choices []bot.Choice) {
	fmt.Fprintln(w, text)
	for i, c := range choices {
		fmt.Fprintf(w, "  %s %s\n", choiceNumbers.Render(fmt.Sprintf("%2d.", i+1)), c.Label)
	}
}
