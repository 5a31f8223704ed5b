package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinoscout/internal/bot"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the movie bot in the terminal",
	Long: `Start an interactive bot session.

Type a title to search, a number to pick from a list,
/help for help and /quit to leave.`,
	Args: cobra.NoArgs,
	RunE: runChatCmd,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := bot.NewHandler(a.resolver, a.coordinator, a.presenter, a.log)
	return runChat(ctx, h, cmd.InOrStdin(), &consoleMessenger{w: cmd.OutOrStdout()})
}

// consoleMessenger renders bot replies on a terminal. It remembers the
// choice list until the next reply so a typed number can select from it.
type consoleMessenger struct {
	w       io.Writer
	choices []bot.Choice
}

func (m *consoleMessenger) SendText(_ context.Context, text string) error {
	m.choices = nil
	_, err := fmt.Fprintln(m.w, text)
	return err
}

func (m *consoleMessenger) SendChoices(_ context.Context, text string, choices []bot.Choice) error {
	m.choices = choices
	renderChoices(m.w, text, choices)
	_, err := fmt.Fprintln(m.w, mutedStyle.Render("Type a number to pick a film."))
	return err
}

func (m *consoleMessenger) SendCard(_ context.Context, card bot.Card) error {
	m.choices = nil
	renderCard(m.w, card)
	return nil
}

// pick returns the callback data of the n-th offered choice.
func (m *consoleMessenger) pick(input string) (string, bool) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(m.choices) {
		return "", false
	}
	return m.choices[n-1].Data, true
}

// runChat reads user input line by line until EOF, /quit or ctx is done.
func runChat(ctx context.Context, h *bot.Handler, in io.Reader, m *consoleMessenger) error {
	if err := h.Start(ctx, m); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(m.w, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(m.w)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		var err error
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/start":
			err = h.Start(ctx, m)
		case "/help":
			err = h.Help(ctx, m)
		default:
			if data, ok := m.pick(line); ok {
				err = h.HandleSelection(ctx, m, data)
			} else {
				err = h.HandleQuery(ctx, m, line)
			}
		}
		if err != nil {
			return err
		}
	}
}
