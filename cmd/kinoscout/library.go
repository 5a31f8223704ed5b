package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vmunix/kinoscout/internal/library"
)

// libraryStreamOutput is the JSON form of a catalog stream.
type libraryStreamOutput struct {
	ID          int64     `json:"id"`
	KinopoiskID *int64    `json:"kinopoisk_id,omitempty"`
	IMDbID      *string   `json:"imdb_id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Quality     string    `json:"quality,omitempty"`
	URL         string    `json:"url"`
	AddedAt     time.Time `json:"added_at"`
}

func toLibraryOutput(s *library.Stream) libraryStreamOutput {
	return libraryStreamOutput{
		ID:          s.ID,
		KinopoiskID: s.KinopoiskID,
		IMDbID:      s.IMDbID,
		Title:       s.Title,
		Quality:     s.Quality,
		URL:         s.URL,
		AddedAt:     s.AddedAt,
	}
}

func init() {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage streams in the local catalog",
	}

	addCmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Register a stream for a film",
		Long: `Register a playable stream in the local catalog.

Examples:
  kinoscout library add https://media.local/matrix.m3u8 --kp-id 301 --quality 1080p
  kinoscout library add https://media.local/matrix.mkv --imdb-id tt0133093`,
		Args: cobra.ExactArgs(1),
		RunE: runLibraryAdd,
	}
	addCmd.Flags().Int64("kp-id", 0, "Kinopoisk film ID")
	addCmd.Flags().String("imdb-id", "", "IMDb ID")
	addCmd.Flags().String("title", "", "Title shown in listings")
	addCmd.Flags().String("quality", "", "Quality label (e.g. 1080p)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog streams",
		Args:  cobra.NoArgs,
		RunE:  runLibraryList,
	}
	listCmd.Flags().Int64("kp-id", 0, "Filter by Kinopoisk film ID")
	listCmd.Flags().String("imdb-id", "", "Filter by IMDb ID")
	listCmd.Flags().IntP("limit", "l", 50, "Maximum number of items to return")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a stream from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runLibraryRemove,
	}

	libraryCmd.AddCommand(addCmd, listCmd, removeCmd)
	rootCmd.AddCommand(libraryCmd)
}

func openLibrary() (*library.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Providers.Library.IsEnabled() {
		return nil, errors.New("library provider is disabled in config")
	}
	return library.Open(cfg.Providers.Library.Path)
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	kpID, _ := cmd.Flags().GetInt64("kp-id")
	imdbID, _ := cmd.Flags().GetString("imdb-id")
	title, _ := cmd.Flags().GetString("title")
	quality, _ := cmd.Flags().GetString("quality")

	st := &library.Stream{Title: title, Quality: quality, URL: args[0]}
	if kpID > 0 {
		st.KinopoiskID = &kpID
	}
	if imdbID != "" {
		st.IMDbID = &imdbID
	}
	if st.KinopoiskID == nil && st.IMDbID == nil {
		return errors.New("one of --kp-id or --imdb-id is required")
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.AddStream(cmd.Context(), st); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			return fmt.Errorf("stream already registered: %s", st.URL)
		}
		return fmt.Errorf("add stream: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, toLibraryOutput(st))
		return nil
	}
	fmt.Fprintf(out, "Added stream #%d\n", st.ID)
	return nil
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	kpID, _ := cmd.Flags().GetInt64("kp-id")
	imdbID, _ := cmd.Flags().GetString("imdb-id")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := library.StreamFilter{Limit: limit}
	if kpID > 0 {
		filter.KinopoiskID = &kpID
	}
	if imdbID != "" {
		filter.IMDbID = &imdbID
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	streams, total, err := store.ListStreams(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("list streams: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		items := make([]libraryStreamOutput, 0, len(streams))
		for _, s := range streams {
			items = append(items, toLibraryOutput(s))
		}
		printJSON(out, map[string]any{"items": items, "total": total})
		return nil
	}
	printLibraryStreams(out, streams, total)
	return nil
}

func printLibraryStreams(w io.Writer, streams []*library.Stream, total int) {
	if len(streams) == 0 {
		fmt.Fprintln(w, "Library is empty")
		return
	}
	for _, s := range streams {
		ids := ""
		if s.KinopoiskID != nil {
			ids = "kp:" + strconv.FormatInt(*s.KinopoiskID, 10)
		}
		if s.IMDbID != nil {
			if ids != "" {
				ids += " "
			}
			ids += *s.IMDbID
		}
		fmt.Fprintf(w, "%4d  %-24s %-8s %s  %s\n", s.ID, ids, s.Quality, s.URL, mutedStyle.Render(humanize.Time(s.AddedAt)))
		if s.Title != "" {
			fmt.Fprintf(w, "      %s\n", s.Title)
		}
	}
	if total > len(streams) {
		fmt.Fprintf(w, "\nShowing %d of %d\n", len(streams), total)
	}
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid stream ID: %s", args[0])
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	st, err := store.RemoveStream(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return fmt.Errorf("stream #%d not found", id)
		}
		return fmt.Errorf("remove stream: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, toLibraryOutput(st))
		return nil
	}
	fmt.Fprintf(out, "Removed stream #%d  %s\n", st.ID, st.URL)
	return nil
}
