package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"feedscout/internal/clix"
	"feedscout/internal/models"
	"feedscout/internal/services"
	"feedscout/internal/util"

	log "github.com/sirupsen/logrus"
)

const excerptLength = 280

var (
	entriesCategory string
	entriesFeed     string
	entryFull       bool
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Search entries",
	Long: `Searches entries across the catalog, or within one category or feed.
--category and --feed accept an id or a loose name; when both are given the
category is used. Time bounds accept unix seconds, unix milliseconds or dates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := clix.ParseWindow(cmd.Flags())
		if err != nil {
			return err
		}
		params := services.SearchEntriesParams{Filter: filter}
		if entriesCategory != "" {
			params.Category = parseRef(entriesCategory)
		}
		if entriesFeed != "" {
			params.Feed = parseRef(entriesFeed)
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		res, err := appInstance.EntryService.SearchEntries(cmd.Context(), params)
		if err != nil {
			return describeResolutionError(cmd, err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, res)
		}
		if len(res.Entries) == 0 {
			fmt.Fprintln(out, "No entries found.")
			return nil
		}
		table := newTable(out, "ID", "Published", "Feed", "Status", "Title")
		for _, raw := range res.Entries {
			var e models.Entry
			if err := json.Unmarshal(raw, &e); err != nil {
				log.WithError(err).Warn("skipping undecodable entry")
				continue
			}
			table.Append([]string{formatID(e.ID), formatTime(e.PublishedAt), feedTitle(e), e.Status, truncate(e.Title, 70)})
		}
		table.Render()

		p := res.Page
		fmt.Fprintf(out, "Showing %d-%d of %d", p.Offset+1, p.Offset+p.ReturnedCount, p.Total)
		if p.HasMore && p.NextOffset != nil {
			fmt.Fprintf(out, " (next: --offset %d)", *p.NextOffset)
		}
		fmt.Fprintln(out)
		return nil
	},
}

var entryCmd = &cobra.Command{
	Use:   "entry <id>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		raw, err := appInstance.BrowseService.GetEntry(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			_, err := out.Write(append(raw, '\n'))
			return err
		}
		var e models.Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return fmt.Errorf("failed to decode entry %d: %w", id, err)
		}
		printEntry(out, e, entryFull)
		return nil
	},
}

func printEntry(out io.Writer, e models.Entry, full bool) {
	fmt.Fprintf(out, "ID: %d\nTitle: %s\n", e.ID, e.Title)
	if feed := feedTitle(e); feed != "" {
		fmt.Fprintf(out, "Feed: %s\n", feed)
	}
	if e.Author != "" {
		fmt.Fprintf(out, "Author: %s\n", e.Author)
	}
	fmt.Fprintf(out, "Published: %s\nStatus: %s\n", formatTime(e.PublishedAt), e.Status)
	if e.Starred {
		fmt.Fprintln(out, "Starred: yes")
	}
	if e.URL != "" {
		fmt.Fprintf(out, "URL: %s\n", e.URL)
	}

	text := util.HTMLToText(e.Content)
	if text == "" {
		return
	}
	if !full {
		text = util.Excerpt(text, excerptLength)
	}
	fmt.Fprintf(out, "---\n%s\n", text)
}

func feedTitle(e models.Entry) string {
	if e.Feed == nil {
		return ""
	}
	return truncate(e.Feed.Title, 30)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(entryCmd)

	entriesCmd.Flags().StringVarP(&entriesCategory, "category", "c", "", "Category id or name")
	entriesCmd.Flags().StringVarP(&entriesFeed, "feed", "f", "", "Feed id or name")
	clix.AddWindowFlags(entriesCmd.Flags())
	addJSONFlag(entriesCmd)

	entryCmd.Flags().BoolVar(&entryFull, "full", false, "Print the whole content instead of an excerpt")
	addJSONFlag(entryCmd)
}
