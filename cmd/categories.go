package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedscout/internal/resolver"
	"feedscout/internal/services"
)

var (
	categoriesCounts bool
	feedsCategory    string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		cats, err := appInstance.BrowseService.ListCategories(cmd.Context(), categoriesCounts)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, cats)
		}
		if len(cats) == 0 {
			fmt.Fprintln(out, "No categories found.")
			return nil
		}
		header := []string{"ID", "Title"}
		if categoriesCounts {
			header = append(header, "Feeds", "Unread")
		}
		table := newTable(out, header...)
		for _, c := range cats {
			row := []string{formatID(c.ID), c.Title}
			if categoriesCounts {
				row = append(row, optionalInt(c.FeedCount), optionalInt(c.TotalUnread))
			}
			table.Append(row)
		}
		table.Render()
		countLine(out, len(cats), "category", "categories")
		return nil
	},
}

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List feeds, optionally for one category",
	Long: `Lists every feed, or with --category only the feeds of that category.
The category may be given by id or by a loose name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var categoryID int64
		if feedsCategory != "" {
			categoryID, err = appInstance.ResolveService.ResolveRef(ctx, resolver.KindCategory, parseRef(feedsCategory))
			if err != nil {
				return describeResolutionError(cmd, err)
			}
		}
		feeds, err := appInstance.BrowseService.ListFeeds(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list feeds: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, feeds)
		}
		if len(feeds) == 0 {
			fmt.Fprintln(out, "No feeds found.")
			return nil
		}
		table := newTable(out, "ID", "Title", "Category", "Site")
		for _, f := range feeds {
			category := ""
			if f.Category != nil {
				category = f.Category.Title
			}
			table.Append([]string{formatID(f.ID), truncate(f.Title, 50), category, truncate(f.SiteURL, 50)})
		}
		table.Render()
		countLine(out, len(feeds), "feed", "feeds")
		return nil
	},
}

// parseRef treats an all-digit argument as an id and anything else as a name.
func parseRef(arg string) services.Ref {
	if id, ok := resolver.ParseIDHint(arg); ok && id > 0 {
		return services.Ref{ID: id}
	}
	return services.Ref{Name: arg}
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(feedsCmd)

	categoriesCmd.Flags().BoolVar(&categoriesCounts, "counts", false, "Include feed and unread counts")
	addJSONFlag(categoriesCmd)

	feedsCmd.Flags().StringVarP(&feedsCategory, "category", "c", "", "Category id or name")
	addJSONFlag(feedsCmd)
}
