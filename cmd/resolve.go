package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"feedscout/internal/resolver"
	"feedscout/internal/services"
)

var findLimit int

var resolveCmd = &cobra.Command{
	Use:   "resolve category|feed <query>",
	Short: "Resolve a category or feed name to its id",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := resolver.ParseKind(args[0])
		if !ok {
			return fmt.Errorf("unknown kind %q: expected category or feed", args[0])
		}
		query := strings.Join(args[1:], " ")

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		outcome, err := appInstance.ResolveService.ResolveName(cmd.Context(), kind, query)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", kind, err)
		}
		if !outcome.Matched() {
			return describeResolutionError(cmd, &services.ResolutionError{Kind: kind, Query: query, Outcome: outcome})
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]any{
				"kind": kind, "id": outcome.ID, "title": outcome.Title, "tier": outcome.Tier.String(),
			})
		}
		fmt.Fprintf(out, "%s %s %d %q (matched by %s)\n", okLabel(), kind, outcome.ID, outcome.Title, outcome.Tier)
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Rank categories and feeds loosely matching a query",
	Long: `Scores every category and feed against the query and prints the best
candidates of each kind. A numeric query also matches the record with that id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		res, err := appInstance.ResolveService.ResolveFuzzy(cmd.Context(), strings.Join(args, " "), findLimit)
		if err != nil {
			return fmt.Errorf("failed to search names: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, res)
		}
		if res.ExactIDMatch != nil {
			fmt.Fprintf(out, "Exact id match: %s %d %q\n", res.ExactIDMatch.Kind, res.ExactIDMatch.ID, res.ExactIDMatch.Title)
		}
		if len(res.Categories) == 0 && len(res.Feeds) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		table := newTable(out, "Kind", "ID", "Title", "Score")
		for _, c := range res.Categories {
			table.Append([]string{string(resolver.KindCategory), formatID(c.ID), truncate(c.Title, 50), fmt.Sprint(c.Score)})
		}
		for _, f := range res.Feeds {
			table.Append([]string{string(resolver.KindFeed), formatID(f.ID), truncate(f.Title, 50), fmt.Sprint(f.Score)})
		}
		table.Render()
		if res.Truncated {
			fmt.Fprintln(out, "More candidates exist; refine the query or raise --limit.")
		}
		return nil
	},
}

// describeResolutionError prints the candidates of an ambiguous or unknown
// name before returning the error.
func describeResolutionError(cmd *cobra.Command, err error) error {
	var resErr *services.ResolutionError
	if !errors.As(err, &resErr) {
		return err
	}
	out := cmd.OutOrStdout()
	if resErr.Outcome.Ambiguous() {
		fmt.Fprintf(out, "%s %s %q matches %d candidates:\n", warningLabel(), resErr.Kind, resErr.Query, len(resErr.Outcome.Candidates))
		table := newTable(out, "ID", "Title")
		for _, c := range resErr.Outcome.Candidates {
			table.Append([]string{formatID(c.ID), c.Title})
		}
		table.Render()
	} else {
		fmt.Fprintf(out, "%s no %s matches %q\n", errorLabel(), resErr.Kind, resErr.Query)
	}
	return err
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(findCmd)

	addJSONFlag(resolveCmd)
	findCmd.Flags().IntVarP(&findLimit, "limit", "l", 0, "Candidates per kind (default from config, max 25)")
	addJSONFlag(findCmd)
}
