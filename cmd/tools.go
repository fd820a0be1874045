package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List and call the catalog tools",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		table := newTable(cmd.OutOrStdout(), "Name", "Description")
		for _, t := range appInstance.Tools.List() {
			table.Append([]string{t.Name, t.Description})
		}
		table.Render()
		return nil
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <name> [json-args]",
	Short: "Call a tool with a JSON argument object",
	Long: `Calls a tool and prints its JSON payload. Arguments are read from the
second positional argument, or from stdin when it is "-".`,
	Example: `  feedscout tools call resolve_feed '{"query":"aicodeking"}'
  echo '{"category":"tech","limit":5}' | feedscout tools call search_entries -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		var rawArgs []byte
		if len(args) == 2 {
			if args[1] == "-" {
				if rawArgs, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("failed to read arguments: %w", err)
				}
			} else {
				rawArgs = []byte(args[1])
			}
		}
		if len(bytes.TrimSpace(rawArgs)) > 0 && !json.Valid(rawArgs) {
			return fmt.Errorf("arguments must be a JSON object")
		}

		res, err := appInstance.Tools.Call(cmd.Context(), args[0], rawArgs)
		if err != nil {
			return err
		}

		var pretty bytes.Buffer
		if json.Indent(&pretty, []byte(res.Text), "", "  ") != nil {
			pretty.Reset()
			pretty.WriteString(res.Text)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, strings.TrimSpace(pretty.String()))
		if res.IsError {
			return fmt.Errorf("tool %s reported an error", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
}
