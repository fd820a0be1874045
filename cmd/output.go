package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var jsonOutput bool

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addJSONFlag lets a command print its raw result instead of a table.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
}

func okLabel() string      { return color.GreenString("OK") }
func errorLabel() string   { return color.RedString("ERROR") }
func warningLabel() string { return color.YellowString("AMBIGUOUS") }

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func countLine(out io.Writer, n int, singular, plural string) {
	if n == 1 {
		fmt.Fprintf(out, "1 %s\n", singular)
		return
	}
	fmt.Fprintf(out, "%d %s\n", n, plural)
}
