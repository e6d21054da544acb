package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var forceRefresh bool

func init() {
	syncCmd.Flags().BoolVar(
		&forceRefresh, "force", false,
		"scrape every platform even when the cached copy is still fresh",
	)
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync <identifier>...",
	Short: "Refreshes statistics for the given roll numbers or student keys.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, db, err := openService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer db.Close()

		result, err := service.SyncStatistics(cmd.Context(), args, forceRefresh)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Identifier", "Platform", "Solved", "Rating", "Ranking", "Badges"})

		identifiers := make([]string, 0, len(result.Results))
		for identifier := range result.Results {
			identifiers = append(identifiers, identifier)
		}
		sort.Strings(identifiers)

		for _, identifier := range identifiers {
			platforms := result.Results[identifier]
			if platforms == nil {
				t.AppendRow(table.Row{identifier, "<unresolved>", "", "", "", ""})
				continue
			}
			for _, platform := range sortedKeys(platforms) {
				rec := platforms[platform]
				if rec == nil {
					t.AppendRow(table.Row{identifier, platform, "failed", "", "", ""})
					continue
				}
				t.AppendRow(table.Row{
					identifier, platform,
					rec.ProblemsSolved.Total, rec.Rating, rec.Ranking, len(rec.Badges),
				})
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Printf(
			"batch %s: %d/%d students processed (cached=%v)\n",
			result.BatchId, result.ProcessedCount, result.TotalRequested, result.Cached,
		)
	},
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
