package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

var (
	searchCopy    string
	searchLimit   int
	searchWindow  int
	searchPerPage int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge index",
	Long: `Queries the knowledge index for annotations and anchored spans.
Ranking is owned by the index; results come back scored and ordered.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCopy, "copy", "", "restrict results to one document copy")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().IntVar(&searchWindow, "window", 1, "result window to display")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 5, "results per window")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		CopyID: searchCopy,
		Limit:  searchLimit,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	perPage := searchPerPage
	if perPage < 1 {
		perPage = 1
	}
	window := domain.Paginate(results, searchWindow, perPage)

	cmd.Printf("Results (window %d of %d):\n", window.PageIndex, window.TotalPages)
	cmd.Println()
	offset := (window.PageIndex - 1) * perPage
	for i := range window.Slice {
		r := &window.Slice[i]
		cmd.Printf("  [%d] p.%d %s (%.2f)\n", offset+i+1, r.Page, r.Kind, r.Score)
		if r.Excerpt != "" {
			cmd.Printf("      %s\n", r.Excerpt)
		}
		cmd.Println()
	}

	return nil
}
