package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the knowledge base directly",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		client := newAPIClient(serverURL)

		var resp struct {
			Query        string `json:"query"`
			ResultsCount int    `json:"results_count"`
			Results      []struct {
				Source     string `json:"source"`
				Page       int    `json:"page"`
				Similarity string `json:"similarity"`
				Excerpt    string `json:"excerpt"`
			} `json:"results"`
		}
		if err := client.post("/api/kb/search", map[string]string{"query": query}, &resp); err != nil {
			return err
		}

		if resp.ResultsCount == 0 {
			fmt.Println("No results found.")
			return nil
		}

		heading := color.New(color.FgCyan, color.Bold).SprintFunc()
		for i, result := range resp.Results {
			fmt.Printf("%s %s (Page %d) %s\n",
				heading(fmt.Sprintf("[%d]", i+1)), result.Source, result.Page, result.Similarity)
			fmt.Printf("    %s\n", result.Excerpt)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
