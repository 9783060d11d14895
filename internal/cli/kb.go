package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var kbClearExisting bool

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the knowledge base index",
}

var kbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Build the knowledge base index from the server's data folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		var resp struct {
			Status         string `json:"status"`
			Message        string `json:"message"`
			DocsLoaded     int    `json:"docs_loaded"`
			DocsChunked    int    `json:"docs_chunked"`
			CollectionSize int    `json:"collection_size"`
		}
		body := map[string]bool{"clear_existing": kbClearExisting}
		if err := client.post("/api/kb/initialize", body, &resp); err != nil {
			return err
		}

		fmt.Println(resp.Message)
		if resp.Status == "success" {
			fmt.Printf("Documents: %d, chunks: %d, index size: %d\n",
				resp.DocsLoaded, resp.DocsChunked, resp.CollectionSize)
		}
		return nil
	},
}

var kbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show knowledge base index statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		var stats struct {
			ChunkCount  int `json:"chunk_count"`
			SourceCount int `json:"source_document_count"`
		}
		if err := client.get("/api/kb/info", &stats); err != nil {
			return err
		}

		fmt.Printf("Chunks indexed: %d\n", stats.ChunkCount)
		fmt.Printf("Source documents: %d\n", stats.SourceCount)
		return nil
	},
}

func init() {
	kbInitCmd.Flags().BoolVar(&kbClearExisting, "clear", false, "clear the existing index before building")
	kbCmd.AddCommand(kbInitCmd)
	kbCmd.AddCommand(kbInfoCmd)
	rootCmd.AddCommand(kbCmd)
}
