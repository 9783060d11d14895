package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/charanhu/support-agent/internal/samples"
)

var (
	seedDataFolder string
	seedFromFile   string
)

// seedDocument is the YAML shape accepted by --from.
type seedDocument struct {
	Filename string `yaml:"filename"`
	Content  string `yaml:"content"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write sample knowledge base documents into the data folder",
	Long: `Writes the built-in sample documents (FAQ, troubleshooting guide,
company policies) into the data folder. With --from, writes documents
described in a YAML file instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedFromFile != "" {
			return seedFromYAML(seedFromFile, seedDataFolder)
		}

		written, err := samples.WriteAll(seedDataFolder)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Println("Created:", path)
		}
		fmt.Printf("\nSeeded %d documents. Build the index with: supportctl kb init\n", len(written))
		return nil
	},
}

func seedFromYAML(yamlPath, folder string) error {
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", yamlPath, err)
	}

	var docs []seedDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", yamlPath, err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found in %s", yamlPath)
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create data folder %s: %w", folder, err)
	}
	for _, doc := range docs {
		if doc.Filename == "" {
			return fmt.Errorf("document in %s is missing a filename", yamlPath)
		}
		path := filepath.Join(folder, doc.Filename)
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Println("Created:", path)
	}
	fmt.Printf("\nSeeded %d documents. Build the index with: supportctl kb init\n", len(docs))
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedDataFolder, "data", "./data", "data folder to write documents into")
	seedCmd.Flags().StringVar(&seedFromFile, "from", "", "YAML file describing custom documents to write")
	rootCmd.AddCommand(seedCmd)
}
