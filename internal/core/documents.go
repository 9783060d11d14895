package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Document is a named text blob with optional page boundaries. Pages are
// separated by form feeds in the source file; a file without form feeds is
// a single page.
type Document struct {
	Name  string
	Pages []string
}

// NewDocument builds a single-page document from raw text.
func NewDocument(name, text string) Document {
	return Document{Name: name, Pages: splitPages(text)}
}

func splitPages(text string) []string {
	if text == "" {
		return nil
	}
	if !strings.Contains(text, "\f") {
		return []string{text}
	}
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

// LoadDocumentsFromFolder reads every .txt and .md file in the folder.
// Files that cannot be read are logged and skipped rather than failing
// the whole load.
func LoadDocumentsFromFolder(folder string) ([]Document, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read data folder %s: %w", folder, err)
	}

	var documents []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(folder, entry.Name()))
		if err != nil {
			log.Printf("Error loading document %s: %v. Skipping.", entry.Name(), err)
			continue
		}
		doc := NewDocument(entry.Name(), string(data))
		if len(doc.Pages) == 0 {
			continue
		}
		documents = append(documents, doc)
		log.Printf("Loaded %d pages from %s", len(doc.Pages), entry.Name())
	}
	return documents, nil
}
