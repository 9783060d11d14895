package samples

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charanhu/support-agent/internal/core"
)

func TestWriteAll(t *testing.T) {
	folder := t.TempDir()

	written, err := WriteAll(folder)
	require.NoError(t, err)
	require.Len(t, written, 3)
	assert.Contains(t, written, filepath.Join(folder, "faq.txt"))

	// The written files load as multi-page documents.
	docs, err := core.LoadDocumentsFromFolder(folder)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byName := make(map[string]core.Document)
	for _, doc := range docs {
		byName[doc.Name] = doc
	}
	assert.Contains(t, byName["faq.txt"].Pages[0], "Forgot Password")
	assert.Greater(t, len(byName["troubleshooting.txt"].Pages), 1)
	assert.Greater(t, len(byName["policies.txt"].Pages), 1)
}

func TestWriteAllCreatesFolder(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "nested", "data")
	_, err := WriteAll(folder)
	require.NoError(t, err)
}
