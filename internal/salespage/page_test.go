package salespage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesPage(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	require.NoError(t, err)

	page, err := gen.Generate(sampleRecord())
	require.NoError(t, err)

	assert.NotEmpty(t, page.ID)
	assert.Equal(t, "generic_1748779200000", page.ProductID)

	content, err := os.ReadFile(page.Path)
	require.NoError(t, err)

	html := string(content)
	assert.Contains(t, html, "Cordless Drill")
	assert.Contains(t, html, "89.99 USD")
	assert.Contains(t, html, "https://shop.example.com/p/1")
	assert.Contains(t, html, "30-Day Money-Back Guarantee")
}

func TestGenerateEscapesMarkup(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	require.NoError(t, err)

	record := sampleRecord()
	record.Title = `<script>alert("x")</script>`

	page, err := gen.Generate(record)
	require.NoError(t, err)

	content, err := os.ReadFile(page.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "<script>alert")
}

func TestGenerateUniqueIDs(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	require.NoError(t, err)

	first, err := gen.Generate(sampleRecord())
	require.NoError(t, err)
	second, err := gen.Generate(sampleRecord())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Path, second.Path)
	assert.True(t, strings.HasSuffix(first.Path, ".html"))
}
