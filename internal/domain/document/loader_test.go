package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor map[string]*Document

func (f fakeExtractor) Extract(_ context.Context, path string) (*Document, error) {
	doc, ok := f[path]
	if !ok {
		return nil, fmt.Errorf("PDF file not found: %s", path)
	}
	return doc, nil
}

func TestLoader_Load(t *testing.T) {
	store := NewStore()
	loader := NewLoader(fakeExtractor{
		"a.pdf": {Path: "a.pdf", Pages: []string{"Alpha text."}},
	}, store)

	doc, err := loader.Load(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.Path)

	text, ok := store.Get("a.pdf")
	require.True(t, ok)
	assert.Equal(t, "\n--- Page 1 ---\nAlpha text.", text)

	_, err = loader.Load(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestLoader_LoadManyContinuesPastFailures(t *testing.T) {
	store := NewStore()
	loader := NewLoader(fakeExtractor{
		"a.pdf": {Pages: []string{"A"}},
		"b.pdf": {Pages: []string{"B"}},
	}, store)

	batch, err := loader.LoadMany(context.Background(), []string{"a.pdf", "missing.pdf", "b.pdf"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.pdf", "b.pdf"}, batch.Loaded)
	assert.Contains(t, batch.Combined, "=== a.pdf ===")
	assert.Contains(t, batch.Combined, "Error: PDF file not found: missing.pdf")
	assert.Equal(t, 2, store.Len())

	out := FormatBatch(batch)
	assert.True(t, strings.HasPrefix(out, "Successfully read 2 PDF files:\na.pdf, b.pdf\n\nCombined text:\n"))
}

func TestLoader_LoadManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(fakeExtractor{}, NewStore()).LoadMany(ctx, []string{"a.pdf"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFormatRead_Preview(t *testing.T) {
	long := strings.Repeat("x", SinglePreviewChars+10)
	out := FormatRead("big.pdf", long)
	assert.True(t, strings.HasSuffix(out, strings.Repeat("x", SinglePreviewChars)+"..."))

	short := FormatRead("small.pdf", "tiny")
	assert.True(t, strings.HasSuffix(short, "Extracted text:\ntiny"))
}

func TestFormatLoaded(t *testing.T) {
	assert.Equal(t, "No PDF documents are currently loaded.", FormatLoaded(nil))
	out := FormatLoaded([]Entry{{Path: "a.pdf", Text: "hello"}})
	assert.Equal(t, "Loaded PDF documents:\n- a.pdf (5 characters)\n", out)
}

func TestFormatInfo_SkipsEmptyFields(t *testing.T) {
	out := FormatInfo("a.pdf", Info{Pages: 3, Size: 1024, Title: "Report"})
	assert.Contains(t, out, "Pages: 3")
	assert.Contains(t, out, "Title: Report")
	assert.NotContains(t, out, "Author")
}
