package document

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Preview limits for read results.
const (
	SinglePreviewChars = 1000
	BatchPreviewChars  = 2000
)

func preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}

// FormatRead renders the result of loading one document.
func FormatRead(path, text string) string {
	return fmt.Sprintf("Successfully read PDF: %s\n\nExtracted text:\n%s", path, preview(text, SinglePreviewChars))
}

// FormatBatch renders the result of loading several documents.
func FormatBatch(b Batch) string {
	return fmt.Sprintf("Successfully read %d PDF files:\n%s\n\nCombined text:\n%s",
		len(b.Loaded), strings.Join(b.Loaded, ", "), preview(b.Combined, BatchPreviewChars))
}

// FormatPages renders a page range of one document.
func FormatPages(path string, start, end int, text string) string {
	return fmt.Sprintf("Text from %s (pages %d-%d):\n%s", path, start, end, text)
}

// FormatInfo renders document metadata.
func FormatInfo(path string, info Info) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PDF information for %s:\n", path)
	fmt.Fprintf(&sb, "Pages: %d\n", info.Pages)
	fmt.Fprintf(&sb, "File size: %d bytes\n", info.Size)
	for _, field := range []struct{ label, value string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
	} {
		if field.value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", field.label, field.value)
		}
	}
	return sb.String()
}

// FormatLoaded lists stored documents with their text length.
func FormatLoaded(entries []Entry) string {
	if len(entries) == 0 {
		return "No PDF documents are currently loaded."
	}
	var sb strings.Builder
	sb.WriteString("Loaded PDF documents:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s (%d characters)\n", e.Path, utf8.RuneCountInString(e.Text))
	}
	return sb.String()
}
