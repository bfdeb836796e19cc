package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/janhq/jan-assistant/internal/domain/document"
)

var (
	// ErrNotPDF is returned for paths without a .pdf extension.
	ErrNotPDF = errors.New("file is not a PDF")
	// ErrFileNotFound is returned when the path does not exist.
	ErrFileNotFound = errors.New("PDF file not found")
)

// Extractor reads text and metadata from PDF files on disk.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var _ document.Extractor = (*Extractor)(nil)

// Extract returns the plain text of every page. Pages that fail to decode are
// kept as empty strings so page numbers stay aligned.
func (e *Extractor) Extract(ctx context.Context, path string) (*document.Document, error) {
	stat, err := checkPath(path)
	if err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	info := document.Info{Pages: total, Size: stat.Size()}
	if meta := r.Trailer().Key("Info"); !meta.IsNull() {
		info.Title = meta.Key("Title").Text()
		info.Author = meta.Key("Author").Text()
		info.Subject = meta.Key("Subject").Text()
		info.Creator = meta.Key("Creator").Text()
		info.Producer = meta.Key("Producer").Text()
	}

	return &document.Document{Path: path, Pages: pages, Info: info}, nil
}

func checkPath(path string) (os.FileInfo, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotPDF, path)
	}
	return stat, nil
}
