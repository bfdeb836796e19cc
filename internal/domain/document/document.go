package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrNoDocuments is returned by Answer when nothing has been loaded.
	ErrNoDocuments = errors.New("no PDF files have been loaded")
	// ErrEmptyText is returned when the loaded documents contain no text.
	ErrEmptyText = errors.New("no text content found in the PDF(s)")
	// ErrPageRange is returned for page ranges outside the document.
	ErrPageRange = errors.New("page range out of bounds")
)

// Info is document metadata reported by the extractor.
type Info struct {
	Pages    int
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Size     int64
}

// Document is the extracted text of one file, page by page.
type Document struct {
	Path  string
	Pages []string
	Info  Info
}

// Text joins the pages with "--- Page N ---" separators.
func (d Document) Text() string {
	return joinPages(d.Pages, 1)
}

// PageRange joins pages start..end (1-based, inclusive). end <= 0 means the
// last page.
func (d Document) PageRange(start, end int) (string, error) {
	if start <= 0 {
		start = 1
	}
	if end <= 0 || end > len(d.Pages) {
		end = len(d.Pages)
	}
	if start > end || start > len(d.Pages) {
		return "", fmt.Errorf("%w: pages %d-%d of %d", ErrPageRange, start, end, len(d.Pages))
	}
	return joinPages(d.Pages[start-1:end], start), nil
}

func joinPages(pages []string, first int) string {
	var sb strings.Builder
	for i, page := range pages {
		fmt.Fprintf(&sb, "\n--- Page %d ---\n", first+i)
		sb.WriteString(page)
	}
	return sb.String()
}

// Extractor pulls text out of a file.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Document, error)
}

// Entry is one loaded document and its stored text.
type Entry struct {
	Path string
	Text string
}

// Store keeps extracted text keyed by path, in load order.
type Store struct {
	mu    sync.RWMutex
	order []string
	texts map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{texts: make(map[string]string)}
}

// Put stores text for path, replacing earlier content.
func (s *Store) Put(path, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.texts[path]; !exists {
		s.order = append(s.order, path)
	}
	s.texts[path] = text
}

// Get returns the text stored for path.
func (s *Store) Get(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[path]
	return text, ok
}

// Entries lists stored documents in load order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.order))
	for _, path := range s.order {
		out = append(out, Entry{Path: path, Text: s.texts[path]})
	}
	return out
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Corpus returns the text for path when it is loaded, otherwise all stored
// text joined by blank lines.
func (s *Store) Corpus(path string) (string, error) {
	if s.Len() == 0 {
		return "", ErrNoDocuments
	}
	if path != "" {
		if text, ok := s.Get(path); ok {
			return text, nil
		}
	}
	entries := s.Entries()
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	return strings.Join(texts, "\n\n"), nil
}
