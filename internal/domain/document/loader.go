package document

import (
	"context"
	"fmt"
	"strings"
)

// Loader extracts documents and keeps their text in a Store for later
// questions.
type Loader struct {
	extractor Extractor
	store     *Store
}

// NewLoader creates a Loader writing into store.
func NewLoader(extractor Extractor, store *Store) *Loader {
	return &Loader{extractor: extractor, store: store}
}

// Store returns the backing store.
func (l *Loader) Store() *Store {
	return l.store
}

// Load extracts path and stores its page-separated text.
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	doc, err := l.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	l.store.Put(path, doc.Text())
	return doc, nil
}

// Inspect extracts path without storing it.
func (l *Loader) Inspect(ctx context.Context, path string) (*Document, error) {
	return l.extractor.Extract(ctx, path)
}

// Batch is the outcome of LoadMany.
type Batch struct {
	Loaded   []string
	Combined string
}

// LoadMany loads every path. A failing file adds an error line to the
// combined text and does not stop the batch; each stored entry carries its
// "=== path ===" header.
func (l *Loader) LoadMany(ctx context.Context, paths []string) (Batch, error) {
	var batch Batch
	var combined strings.Builder
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		doc, err := l.extractor.Extract(ctx, path)
		if err != nil {
			fmt.Fprintf(&combined, "\nError: %s\n", err.Error())
			continue
		}
		text := fmt.Sprintf("\n=== %s ===\n%s", path, doc.Text())
		l.store.Put(path, text)
		combined.WriteString(text)
		batch.Loaded = append(batch.Loaded, path)
	}
	batch.Combined = combined.String()
	return batch, nil
}
