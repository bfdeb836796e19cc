package document

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxAnswerFragments caps the fragments returned by Answer.
const MaxAnswerFragments = 5

// Fragment is a period-delimited piece of text and its keyword hit count.
type Fragment struct {
	Text    string
	Matches int
}

// Keywords extracts the lowercase question words longer than three characters.
func Keywords(question string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		if utf8.RuneCountInString(word) > 3 {
			words = append(words, word)
		}
	}
	return words
}

// RankFragments splits text on '.', counts keyword substring hits per fragment
// and returns up to limit fragments ordered by hits, ties in text order.
func RankFragments(text string, keywords []string, limit int) []Fragment {
	if len(keywords) == 0 {
		return nil
	}
	var ranked []Fragment
	for _, sentence := range strings.Split(text, ".") {
		lower := strings.ToLower(sentence)
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches > 0 {
			ranked = append(ranked, Fragment{Text: strings.TrimSpace(sentence), Matches: matches})
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Matches > ranked[b].Matches
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Answer runs the keyword Q&A over the store and renders the reply.
func (s *Store) Answer(question, path string) (string, error) {
	text, err := s.Corpus(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	fragments := RankFragments(text, Keywords(question), MaxAnswerFragments)
	if len(fragments) == 0 {
		return fmt.Sprintf("I could not find specific information about '%s' in the PDF content. The document contains %d characters of text.",
			question, utf8.RuneCountInString(text)), nil
	}

	lines := make([]string, 0, len(fragments))
	for _, f := range fragments {
		lines = append(lines, f.Text)
	}
	return "Based on the PDF content, here's what I found:\n\n" + strings.Join(lines, "\n"), nil
}
