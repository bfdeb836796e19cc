package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_TextAndPageRange(t *testing.T) {
	doc := Document{Path: "a.pdf", Pages: []string{"one", "two", "three"}}
	assert.Equal(t, "\n--- Page 1 ---\none\n--- Page 2 ---\ntwo\n--- Page 3 ---\nthree", doc.Text())

	middle, err := doc.PageRange(2, 2)
	require.NoError(t, err)
	assert.Equal(t, "\n--- Page 2 ---\ntwo", middle)

	tail, err := doc.PageRange(2, 0)
	require.NoError(t, err)
	assert.Contains(t, tail, "--- Page 3 ---")

	_, err = doc.PageRange(4, 5)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"what", "revenue", "2024?"}, Keywords("What was the revenue in 2024?"))
	assert.Empty(t, Keywords("is it ok"))
}

func TestRankFragments(t *testing.T) {
	text := "Revenue grew in spring. Costs were flat. Revenue and profit grew in autumn. Profit fell once"
	ranked := RankFragments(text, []string{"revenue", "profit"}, 5)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Revenue and profit grew in autumn", ranked[0].Text)
	assert.Equal(t, 2, ranked[0].Matches)
	// ties keep text order
	assert.Equal(t, "Revenue grew in spring", ranked[1].Text)
	assert.Equal(t, "Profit fell once", ranked[2].Text)

	assert.Len(t, RankFragments(text, []string{"revenue", "profit"}, 1), 1)
	assert.Nil(t, RankFragments(text, nil, 5))
}

func TestStore_Answer(t *testing.T) {
	s := NewStore()
	_, err := s.Answer("anything", "")
	require.ErrorIs(t, err, ErrNoDocuments)

	s.Put("report.pdf", "The quarterly revenue reached ten million. Staff count was stable. Offices moved downtown")
	s.Put("notes.pdf", "Lunch is at noon")

	answer, err := s.Answer("What was the quarterly revenue?", "report.pdf")
	require.NoError(t, err)
	assert.Contains(t, answer, "Based on the PDF content")
	assert.Contains(t, answer, "The quarterly revenue reached ten million")

	all, err := s.Answer("When is lunch served?", "")
	require.NoError(t, err)
	assert.Contains(t, all, "Lunch is at noon")

	missing, err := s.Answer("Describe the zebra habitat", "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "I could not find specific information about 'Describe the zebra habitat' in the PDF content. The document contains 89 characters of text.", missing)
}

func TestStore_AnswerTopFiveCap(t *testing.T) {
	s := NewStore()
	s.Put("x.pdf", "apple one. apple two. apple three. apple four. apple five. apple six. apple questions answered")
	answer, err := s.Answer("apple questions", "x.pdf")
	require.NoError(t, err)
	assert.NotContains(t, answer, "apple six")
	assert.Contains(t, answer, "found:\n\napple questions answered")
}

func TestStore_PutKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Put("b.pdf", "bee")
	s.Put("a.pdf", "ay")
	s.Put("b.pdf", "bee again")

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b.pdf", entries[0].Path)
	assert.Equal(t, "bee again", entries[0].Text)
	assert.Equal(t, 2, s.Len())
}

func TestStore_AnswerEmptyText(t *testing.T) {
	s := NewStore()
	s.Put("blank.pdf", "   ")
	_, err := s.Answer("anything here", "blank.pdf")
	assert.ErrorIs(t, err, ErrEmptyText)
}
