package service

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// QuestionTokens lower-cases the question and splits it on runs of non-word
// characters.
func QuestionTokens(question string) []string {
	parts := nonWord.Split(strings.ToLower(question), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// ScoreChunk counts the tokens that occur anywhere in the lower-cased chunk.
// Matching is by substring, so "art" scores against "party".
func ScoreChunk(chunk string, tokens []string) int {
	lower := strings.ToLower(chunk)
	score := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			score++
		}
	}
	return score
}

// SelectChunk returns the highest scoring chunk for question. Ties and the
// all-zero case resolve to the earliest chunk.
func SelectChunk(chunks []string, question string) string {
	if len(chunks) == 0 {
		return ""
	}
	tokens := QuestionTokens(question)
	best, bestScore := 0, -1
	for i, chunk := range chunks {
		if score := ScoreChunk(chunk, tokens); score > bestScore {
			best, bestScore = i, score
		}
	}
	return chunks[best]
}

// ContextSelector decides which part of a document is sent to the model for
// a question: the whole text when it fits in one chunk, otherwise the best
// matching chunk.
type ContextSelector struct {
	chunkWords int
}

func NewContextSelector(chunkWords int) *ContextSelector {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}
	return &ContextSelector{chunkWords: chunkWords}
}

// Prepare chunks document once so that Select can be called per question.
func (s *ContextSelector) Prepare(document string) *PreparedDocument {
	chunks := ChunkWords(document, s.chunkWords)
	return &PreparedDocument{text: document, chunks: chunks}
}

func (s *ContextSelector) Select(document, question string) string {
	return s.Prepare(document).ContextFor(question)
}

type PreparedDocument struct {
	text   string
	chunks []string
}

func (d *PreparedDocument) Chunked() bool {
	return len(d.chunks) > 1
}

func (d *PreparedDocument) ContextFor(question string) string {
	if !d.Chunked() {
		return d.text
	}
	return SelectChunk(d.chunks, question)
}
