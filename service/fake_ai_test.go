package service

import (
	"context"
	"sync"
)

// fakeAI records every call and delegates to the optional hooks.
type fakeAI struct {
	mu        sync.Mutex
	summarize func(ctx context.Context, text string) (string, error)
	answer    func(ctx context.Context, question, passage string) (string, error)
	questions []string
	passages  []string
	texts     []string
}

func (f *fakeAI) Summarize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	if f.summarize == nil {
		return "summary", nil
	}
	return f.summarize(ctx, text)
}

func (f *fakeAI) Answer(ctx context.Context, question, passage string) (string, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.passages = append(f.passages, passage)
	f.mu.Unlock()
	if f.answer == nil {
		return "answer to " + question, nil
	}
	return f.answer(ctx, question, passage)
}

func (f *fakeAI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.questions)
}

// textExtractor treats the uploaded bytes as already extracted text.
type textExtractor struct {
	err error
}

func (e textExtractor) ExtractText(content []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return string(content), nil
}
