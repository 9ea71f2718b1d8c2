package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/types"
)

// ProgressHandler receives every answer record as soon as it is produced.
type ProgressHandler func(progress types.BulkQAProgress)

// BulkQAService answers every question of a questions document against one
// content document. Questions are processed strictly one after another; the
// pacing of model calls is left to the AIService it wraps.
type BulkQAService struct {
	ai       AIService
	selector *ContextSelector
}

func NewBulkQAService(ai AIService, selector *ContextSelector) *BulkQAService {
	return &BulkQAService{
		ai:       ai,
		selector: selector,
	}
}

// Run extracts the questions from questionsText and answers each against
// document. It always returns one record per question, in question order.
// A failed model call yields types.AnswerErrorPlaceholder for that question
// only. Once ctx is done the remaining questions are not sent to the model
// and get the placeholder as well.
func (s *BulkQAService) Run(ctx context.Context, document, questionsText string, onProgress ProgressHandler) types.BulkQAResponse {
	set := ExtractQuestions(questionsText)
	if set.Segmentation.Fallback {
		log.Warn().Int("chars", len(questionsText)).Msg("No question markers found, treating whole text as one question")
	}
	resp := types.BulkQAResponse{
		Answers:      s.Answer(ctx, document, set.Questions, onProgress),
		Segmentation: set.Segmentation,
	}
	failed := resp.FailedCount()
	event := log.Info()
	if failed > 0 {
		event = log.Warn()
	}
	event.Int("questions", len(resp.Answers)).Int("failed", failed).Msg("Bulk QA finished")
	return resp
}

func (s *BulkQAService) Answer(ctx context.Context, document string, questions []string, onProgress ProgressHandler) []types.AnswerRecord {
	prepared := s.selector.Prepare(document)
	answers := make([]types.AnswerRecord, 0, len(questions))

	for i, question := range questions {
		record := s.answerOne(ctx, prepared, question)
		answers = append(answers, record)

		if onProgress != nil {
			onProgress(types.BulkQAProgress{
				Index:    i,
				Total:    len(questions),
				Question: record.Question,
				Answer:   record.Answer,
			})
		}
	}
	return answers
}

func (s *BulkQAService) answerOne(ctx context.Context, prepared *PreparedDocument, question string) types.AnswerRecord {
	if ctx.Err() != nil {
		return types.AnswerRecord{Question: question, Answer: types.AnswerErrorPlaceholder, Failed: true}
	}

	answer, err := s.ai.Answer(ctx, question, prepared.ContextFor(question))
	if err != nil {
		log.Error().Err(err).Str("question", question).Msg("Error processing question")
		return types.AnswerRecord{Question: question, Answer: types.AnswerErrorPlaceholder, Failed: true}
	}
	if strings.TrimSpace(answer) == "" {
		answer = types.AnswerNotFound
	}
	return types.AnswerRecord{Question: question, Answer: answer}
}
