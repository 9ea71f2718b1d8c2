package service

import (
	"regexp"
	"strings"

	"github.com/tieubaoca/docqa-be/types"
)

// questionMarker matches "12." or a leading "Q", "Question" or "q" with
// optional digits that is not the start of an ordinary word ("Q1:", "Q. ",
// "q3)", "Question 2:"). "Quality" and "Questions" are not markers.
var questionMarker = regexp.MustCompile(`(?i)^(?:\d+\.|q(?:uestion)?\s*\d*(?:[^a-z]|$))`)

// ExtractQuestions groups the lines of a questions document into questions.
// A marker line opens a new question and any following unmarked lines are
// appended to it. Lines before the first marker form their own question.
// When no line carries a marker the whole text becomes one question and the
// returned Segmentation has Fallback set.
func ExtractQuestions(text string) types.QuestionSet {
	var (
		questions []string
		current   string
		markers   int
	)

	flush := func() {
		if current != "" {
			questions = append(questions, current)
		}
		current = ""
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if questionMarker.MatchString(line) {
			markers++
			flush()
			current = line
			continue
		}
		if current == "" {
			current = line
		} else {
			current += " " + line
		}
	}
	flush()

	return types.QuestionSet{
		Questions: questions,
		Segmentation: types.Segmentation{
			Markers:  markers,
			Fallback: markers == 0 && len(questions) > 0,
		},
	}
}
