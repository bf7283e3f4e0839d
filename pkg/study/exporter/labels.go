package exporter

import (
	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

const (
	FALLBACK_QUESTION_LABEL = "Untitled Question"
	FALLBACK_FILE_LABEL     = "File"
)

// ResolveQuestionLabel picks the display label from the question
// configuration, in order of preference: title, question text, label.
func ResolveQuestionLabel(question studyTypes.Question) string {
	if question.Data.Title != "" {
		return question.Data.Title
	}
	if question.Data.QuestionText != "" {
		return question.Data.QuestionText
	}
	if question.Data.Label != "" {
		return question.Data.Label
	}
	return FALLBACK_QUESTION_LABEL
}

// ResolveFileLabel picks the display label of an attached file: stored name,
// then original upload name.
func ResolveFileLabel(file studyTypes.FileRef) string {
	if file.Name != "" {
		return file.Name
	}
	if file.OriginalName != "" {
		return file.OriginalName
	}
	return FALLBACK_FILE_LABEL
}
