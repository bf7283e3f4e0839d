package study

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

// PrepareQuestions assigns ids to new questions and rejects duplicates.
// Existing ids are kept untouched so stored answers stay addressable.
func PrepareQuestions(questions []studyTypes.Question) ([]studyTypes.Question, error) {
	seen := map[string]bool{}
	prepared := make([]studyTypes.Question, len(questions))
	for i, question := range questions {
		if question.ID.IsZero() {
			question.ID = primitive.NewObjectID()
		}
		id := question.ID.Hex()
		if seen[id] {
			return nil, newValidationError("duplicate question id: %s", id)
		}
		seen[id] = true
		prepared[i] = question
	}
	return prepared, nil
}
