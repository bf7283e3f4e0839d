package study

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
	"github.com/TheRealJensJK/Studyfront-backend/pkg/utils"
)

// SubmitResponse runs the full submission pipeline: duplicate guard, study
// lookup, validation against the question set, completion token assignment
// and the atomic insert. The guard check and the insert are not isolated
// against each other, two concurrent submissions of the same visitor can
// both get through; this window is accepted.
func SubmitResponse(req SubmissionRequest, completionMarker string, now time.Time) (studyTypes.ResponseRecord, error) {
	record := studyTypes.ResponseRecord{}

	studyID, err := ParseSubmissionTarget(req)
	if err != nil {
		return record, err
	}

	participated, err := HasParticipated(studyID, req.VisitorID, completionMarker)
	if err != nil {
		return record, fmt.Errorf("failed to check prior participation: %w", err)
	}
	if participated {
		return record, ErrAlreadyParticipated
	}

	studyDef, err := studyDBService.GetStudyByID(studyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return record, ErrStudyNotFound
		}
		return record, fmt.Errorf("failed to fetch study: %w", err)
	}

	record, err = ValidateSubmission(studyDef, req, now)
	if err != nil {
		return record, err
	}

	token, err := utils.GenerateUniqueTokenString()
	if err != nil {
		return record, fmt.Errorf("failed to generate completion token: %w", err)
	}
	record.CompletionToken = token

	saved, err := studyDBService.AddResponseRecord(record)
	if err != nil {
		return record, fmt.Errorf("failed to save response record: %w", err)
	}
	return saved, nil
}
