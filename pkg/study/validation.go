package study

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

// SubmissionRequest is the untrusted participant payload of a submit call.
// Timestamps arrive as strings and are normalized during validation.
type SubmissionRequest struct {
	StudyID       string                 `json:"studyId"`
	ParticipantID string                 `json:"participantId"`
	VisitorID     string                 `json:"visitorId"`
	StartTime     string                 `json:"startTime,omitempty"`
	EndTime       string                 `json:"endTime,omitempty"`
	Responses     []AnswerSubmission     `json:"responses"`
	Demographics  map[string]interface{} `json:"demographics,omitempty"`
}

type AnswerSubmission struct {
	QuestionID string      `json:"questionId"`
	Response   interface{} `json:"response"`
	Timestamp  string      `json:"timestamp,omitempty"`
}

// ParseSubmissionTarget runs the checks that are possible before the study
// is loaded: required fields and the study id format.
func ParseSubmissionTarget(req SubmissionRequest) (primitive.ObjectID, error) {
	if req.StudyID == "" || req.ParticipantID == "" || req.VisitorID == "" || len(req.Responses) == 0 {
		return primitive.NilObjectID, newValidationError("missing required fields")
	}

	studyID, err := primitive.ObjectIDFromHex(req.StudyID)
	if err != nil {
		return primitive.NilObjectID, newValidationError("invalid study ID format")
	}
	return studyID, nil
}

// ValidateSubmission checks the candidate submission against the study's
// current question set and returns the normalized record ready for insert.
// It short-circuits on the first failure. The record's completion token is
// not set here.
func ValidateSubmission(study studyTypes.Study, req SubmissionRequest, now time.Time) (studyTypes.ResponseRecord, error) {
	record := studyTypes.ResponseRecord{}

	startTime, err := parseTimestampOrDefault(req.StartTime, now)
	if err != nil {
		return record, newValidationError("invalid timestamp format")
	}
	endTime, err := parseTimestampOrDefault(req.EndTime, now)
	if err != nil {
		return record, newValidationError("invalid timestamp format")
	}
	if endTime.Before(startTime) {
		return record, newValidationError("end time cannot be before start time")
	}

	questionsByID := map[string]studyTypes.Question{}
	for _, question := range study.Questions {
		questionsByID[question.ID.Hex()] = question
	}

	answers := make([]studyTypes.Answer, 0, len(req.Responses))
	for _, resp := range req.Responses {
		if resp.QuestionID == "" || resp.Response == nil {
			return record, newValidationError("each response must include questionId and response")
		}

		questionID, err := primitive.ObjectIDFromHex(resp.QuestionID)
		if err != nil {
			return record, newValidationError("invalid question ID format: %s", resp.QuestionID)
		}

		question, ok := questionsByID[questionID.Hex()]
		if !ok {
			return record, newValidationError("question ID %s does not belong to this study", resp.QuestionID)
		}

		if !studyTypes.HandlerForQuestionType(question.Type).ValidAnswer(resp.Response) {
			return record, newValidationError("invalid response type for question %s", resp.QuestionID)
		}

		timestamp, err := parseTimestampOrDefault(resp.Timestamp, now)
		if err != nil {
			return record, newValidationError("invalid timestamp for question %s", resp.QuestionID)
		}

		answers = append(answers, studyTypes.Answer{
			QuestionID: questionID,
			Value:      normalizeAnswerValue(resp.Response),
			Timestamp:  timestamp,
		})
	}

	record = studyTypes.ResponseRecord{
		StudyID:       study.ID,
		ParticipantID: strings.TrimSpace(req.ParticipantID),
		VisitorID:     strings.TrimSpace(req.VisitorID),
		StartTime:     startTime,
		EndTime:       endTime,
		Demographics:  req.Demographics,
		Answers:       answers,
		SubmittedAt:   now.UTC(),
	}
	return record, nil
}

// all stored instants are UTC
func parseTimestampOrDefault(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, err
		}
	}
	return t.UTC(), nil
}

func normalizeAnswerValue(value interface{}) interface{} {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}
