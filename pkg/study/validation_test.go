package study

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func testStudy() (studyTypes.Study, studyTypes.Question, studyTypes.Question) {
	textQuestion := studyTypes.Question{
		ID:   primitive.NewObjectID(),
		Type: studyTypes.QUESTION_TYPE_TEXT,
		Data: studyTypes.QuestionData{Title: "How did you feel?"},
	}
	choiceQuestion := studyTypes.Question{
		ID:   primitive.NewObjectID(),
		Type: studyTypes.QUESTION_TYPE_MULTI_CHOICE,
		Data: studyTypes.QuestionData{
			Title:   "Pick all that apply",
			Options: []studyTypes.ChoiceOption{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
		},
	}
	return studyTypes.Study{
		ID:        primitive.NewObjectID(),
		Title:     "Test study",
		Questions: []studyTypes.Question{textQuestion, choiceQuestion},
	}, textQuestion, choiceQuestion
}

func TestParseSubmissionTarget(t *testing.T) {
	validID := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		req     SubmissionRequest
		wantErr string
	}{
		{
			name:    "missing study id",
			req:     SubmissionRequest{ParticipantID: "p1", VisitorID: "v1", Responses: []AnswerSubmission{{QuestionID: "q"}}},
			wantErr: "missing required fields",
		},
		{
			name:    "missing participant id",
			req:     SubmissionRequest{StudyID: validID, VisitorID: "v1", Responses: []AnswerSubmission{{QuestionID: "q"}}},
			wantErr: "missing required fields",
		},
		{
			name:    "missing visitor id",
			req:     SubmissionRequest{StudyID: validID, ParticipantID: "p1", Responses: []AnswerSubmission{{QuestionID: "q"}}},
			wantErr: "missing required fields",
		},
		{
			name:    "empty responses",
			req:     SubmissionRequest{StudyID: validID, ParticipantID: "p1", VisitorID: "v1"},
			wantErr: "missing required fields",
		},
		{
			name:    "malformed study id",
			req:     SubmissionRequest{StudyID: "not-an-id", ParticipantID: "p1", VisitorID: "v1", Responses: []AnswerSubmission{{QuestionID: "q"}}},
			wantErr: "invalid study ID format",
		},
		{
			name: "valid",
			req:  SubmissionRequest{StudyID: validID, ParticipantID: "p1", VisitorID: "v1", Responses: []AnswerSubmission{{QuestionID: "q"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSubmissionTarget(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Message != tt.wantErr {
				t.Errorf("got %q, want %q", vErr.Message, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmissionHappyPath(t *testing.T) {
	studyDef, textQ, choiceQ := testStudy()

	req := SubmissionRequest{
		StudyID:       studyDef.ID.Hex(),
		ParticipantID: " p1 ",
		VisitorID:     "v1",
		StartTime:     "2024-05-10T11:00:00Z",
		EndTime:       "2024-05-10T11:05:00Z",
		Responses: []AnswerSubmission{
			{QuestionID: textQ.ID.Hex(), Response: "  hello  "},
			{QuestionID: choiceQ.ID.Hex(), Response: []interface{}{"a", "b"}, Timestamp: "2024-05-10T11:04:30Z"},
		},
		Demographics: map[string]interface{}{"age": 30.0},
	}

	record, err := ValidateSubmission(studyDef, req, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.StudyID != studyDef.ID {
		t.Errorf("unexpected study id: %s", record.StudyID.Hex())
	}
	if record.ParticipantID != "p1" {
		t.Errorf("participant id not trimmed: %q", record.ParticipantID)
	}
	if len(record.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(record.Answers))
	}
	if record.Answers[0].Value != "hello" {
		t.Errorf("string answer not trimmed: %q", record.Answers[0].Value)
	}
	// answer without timestamp defaults to submission time
	if !record.Answers[0].Timestamp.Equal(testNow) {
		t.Errorf("expected default timestamp %v, got %v", testNow, record.Answers[0].Timestamp)
	}
	if !record.Answers[1].Timestamp.Equal(time.Date(2024, 5, 10, 11, 4, 30, 0, time.UTC)) {
		t.Errorf("unexpected answer timestamp: %v", record.Answers[1].Timestamp)
	}
	if record.EndTime.Sub(record.StartTime) != 5*time.Minute {
		t.Errorf("unexpected duration: %v", record.EndTime.Sub(record.StartTime))
	}
	if record.CompletionToken != "" {
		t.Errorf("completion token must not be set by validation")
	}
}

func TestValidateSubmissionTimestamps(t *testing.T) {
	studyDef, textQ, _ := testStudy()
	answer := []AnswerSubmission{{QuestionID: textQ.ID.Hex(), Response: "x"}}

	tests := []struct {
		name    string
		req     SubmissionRequest
		wantErr string
	}{
		{
			name:    "garbage start time",
			req:     SubmissionRequest{StartTime: "yesterday", Responses: answer},
			wantErr: "invalid timestamp format",
		},
		{
			name:    "garbage end time",
			req:     SubmissionRequest{EndTime: "later", Responses: answer},
			wantErr: "invalid timestamp format",
		},
		{
			name: "end before start",
			req: SubmissionRequest{
				StartTime: "2024-05-10T11:05:00Z",
				EndTime:   "2024-05-10T11:00:00Z",
				Responses: answer,
			},
			wantErr: "end time cannot be before start time",
		},
		{
			name: "missing timestamps default to now",
			req:  SubmissionRequest{Responses: answer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.StudyID = studyDef.ID.Hex()
			tt.req.ParticipantID = "p1"
			tt.req.VisitorID = "v1"

			record, err := ValidateSubmission(studyDef, tt.req, testNow)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !record.StartTime.Equal(testNow) || !record.EndTime.Equal(testNow) {
					t.Errorf("expected timestamps to default to submission time")
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Message != tt.wantErr {
				t.Errorf("got %q, want %q", vErr.Message, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmissionAnswers(t *testing.T) {
	studyDef, textQ, choiceQ := testStudy()
	unknownQuestionID := primitive.NewObjectID().Hex()

	tests := []struct {
		name      string
		responses []AnswerSubmission
		wantErr   string
	}{
		{
			name:      "missing question id",
			responses: []AnswerSubmission{{Response: "x"}},
			wantErr:   "each response must include questionId and response",
		},
		{
			name:      "missing response value",
			responses: []AnswerSubmission{{QuestionID: textQ.ID.Hex()}},
			wantErr:   "each response must include questionId and response",
		},
		{
			name:      "malformed question id",
			responses: []AnswerSubmission{{QuestionID: "not-a-real-id", Response: "x"}},
			wantErr:   "invalid question ID format: not-a-real-id",
		},
		{
			name:      "question from another study",
			responses: []AnswerSubmission{{QuestionID: unknownQuestionID, Response: "x"}},
			wantErr:   "question ID " + unknownQuestionID + " does not belong to this study",
		},
		{
			name:      "type mismatch",
			responses: []AnswerSubmission{{QuestionID: textQ.ID.Hex(), Response: 42.0}},
			wantErr:   "invalid response type for question " + textQ.ID.Hex(),
		},
		{
			name:      "choice list with non strings",
			responses: []AnswerSubmission{{QuestionID: choiceQ.ID.Hex(), Response: []interface{}{"a", 1.0}}},
			wantErr:   "invalid response type for question " + choiceQ.ID.Hex(),
		},
		{
			name:      "bad answer timestamp",
			responses: []AnswerSubmission{{QuestionID: textQ.ID.Hex(), Response: "x", Timestamp: "not-a-time"}},
			wantErr:   "invalid timestamp for question " + textQ.ID.Hex(),
		},
		{
			name: "first failure wins",
			responses: []AnswerSubmission{
				{QuestionID: "broken", Response: "x"},
				{QuestionID: unknownQuestionID, Response: "x"},
			},
			wantErr: "invalid question ID format: broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SubmissionRequest{
				StudyID:       studyDef.ID.Hex(),
				ParticipantID: "p1",
				VisitorID:     "v1",
				Responses:     tt.responses,
			}
			_, err := ValidateSubmission(studyDef, req, testNow)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Message != tt.wantErr {
				t.Errorf("got %q, want %q", vErr.Message, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmissionPermissiveTypes(t *testing.T) {
	matrixQuestion := studyTypes.Question{
		ID:   primitive.NewObjectID(),
		Type: studyTypes.QUESTION_TYPE_MATRIX,
		Data: studyTypes.QuestionData{Title: "Matrix"},
	}
	legacyQuestion := studyTypes.Question{
		ID:   primitive.NewObjectID(),
		Type: "legacySlider",
	}
	studyDef := studyTypes.Study{
		ID:        primitive.NewObjectID(),
		Questions: []studyTypes.Question{matrixQuestion, legacyQuestion},
	}

	req := SubmissionRequest{
		StudyID:       studyDef.ID.Hex(),
		ParticipantID: "p1",
		VisitorID:     "v1",
		Responses: []AnswerSubmission{
			{QuestionID: matrixQuestion.ID.Hex(), Response: map[string]interface{}{"row1": "col2"}},
			{QuestionID: legacyQuestion.ID.Hex(), Response: []interface{}{1.0, "mixed"}},
		},
	}

	if _, err := ValidateSubmission(studyDef, req, testNow); err != nil {
		t.Errorf("permissive types should accept rich payloads, got %v", err)
	}
}
