package exporter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

var exportTime = time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)

func exportTestStudy() (studyTypes.Study, []studyTypes.Question) {
	questions := []studyTypes.Question{
		{
			ID:   primitive.NewObjectID(),
			Type: studyTypes.QUESTION_TYPE_TEXT,
			Data: studyTypes.QuestionData{Title: "Mood"},
		},
		{
			ID:   primitive.NewObjectID(),
			Type: studyTypes.QUESTION_TYPE_CHECKBOX,
			Data: studyTypes.QuestionData{
				QuestionText: "Symptoms",
				Options:      []studyTypes.ChoiceOption{{ID: "s1", Label: "Headache"}, {ID: "s2", Label: "Fever"}},
			},
			Files: []studyTypes.FileRef{{ID: "f1", OriginalName: "chart.png"}},
		},
		{
			ID:   primitive.NewObjectID(),
			Type: studyTypes.QUESTION_TYPE_RATING_SCALE,
			Data: studyTypes.QuestionData{Scale: &studyTypes.ScaleBounds{Min: 1, Max: 10}},
		},
	}
	return studyTypes.Study{
		ID:                 primitive.NewObjectID(),
		Title:              "Symptom diary",
		Description:        "daily check-in",
		Active:             true,
		TermsAndConditions: "some terms",
		CreatedAt:          time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Questions:          questions,
	}, questions
}

func record(studyID primitive.ObjectID, participantID, visitorID string, answers []studyTypes.Answer) studyTypes.ResponseRecord {
	start := time.Date(2024, 5, 11, 10, 0, 0, 0, time.UTC)
	return studyTypes.ResponseRecord{
		ID:            primitive.NewObjectID(),
		StudyID:       studyID,
		ParticipantID: participantID,
		VisitorID:     visitorID,
		StartTime:     start,
		EndTime:       start.Add(90 * time.Second),
		Answers:       answers,
		SubmittedAt:   start.Add(2 * time.Minute),
	}
}

func TestBuildExportViews(t *testing.T) {
	studyDef, questions := exportTestStudy()

	records := []studyTypes.ResponseRecord{
		record(studyDef.ID, "p1", "v1", []studyTypes.Answer{
			{QuestionID: questions[0].ID, Value: "fine", Timestamp: exportTime},
			{QuestionID: questions[1].ID, Value: []string{"s1"}, Timestamp: exportTime},
		}),
		record(studyDef.ID, "p2", "v2", []studyTypes.Answer{
			{QuestionID: questions[0].ID, Value: "tired", Timestamp: exportTime},
		}),
		record(studyDef.ID, "p1", "v3", []studyTypes.Answer{
			{QuestionID: questions[1].ID, Value: []string{"s1", "s2"}, Timestamp: exportTime},
		}),
	}

	payload := BuildExport(studyDef, records, exportTime)

	if payload.Study.Title != "Symptom diary" || !payload.Study.HasTerms || !payload.Study.Active {
		t.Errorf("unexpected study summary: %+v", payload.Study)
	}
	if payload.Meta.TotalResponses != 3 {
		t.Errorf("expected 3 total responses, got %d", payload.Meta.TotalResponses)
	}

	if len(payload.Responses.All) != 3 {
		t.Fatalf("expected all view of length 3, got %d", len(payload.Responses.All))
	}
	if payload.Responses.All[0].DurationMs != 90000 {
		t.Errorf("unexpected duration: %d", payload.Responses.All[0].DurationMs)
	}
	if payload.Responses.All[0].Answers[0].QuestionLabel != "Mood" {
		t.Errorf("answers should be enriched with the question label")
	}

	if len(payload.Responses.ByParticipant) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(payload.Responses.ByParticipant))
	}
	if len(payload.Responses.ByParticipant["p1"]) != 2 || len(payload.Responses.ByParticipant["p2"]) != 1 {
		t.Errorf("unexpected byParticipant grouping")
	}

	// one entry per catalog question, including the one nobody answered
	if len(payload.Responses.ByQuestion) != 3 {
		t.Fatalf("expected 3 byQuestion entries, got %d", len(payload.Responses.ByQuestion))
	}
	moodEntry := payload.Responses.ByQuestion[questions[0].ID.Hex()]
	if len(moodEntry.Answers) != 2 {
		t.Errorf("expected 2 answers for mood question, got %d", len(moodEntry.Answers))
	}
	scaleEntry := payload.Responses.ByQuestion[questions[2].ID.Hex()]
	if len(scaleEntry.Answers) != 0 {
		t.Errorf("unanswered question should have an empty answer list")
	}
	if len(scaleEntry.Answers) == 0 && scaleEntry.Answers == nil {
		t.Errorf("unanswered question must still have a non-nil answer list")
	}
}

func TestBuildExportQuestionCatalog(t *testing.T) {
	studyDef, _ := exportTestStudy()

	payload := BuildExport(studyDef, nil, exportTime)

	if len(payload.Questions) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(payload.Questions))
	}
	if payload.Questions[0].Label != "Mood" {
		t.Errorf("title should win label resolution, got %q", payload.Questions[0].Label)
	}
	if payload.Questions[1].Label != "Symptoms" {
		t.Errorf("questionText fallback failed, got %q", payload.Questions[1].Label)
	}
	if payload.Questions[2].Label != FALLBACK_QUESTION_LABEL {
		t.Errorf("expected fallback label, got %q", payload.Questions[2].Label)
	}

	if len(payload.Questions[1].Files) != 1 || payload.Questions[1].Files[0].Label != "chart.png" {
		t.Errorf("file label should fall back to original name")
	}

	checkboxGroups := payload.Questions[1].OptionGroups
	if len(checkboxGroups) != 1 || len(checkboxGroups[0].Items) != 2 {
		t.Errorf("unexpected checkbox option groups: %+v", checkboxGroups)
	}
	scaleGroups := payload.Questions[2].OptionGroups
	if len(scaleGroups) != 1 || scaleGroups[0].Key != studyTypes.OPTION_GROUP_SCALE {
		t.Errorf("unexpected scale option groups: %+v", scaleGroups)
	}
}

func TestBuildExportDropsOrphanAnswers(t *testing.T) {
	studyDef, questions := exportTestStudy()
	removedQuestionID := primitive.NewObjectID()

	records := []studyTypes.ResponseRecord{
		record(studyDef.ID, "p1", "v1", []studyTypes.Answer{
			{QuestionID: questions[0].ID, Value: "ok", Timestamp: exportTime},
			{QuestionID: removedQuestionID, Value: "orphan", Timestamp: exportTime},
		}),
	}

	payload := BuildExport(studyDef, records, exportTime)

	if _, ok := payload.Responses.ByQuestion[removedQuestionID.Hex()]; ok {
		t.Errorf("removed question must not appear in byQuestion")
	}
	total := 0
	for _, entry := range payload.Responses.ByQuestion {
		total += len(entry.Answers)
	}
	if total != 1 {
		t.Errorf("orphan answer should be dropped from byQuestion, got %d answers", total)
	}
	// the flat view still carries the orphan answer, with the fallback label
	if len(payload.Responses.All[0].Answers) != 2 {
		t.Errorf("flat view should keep all answers of the record")
	}
	if payload.Responses.All[0].Answers[1].QuestionLabel != FALLBACK_QUESTION_LABEL {
		t.Errorf("orphan answer should get the fallback label")
	}
}

func TestBuildExportDeterministic(t *testing.T) {
	studyDef, questions := exportTestStudy()
	records := []studyTypes.ResponseRecord{
		record(studyDef.ID, "p1", "v1", []studyTypes.Answer{
			{QuestionID: questions[0].ID, Value: "fine", Timestamp: exportTime},
		}),
		record(studyDef.ID, "p2", "v2", []studyTypes.Answer{
			{QuestionID: questions[1].ID, Value: []string{"s2"}, Timestamp: exportTime},
		}),
	}

	first, err := json.Marshal(BuildExport(studyDef, records, exportTime))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := json.Marshal(BuildExport(studyDef, records, exportTime))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("export is not deterministic for unchanged inputs")
	}
}
