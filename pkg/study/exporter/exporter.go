package exporter

import (
	"time"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

// BuildExport reshapes the stored response records of one study into the
// export payload. Pure transform: same study, records and generatedAt
// produce identical output, no I/O happens here.
func BuildExport(study studyTypes.Study, records []studyTypes.ResponseRecord, generatedAt time.Time) ExportPayload {
	labelsByQuestionID := map[string]string{}
	for _, question := range study.Questions {
		labelsByQuestionID[question.ID.Hex()] = ResolveQuestionLabel(question)
	}

	catalog := buildQuestionCatalog(study)

	all := make([]FlatResponse, 0, len(records))
	byParticipant := map[string][]FlatResponse{}
	byQuestion := map[string]QuestionResponses{}

	// every catalog question gets an entry, even with zero answers
	for _, info := range catalog {
		byQuestion[info.ID] = QuestionResponses{
			Label:   info.Label,
			Type:    info.Type,
			Files:   info.Files,
			Answers: []QuestionAnswer{},
		}
	}

	for _, record := range records {
		flat := flattenRecord(record, labelsByQuestionID)
		all = append(all, flat)
		byParticipant[record.ParticipantID] = append(byParticipant[record.ParticipantID], flat)

		for _, answer := range record.Answers {
			questionID := answer.QuestionID.Hex()
			entry, ok := byQuestion[questionID]
			if !ok {
				// the question was edited or removed after this record was
				// collected; dropping the answer is accepted lossy behavior
				continue
			}
			entry.Answers = append(entry.Answers, QuestionAnswer{
				ParticipantID: record.ParticipantID,
				Value:         answer.Value,
				Timestamp:     answer.Timestamp,
			})
			byQuestion[questionID] = entry
		}
	}

	return ExportPayload{
		Study: StudySummary{
			ID:          study.ID.Hex(),
			Title:       study.Title,
			Description: study.Description,
			CreatedAt:   study.CreatedAt,
			HasTerms:    study.TermsAndConditions != "",
			Active:      study.Active,
			Completed:   study.Completed,
		},
		Questions: catalog,
		Responses: ResponseViews{
			All:           all,
			ByParticipant: byParticipant,
			ByQuestion:    byQuestion,
		},
		Meta: ExportMeta{
			TotalResponses: len(records),
			GeneratedAt:    generatedAt,
		},
	}
}

func buildQuestionCatalog(study studyTypes.Study) []QuestionInfo {
	catalog := make([]QuestionInfo, 0, len(study.Questions))
	for _, question := range study.Questions {
		files := make([]FileInfo, 0, len(question.Files))
		for _, file := range question.Files {
			files = append(files, FileInfo{ID: file.ID, Label: ResolveFileLabel(file)})
		}
		if len(files) == 0 {
			files = nil
		}

		catalog = append(catalog, QuestionInfo{
			ID:           question.ID.Hex(),
			Label:        ResolveQuestionLabel(question),
			Type:         question.Type,
			Files:        files,
			OptionGroups: studyTypes.HandlerForQuestionType(question.Type).OptionGroups(question.Data),
		})
	}
	return catalog
}

func flattenRecord(record studyTypes.ResponseRecord, labelsByQuestionID map[string]string) FlatResponse {
	answers := make([]FlatAnswer, 0, len(record.Answers))
	for _, answer := range record.Answers {
		questionID := answer.QuestionID.Hex()
		label, ok := labelsByQuestionID[questionID]
		if !ok {
			label = FALLBACK_QUESTION_LABEL
		}
		answers = append(answers, FlatAnswer{
			QuestionID:    questionID,
			QuestionLabel: label,
			Value:         answer.Value,
			Timestamp:     answer.Timestamp,
		})
	}

	return FlatResponse{
		ID:            record.ID.Hex(),
		ParticipantID: record.ParticipantID,
		VisitorID:     record.VisitorID,
		StartTime:     record.StartTime,
		EndTime:       record.EndTime,
		DurationMs:    record.EndTime.Sub(record.StartTime).Milliseconds(),
		Answers:       answers,
		SubmittedAt:   record.SubmittedAt,
	}
}
