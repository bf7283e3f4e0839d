package exporter

import (
	"time"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

// ExportPayload is the full download document for one study: the question
// catalog plus the same response set rendered in three views.
type ExportPayload struct {
	Study     StudySummary   `json:"study"`
	Questions []QuestionInfo `json:"questions"`
	Responses ResponseViews  `json:"responses"`
	Meta      ExportMeta     `json:"meta"`
}

type StudySummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	HasTerms    bool      `json:"hasTerms"`
	Active      bool      `json:"active"`
	Completed   bool      `json:"completed"`
}

type QuestionInfo struct {
	ID           string                   `json:"id"`
	Label        string                   `json:"label"`
	Type         string                   `json:"type"`
	Files        []FileInfo               `json:"files,omitempty"`
	OptionGroups []studyTypes.OptionGroup `json:"optionGroups"`
}

type FileInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ResponseViews struct {
	All           []FlatResponse               `json:"all"`
	ByParticipant map[string][]FlatResponse    `json:"byParticipant"`
	ByQuestion    map[string]QuestionResponses `json:"byQuestion"`
}

type FlatResponse struct {
	ID            string       `json:"id"`
	ParticipantID string       `json:"participantId"`
	VisitorID     string       `json:"visitorId"`
	StartTime     time.Time    `json:"startTime"`
	EndTime       time.Time    `json:"endTime"`
	DurationMs    int64        `json:"durationMs"`
	Answers       []FlatAnswer `json:"answers"`
	SubmittedAt   time.Time    `json:"submittedAt"`
}

type FlatAnswer struct {
	QuestionID    string      `json:"questionId"`
	QuestionLabel string      `json:"questionLabel"`
	Value         interface{} `json:"response"`
	Timestamp     time.Time   `json:"timestamp"`
}

type QuestionResponses struct {
	Label   string           `json:"label"`
	Type    string           `json:"type"`
	Files   []FileInfo       `json:"files,omitempty"`
	Answers []QuestionAnswer `json:"answers"`
}

type QuestionAnswer struct {
	ParticipantID string      `json:"participantId"`
	Value         interface{} `json:"response"`
	Timestamp     time.Time   `json:"timestamp"`
}

type ExportMeta struct {
	TotalResponses int       `json:"totalResponses"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
