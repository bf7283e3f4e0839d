package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResponseRecord is the single document stored per participation. It is
// written once at submission time and never updated afterwards.
type ResponseRecord struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	StudyID         primitive.ObjectID     `bson:"studyId" json:"studyId"`
	ParticipantID   string                 `bson:"participantId" json:"participantId"`
	VisitorID       string                 `bson:"visitorId" json:"visitorId"`
	CompletionToken string                 `bson:"completionToken" json:"completionToken,omitempty"`
	StartTime       time.Time              `bson:"startTime" json:"startTime"`
	EndTime         time.Time              `bson:"endTime" json:"endTime"`
	Demographics    map[string]interface{} `bson:"demographics,omitempty" json:"demographics,omitempty"`
	Answers         []Answer               `bson:"answers" json:"answers"`
	SubmittedAt     time.Time              `bson:"submittedAt" json:"submittedAt"`
}

type Answer struct {
	QuestionID primitive.ObjectID `bson:"questionId" json:"questionId"`
	Value      interface{}        `bson:"value" json:"response"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
