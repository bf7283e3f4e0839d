package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Study struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	OwnerID            primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Active             bool               `bson:"active" json:"active"`
	Completed          bool               `bson:"completed" json:"completed"`
	TimedStudy         bool               `bson:"timedStudy,omitempty" json:"timedStudy,omitempty"`
	StartedAt          *time.Time         `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	EndDate            *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	TermsAndConditions string             `bson:"termsAndConditions,omitempty" json:"termsAndConditions,omitempty"`
	Questions          []Question         `bson:"questions" json:"questions"`
	Files              []FileRef          `bson:"files,omitempty" json:"files,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Question ids are assigned at creation and have to stay stable and unique
// within the study for its whole lifetime, since stored answers reference
// them.
type Question struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type  string             `bson:"type" json:"type"`
	Data  QuestionData       `bson:"data" json:"data"`
	Files []FileRef          `bson:"files,omitempty" json:"files,omitempty"`
}

// QuestionData holds the type specific configuration of a question. Which
// fields are populated depends on the question type; label resolution falls
// back through Title, QuestionText, Label.
type QuestionData struct {
	Title        string         `bson:"title,omitempty" json:"title,omitempty"`
	QuestionText string         `bson:"questionText,omitempty" json:"questionText,omitempty"`
	Label        string         `bson:"label,omitempty" json:"label,omitempty"`
	Required     bool           `bson:"required,omitempty" json:"required,omitempty"`
	Options      []ChoiceOption `bson:"options,omitempty" json:"options,omitempty"`
	Scale        *ScaleBounds   `bson:"scale,omitempty" json:"scale,omitempty"`
	Rows         []MatrixItem   `bson:"rows,omitempty" json:"rows,omitempty"`
	Columns      []MatrixItem   `bson:"columns,omitempty" json:"columns,omitempty"`
	TextAreas    []TextArea     `bson:"textAreas,omitempty" json:"textAreas,omitempty"`
}

type ChoiceOption struct {
	ID    string `bson:"id,omitempty" json:"id,omitempty"`
	Label string `bson:"label" json:"label"`
}

type ScaleBounds struct {
	Min      int    `bson:"min" json:"min"`
	Max      int    `bson:"max" json:"max"`
	MinLabel string `bson:"minLabel,omitempty" json:"minLabel,omitempty"`
	MaxLabel string `bson:"maxLabel,omitempty" json:"maxLabel,omitempty"`
}

type MatrixItem struct {
	ID    string `bson:"id,omitempty" json:"id,omitempty"`
	Label string `bson:"label" json:"label"`
}

type TextArea struct {
	ID    string `bson:"id,omitempty" json:"id,omitempty"`
	Label string `bson:"label,omitempty" json:"label,omitempty"`
}

type FileRef struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	OriginalName string    `bson:"originalName,omitempty" json:"originalName,omitempty"`
	Path         string    `bson:"path,omitempty" json:"path,omitempty"`
	ContentType  string    `bson:"contentType,omitempty" json:"contentType,omitempty"`
	Size         int64     `bson:"size,omitempty" json:"size,omitempty"`
	UploadedAt   time.Time `bson:"uploadedAt,omitempty" json:"uploadedAt,omitempty"`
}
