package types

import "strconv"

// Closed set of question types. Anything else is treated as
// QUESTION_TYPE_UNKNOWN with permissive answer validation and no option
// groups.
const (
	QUESTION_TYPE_TEXT            = "text"
	QUESTION_TYPE_NUMBER          = "number"
	QUESTION_TYPE_BOOLEAN         = "boolean"
	QUESTION_TYPE_MULTI_CHOICE    = "multiChoice"
	QUESTION_TYPE_MULTIPLE_CHOICE = "multipleChoice"
	QUESTION_TYPE_CHECKBOX        = "checkbox"
	QUESTION_TYPE_RATING_SCALE    = "ratingScale"
	QUESTION_TYPE_DROPDOWN        = "dropdown"
	QUESTION_TYPE_RANKING         = "ranking"
	QUESTION_TYPE_MATRIX          = "matrix"
	QUESTION_TYPE_UNKNOWN         = "unknown"
)

const (
	OPTION_GROUP_OPTIONS    = "options"
	OPTION_GROUP_SCALE      = "scale"
	OPTION_GROUP_ROWS       = "rows"
	OPTION_GROUP_COLUMNS    = "columns"
	OPTION_GROUP_TEXT_AREAS = "textAreas"
)

// OptionGroup is one set of selectable or ratable sub-elements of a
// question, extracted from its type specific configuration for exports.
type OptionGroup struct {
	Key   string            `json:"key"`
	Items []OptionGroupItem `json:"items"`
}

type OptionGroupItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// QuestionTypeHandler defines per question type how answer values are
// checked at submission time and which option groups the type contributes
// to exports.
type QuestionTypeHandler interface {
	ValidAnswer(value interface{}) bool
	OptionGroups(data QuestionData) []OptionGroup
}

var questionTypeHandlers = map[string]QuestionTypeHandler{
	QUESTION_TYPE_TEXT:            &TextHandler{},
	QUESTION_TYPE_NUMBER:          &NumberHandler{},
	QUESTION_TYPE_BOOLEAN:         &BooleanHandler{},
	QUESTION_TYPE_MULTI_CHOICE:    &ChoiceListHandler{},
	QUESTION_TYPE_MULTIPLE_CHOICE: &PermissiveChoiceHandler{},
	QUESTION_TYPE_CHECKBOX:        &PermissiveChoiceHandler{},
	QUESTION_TYPE_DROPDOWN:        &PermissiveChoiceHandler{},
	QUESTION_TYPE_RANKING:         &PermissiveChoiceHandler{},
	QUESTION_TYPE_RATING_SCALE:    &RatingScaleHandler{},
	QUESTION_TYPE_MATRIX:          &MatrixHandler{},
	QUESTION_TYPE_UNKNOWN:         &UnknownTypeHandler{},
}

// HandlerForQuestionType never returns nil; unsupported or legacy types get
// the permissive unknown type handler.
func HandlerForQuestionType(questionType string) QuestionTypeHandler {
	handler, ok := questionTypeHandlers[questionType]
	if !ok {
		return questionTypeHandlers[QUESTION_TYPE_UNKNOWN]
	}
	return handler
}

// TextHandler implements the QuestionTypeHandler interface for free text questions
type TextHandler struct{}

func (h *TextHandler) ValidAnswer(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

func (h *TextHandler) OptionGroups(data QuestionData) []OptionGroup {
	if len(data.TextAreas) == 0 {
		return []OptionGroup{}
	}
	items := make([]OptionGroupItem, len(data.TextAreas))
	for i, ta := range data.TextAreas {
		items[i] = OptionGroupItem{ID: ta.ID, Label: ta.Label}
	}
	return []OptionGroup{{Key: OPTION_GROUP_TEXT_AREAS, Items: items}}
}

// NumberHandler implements the QuestionTypeHandler interface for numeric questions
type NumberHandler struct{}

func (h *NumberHandler) ValidAnswer(value interface{}) bool {
	switch v := value.(type) {
	case float64:
		// JSON numbers decode to float64; NaN and Inf are not valid answers
		return v == v && v <= maxFinite && v >= -maxFinite
	case float32, int, int32, int64:
		return true
	default:
		return false
	}
}

const maxFinite = 1.7976931348623157e+308

func (h *NumberHandler) OptionGroups(data QuestionData) []OptionGroup {
	return []OptionGroup{}
}

// BooleanHandler implements the QuestionTypeHandler interface for yes/no questions
type BooleanHandler struct{}

func (h *BooleanHandler) ValidAnswer(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

func (h *BooleanHandler) OptionGroups(data QuestionData) []OptionGroup {
	return []OptionGroup{}
}

// ChoiceListHandler requires the answer to be a list of option strings.
type ChoiceListHandler struct{}

func (h *ChoiceListHandler) ValidAnswer(value interface{}) bool {
	switch items := value.(type) {
	case []string:
		return true
	case []interface{}:
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (h *ChoiceListHandler) OptionGroups(data QuestionData) []OptionGroup {
	return []OptionGroup{optionsGroup(data)}
}

// PermissiveChoiceHandler accepts any answer shape but still exposes the
// configured options for exports. Used for the richer choice type variants
// whose client payloads are not uniform.
type PermissiveChoiceHandler struct{}

func (h *PermissiveChoiceHandler) ValidAnswer(value interface{}) bool {
	return true
}

func (h *PermissiveChoiceHandler) OptionGroups(data QuestionData) []OptionGroup {
	return []OptionGroup{optionsGroup(data)}
}

// RatingScaleHandler implements the QuestionTypeHandler interface for rating scale questions
type RatingScaleHandler struct{}

func (h *RatingScaleHandler) ValidAnswer(value interface{}) bool {
	return true
}

func (h *RatingScaleHandler) OptionGroups(data QuestionData) []OptionGroup {
	if data.Scale == nil {
		return []OptionGroup{}
	}
	minLabel := data.Scale.MinLabel
	if minLabel == "" {
		minLabel = strconv.Itoa(data.Scale.Min)
	}
	maxLabel := data.Scale.MaxLabel
	if maxLabel == "" {
		maxLabel = strconv.Itoa(data.Scale.Max)
	}
	return []OptionGroup{{
		Key: OPTION_GROUP_SCALE,
		Items: []OptionGroupItem{
			{ID: strconv.Itoa(data.Scale.Min), Label: minLabel},
			{ID: strconv.Itoa(data.Scale.Max), Label: maxLabel},
		},
	}}
}

// MatrixHandler implements the QuestionTypeHandler interface for matrix questions
type MatrixHandler struct{}

func (h *MatrixHandler) ValidAnswer(value interface{}) bool {
	return true
}

func (h *MatrixHandler) OptionGroups(data QuestionData) []OptionGroup {
	groups := []OptionGroup{}
	if len(data.Rows) > 0 {
		items := make([]OptionGroupItem, len(data.Rows))
		for i, row := range data.Rows {
			items[i] = OptionGroupItem{ID: row.ID, Label: row.Label}
		}
		groups = append(groups, OptionGroup{Key: OPTION_GROUP_ROWS, Items: items})
	}
	if len(data.Columns) > 0 {
		items := make([]OptionGroupItem, len(data.Columns))
		for i, col := range data.Columns {
			items[i] = OptionGroupItem{ID: col.ID, Label: col.Label}
		}
		groups = append(groups, OptionGroup{Key: OPTION_GROUP_COLUMNS, Items: items})
	}
	return groups
}

// UnknownTypeHandler accepts anything and contributes no option groups.
type UnknownTypeHandler struct{}

func (h *UnknownTypeHandler) ValidAnswer(value interface{}) bool {
	return true
}

func (h *UnknownTypeHandler) OptionGroups(data QuestionData) []OptionGroup {
	return []OptionGroup{}
}

func optionsGroup(data QuestionData) OptionGroup {
	items := make([]OptionGroupItem, len(data.Options))
	for i, opt := range data.Options {
		id := opt.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		items[i] = OptionGroupItem{ID: id, Label: opt.Label}
	}
	return OptionGroup{Key: OPTION_GROUP_OPTIONS, Items: items}
}
