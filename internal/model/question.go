package model

import (
	"strings"
	"time"
)

// QuestionType enumerates how a question is answered.
type QuestionType string

const (
	QuestionTypeMCQSingle   QuestionType = "mcq-single"
	QuestionTypeMCQMultiple QuestionType = "mcq-multiple"
	QuestionTypeShortAnswer QuestionType = "short-answer"
	QuestionTypeLongAnswer  QuestionType = "long-answer"
)

// IsMCQ reports whether the type is answered by selecting options.
func (t QuestionType) IsMCQ() bool {
	return t == QuestionTypeMCQSingle || t == QuestionTypeMCQMultiple
}

// DifficultyLevel grades a question.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Option is a single answer choice, owned by its Question.
type Option struct {
	ID          string `json:"id" bson:"id"`
	Text        string `json:"text" bson:"text" validate:"required,max=1000"`
	IsCorrect   bool   `json:"isCorrect" bson:"is_correct"`
	Explanation string `json:"explanation,omitempty" bson:"explanation,omitempty" validate:"max=4000"`
}

// Question is a single aptitude-test question.
type Question struct {
	ID              string          `json:"id" bson:"_id"`
	CollegeID       *string         `json:"collegeId,omitempty" bson:"college_id,omitempty"`
	Type            QuestionType    `json:"type" bson:"type" validate:"required,oneof=mcq-single mcq-multiple short-answer long-answer"`
	Text            string          `json:"text" bson:"text" validate:"required,max=20000"`
	Options         []Option        `json:"options" bson:"options" validate:"dive"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel" bson:"difficulty_level" validate:"required,oneof=easy medium hard"`
	Categories      []string        `json:"categories" bson:"categories" validate:"max=50,dive,max=100"`
	CreatedAt       time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updated_at"`
}

// CorrectOptionIDs returns the ids of options flagged correct, in option order.
func (q *Question) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// NormalizeCategories trims categories and removes blanks and duplicates,
// keeping the order of first appearance.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// QuestionInput is the client-supplied part of a Question.
type QuestionInput struct {
	CollegeID       *string         `json:"collegeId"`
	Type            QuestionType    `json:"type" binding:"required"`
	Text            string          `json:"text" binding:"required"`
	Options         []OptionInput   `json:"options"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel" binding:"required"`
	Categories      []string        `json:"categories"`
}

// OptionInput is the client-supplied part of an Option.
type OptionInput struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// BulkUploadRequest is the payload for POST /questions/bulk.
type BulkUploadRequest struct {
	CollegeID *string         `json:"collegeId"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1,max=1000"`
}

// BulkFailure describes one rejected item of a bulk upload.
type BulkFailure struct {
	Index  int               `json:"index"`
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

// BulkResult summarises a bulk upload.
type BulkResult struct {
	Created int           `json:"created"`
	Failed  []BulkFailure `json:"failed"`
}
