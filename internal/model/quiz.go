package model

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionScale          QuestionType = "scale"
	QuestionText           QuestionType = "text"
	QuestionMultiSelect    QuestionType = "multi_select"
)

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	Section      string          `gorm:"size:100;not null;index" json:"section"` // personality, skills, interests, work_preferences, technical_skills
	QuestionText string          `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType    `gorm:"size:50;not null" json:"questionType"`
	Options      json.RawMessage `gorm:"type:json" json:"options"`
	FieldOfStudy *string         `gorm:"size:255" json:"fieldOfStudy"` // NULL = 适用于所有专业
	Order        int             `gorm:"default:0" json:"order"`
	IsActive     bool            `gorm:"default:true" json:"isActive"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizAnswer
type QuizAnswer struct {
	BaseModel
	UserID     uint            `gorm:"index:idx_user_question;not null;type:bigint unsigned" json:"userId"`
	QuestionID uint            `gorm:"index:idx_user_question;not null;type:bigint unsigned" json:"questionId"`
	Answer     json.RawMessage `gorm:"type:json;not null" json:"answer"` // string | number | array
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

// QuizSubmission tracks per-user quiz progress. TotalQuestions is a
// snapshot taken when the row is created and is never re-synced with
// the catalog afterwards.
// swagger:model QuizSubmission
type QuizSubmission struct {
	BaseModel
	UserID            uint            `gorm:"index;not null;type:bigint unsigned" json:"userId"`
	TotalQuestions    int             `gorm:"default:0" json:"totalQuestions"`
	AnsweredQuestions int             `gorm:"default:0" json:"answeredQuestions"`
	CompletedSections json.RawMessage `gorm:"type:json" json:"completedSections"`
	IsCompleted       bool            `gorm:"default:false" json:"isCompleted"`
	SubmittedAt       *time.Time      `json:"submittedAt"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
