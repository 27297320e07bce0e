package model

import "encoding/json"

type GapPriority string

const (
	GapPriorityHigh   GapPriority = "high"
	GapPriorityMedium GapPriority = "medium"
	GapPriorityLow    GapPriority = "low"
)

// CareerRecommendation is one generated (or fallback) career suggestion.
// A recommendation and its skill gaps / roadmap phases form one
// lifecycle unit: children are always deleted with the parent.
// swagger:model CareerRecommendation
type CareerRecommendation struct {
	UUIDBase
	UserID uint  `gorm:"index;not null;type:bigint unsigned" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	CareerTitle       string  `gorm:"size:255;not null" json:"careerTitle"`
	CareerDescription string  `gorm:"type:text" json:"careerDescription"`
	MatchScore        float64 `gorm:"default:0" json:"matchScore"` // 0-100
	Reasoning         string  `gorm:"type:text" json:"reasoning"`

	RequiredSkills  json.RawMessage `gorm:"type:json" json:"requiredSkills"`
	GrowthPotential string          `gorm:"size:50" json:"growthPotential"`
	SalaryRange     string          `gorm:"size:100" json:"salaryRange"`
	WorkEnvironment string          `gorm:"type:text" json:"workEnvironment"`

	// 原始AI响应，用于审计与排障
	AIAnalysis json.RawMessage `gorm:"type:json" json:"aiAnalysis,omitempty"`

	SkillGaps        []SkillGap        `gorm:"foreignKey:RecommendationID" json:"skillGaps,omitempty"`
	LearningRoadmaps []LearningRoadmap `gorm:"foreignKey:RecommendationID" json:"learningRoadmaps,omitempty"`
}

func (CareerRecommendation) TableName() string {
	return "career_recommendations"
}

// swagger:model SkillGap
type SkillGap struct {
	UUIDBase
	RecommendationID string `gorm:"index;type:varchar(36);not null" json:"recommendationId"`

	SkillName     string      `gorm:"size:255;not null" json:"skillName"`
	CurrentLevel  string      `gorm:"size:50" json:"currentLevel"` // beginner, intermediate, advanced, not present
	RequiredLevel string      `gorm:"size:50" json:"requiredLevel"`
	Priority      GapPriority `gorm:"size:20;default:'medium'" json:"priority"`
	EstimatedTime string      `gorm:"size:100" json:"estimatedTime"` // e.g. "3 months"
}

func (SkillGap) TableName() string {
	return "skill_gaps"
}

// swagger:model LearningRoadmap
type LearningRoadmap struct {
	UUIDBase
	RecommendationID string `gorm:"index;type:varchar(36);not null" json:"recommendationId"`

	Phase      string          `gorm:"size:255;not null" json:"phase"` // e.g. "Phase 1: Foundations"
	Duration   string          `gorm:"size:100" json:"duration"`
	Objectives json.RawMessage `gorm:"type:json" json:"objectives"`
	Resources  json.RawMessage `gorm:"type:json" json:"resources"` // [{type, name, provider}]
	Order      int             `gorm:"default:0" json:"order"`     // 阶段顺序，按AI返回数组的位置
}

func (LearningRoadmap) TableName() string {
	return "learning_roadmaps"
}
