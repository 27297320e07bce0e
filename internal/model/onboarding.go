package model

import "encoding/json"

// OnboardingProfile stores the per-user onboarding questionnaire.
// One row per user; profile_completeness and is_completed are derived
// fields and are recomputed by the service on every write.
// swagger:model OnboardingProfile
type OnboardingProfile struct {
	BaseModel
	UserID uint  `gorm:"uniqueIndex;not null;type:bigint unsigned" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	// 个人信息
	Age      *int   `json:"age"`
	Gender   string `gorm:"size:50" json:"gender"`
	Location string `gorm:"size:255" json:"location"`

	// 教育背景
	EducationLevel string `gorm:"size:100" json:"educationLevel"`
	FieldOfStudy   string `gorm:"size:255" json:"fieldOfStudy"`
	Institution    string `gorm:"size:255" json:"institution"`
	GraduationYear *int   `json:"graduationYear"`

	// 工作经历
	YearsOfExperience *int   `json:"yearsOfExperience"`
	CurrentRole       string `gorm:"size:255" json:"currentRole"`
	Industry          string `gorm:"size:255" json:"industry"`

	// 技能与兴趣
	TechnicalSkills json.RawMessage `gorm:"type:json" json:"technicalSkills"`
	SoftSkills      json.RawMessage `gorm:"type:json" json:"softSkills"`
	Interests       json.RawMessage `gorm:"type:json" json:"interests"`
	CareerGoals     string          `gorm:"type:text" json:"careerGoals"`

	// 完成度跟踪
	StepCompleted       int  `gorm:"default:0" json:"stepCompleted"` // 0-4
	IsCompleted         bool `gorm:"default:false" json:"isCompleted"`
	ProfileCompleteness int  `gorm:"default:0" json:"profileCompleteness"` // 0-100
}

func (OnboardingProfile) TableName() string {
	return "onboarding_profiles"
}
