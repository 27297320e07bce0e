package model

import "encoding/json"

// swagger:model LearningMaterial
type LearningMaterial struct {
	BaseModel
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	URL          string          `gorm:"size:512;not null" json:"url"`
	Category     string          `gorm:"size:100" json:"category"`      // e.g. "Web Dev", "AI/ML", "Finance"
	FieldOfStudy *string         `gorm:"size:255" json:"fieldOfStudy"`  // NULL = 适用于所有专业
	ResourceType string          `gorm:"size:50" json:"resourceType"`   // course, article, video, book
	Provider     string          `gorm:"size:100" json:"provider"`      // e.g. "Udemy", "Coursera"
	Level        string          `gorm:"size:50" json:"level"`          // Beginner, Intermediate, Advanced
	Duration     string          `gorm:"size:100" json:"duration"`      // e.g. "8 hours"
	IsFree       bool            `gorm:"default:false" json:"isFree"`
	IsActive     bool            `gorm:"default:true" json:"isActive"`
	Tags         json.RawMessage `gorm:"type:json" json:"tags"`
	CreatedBy    uint            `gorm:"type:bigint unsigned" json:"createdBy"`
}

func (LearningMaterial) TableName() string {
	return "learning_materials"
}
