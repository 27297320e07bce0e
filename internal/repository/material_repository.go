package repository

import (
	"career_compass_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

type MaterialFilter struct {
	FieldOfStudy string
	Category     string
	Level        string
	FreeOnly     bool
}

// FindActive 按过滤条件查询启用的学习资源
// 指定专业时同时返回通用资源（field_of_study 为空）
func (r *MaterialRepository) FindActive(filter MaterialFilter, offset, limit int) ([]model.LearningMaterial, int64, error) {
	query := r.DB.Model(&model.LearningMaterial{}).Where("is_active = ?", true)

	if filter.FieldOfStudy != "" {
		query = query.Where("field_of_study IS NULL OR field_of_study = ?", filter.FieldOfStudy)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.FreeOnly {
		query = query.Where("is_free = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []model.LearningMaterial
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) FindByID(id uint) (*model.LearningMaterial, error) {
	var material model.LearningMaterial
	err := r.DB.First(&material, id).Error
	return &material, err
}

func (r *MaterialRepository) Create(material *model.LearningMaterial) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) Save(material *model.LearningMaterial) error {
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LearningMaterial{}, id).Error
}
