package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

type MaterialService struct {
	MaterialRepo   *repository.MaterialRepository
	OnboardingRepo *repository.OnboardingRepository
}

func NewMaterialService(
	materialRepo *repository.MaterialRepository,
	onboardingRepo *repository.OnboardingRepository,
) *MaterialService {
	return &MaterialService{
		MaterialRepo:   materialRepo,
		OnboardingRepo: onboardingRepo,
	}
}

type MaterialListRequest struct {
	Category string `form:"category"`
	Level    string `form:"level"`
	FreeOnly bool   `form:"freeOnly"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type MaterialCreateRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	URL          string   `json:"url" binding:"required,url"`
	Category     string   `json:"category"`
	FieldOfStudy *string  `json:"fieldOfStudy"`
	ResourceType string   `json:"resourceType" binding:"omitempty,oneof=course article video book"`
	Provider     string   `json:"provider"`
	Level        string   `json:"level"`
	Duration     string   `json:"duration"`
	IsFree       bool     `json:"isFree"`
	Tags         []string `json:"tags"`
}

// ListForUser 列出学习资源，按用户专业附带定向资源
func (s *MaterialService) ListForUser(userID uint, req *MaterialListRequest) ([]model.LearningMaterial, int64, error) {
	fieldOfStudy := ""
	profile, err := s.OnboardingRepo.FindByUserID(userID)
	if err == nil {
		fieldOfStudy = profile.FieldOfStudy
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := repository.MaterialFilter{
		FieldOfStudy: fieldOfStudy,
		Category:     req.Category,
		Level:        req.Level,
		FreeOnly:     req.FreeOnly,
	}
	return s.MaterialRepo.FindActive(filter, (page-1)*pageSize, pageSize)
}

func (s *MaterialService) GetMaterial(id uint) (*model.LearningMaterial, error) {
	material, err := s.MaterialRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}
	return material, nil
}

// CreateMaterial 管理端录入学习资源
func (s *MaterialService) CreateMaterial(createdBy uint, req *MaterialCreateRequest) (*model.LearningMaterial, error) {
	var tags json.RawMessage
	if req.Tags != nil {
		tags = mustMarshal(req.Tags)
	}

	material := &model.LearningMaterial{
		Title:        req.Title,
		Description:  req.Description,
		URL:          req.URL,
		Category:     req.Category,
		FieldOfStudy: req.FieldOfStudy,
		ResourceType: req.ResourceType,
		Provider:     req.Provider,
		Level:        req.Level,
		Duration:     req.Duration,
		IsFree:       req.IsFree,
		IsActive:     true,
		Tags:         tags,
		CreatedBy:    createdBy,
	}
	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

// MaterialUpdateRequest 所有字段可选，未提供的字段保持原值
type MaterialUpdateRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	URL          *string  `json:"url" binding:"omitempty,url"`
	Category     *string  `json:"category"`
	FieldOfStudy *string  `json:"fieldOfStudy"`
	ResourceType *string  `json:"resourceType" binding:"omitempty,oneof=course article video book"`
	Provider     *string  `json:"provider"`
	Level        *string  `json:"level"`
	Duration     *string  `json:"duration"`
	IsFree       *bool    `json:"isFree"`
	IsActive     *bool    `json:"isActive"`
	Tags         []string `json:"tags"`
}

// UpdateMaterial 管理端增量更新学习资源
func (s *MaterialService) UpdateMaterial(id uint, req *MaterialUpdateRequest) (*model.LearningMaterial, error) {
	material, err := s.GetMaterial(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.URL != nil {
		material.URL = *req.URL
	}
	if req.Category != nil {
		material.Category = *req.Category
	}
	if req.FieldOfStudy != nil {
		material.FieldOfStudy = req.FieldOfStudy
	}
	if req.ResourceType != nil {
		material.ResourceType = *req.ResourceType
	}
	if req.Provider != nil {
		material.Provider = *req.Provider
	}
	if req.Level != nil {
		material.Level = *req.Level
	}
	if req.Duration != nil {
		material.Duration = *req.Duration
	}
	if req.IsFree != nil {
		material.IsFree = *req.IsFree
	}
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}
	if req.Tags != nil {
		material.Tags = mustMarshal(req.Tags)
	}

	if err := s.MaterialRepo.Save(material); err != nil {
		return nil, err
	}
	return material, nil
}

// DeactivateMaterial 下架资源而不物理删除
func (s *MaterialService) DeactivateMaterial(id uint) error {
	material, err := s.GetMaterial(id)
	if err != nil {
		return err
	}
	material.IsActive = false
	return s.MaterialRepo.Save(material)
}
