package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"encoding/json"
	"errors"
	"math"

	"gorm.io/gorm"
)

type OnboardingService struct {
	OnboardingRepo     *repository.OnboardingRepository
	RecommendationRepo *repository.RecommendationRepository
}

func NewOnboardingService(
	onboardingRepo *repository.OnboardingRepository,
	recommendationRepo *repository.RecommendationRepository,
) *OnboardingService {
	return &OnboardingService{
		OnboardingRepo:     onboardingRepo,
		RecommendationRepo: recommendationRepo,
	}
}

// OnboardingUpdateRequest 所有字段均为可选，未提供的字段保持原值
type OnboardingUpdateRequest struct {
	Age      *int    `json:"age" binding:"omitempty,gte=13,lte=100"`
	Gender   *string `json:"gender"`
	Location *string `json:"location"`

	EducationLevel *string `json:"educationLevel"`
	FieldOfStudy   *string `json:"fieldOfStudy"`
	Institution    *string `json:"institution"`
	GraduationYear *int    `json:"graduationYear"`

	YearsOfExperience *int    `json:"yearsOfExperience" binding:"omitempty,gte=0"`
	CurrentRole       *string `json:"currentRole"`
	Industry          *string `json:"industry"`

	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
	Interests       []string `json:"interests"`
	CareerGoals     *string  `json:"careerGoals"`

	StepCompleted *int `json:"stepCompleted" binding:"omitempty,gte=0,lte=4"`
}

type CompletenessResponse struct {
	ProfileCompleteness int  `json:"profileCompleteness"`
	StepCompleted       int  `json:"stepCompleted"`
	IsCompleted         bool `json:"isCompleted"`
}

// UpsertProfile 创建或增量更新引导问卷
// 每次写入后重算完成度，并清除该用户已生成的职业推荐
func (s *OnboardingService) UpsertProfile(userID uint, req *OnboardingUpdateRequest) (*model.OnboardingProfile, error) {
	profile, err := s.OnboardingRepo.FindByUserID(userID)
	isNew := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = &model.OnboardingProfile{UserID: userID}
		isNew = true
	}

	applyUpdates(profile, req)

	profile.ProfileCompleteness = computeCompleteness(profile)
	// 完成状态只进不退
	if profile.StepCompleted >= 4 {
		profile.IsCompleted = true
	}

	// 画像写入与旧推荐作废在同一事务内完成，任一失败则整体回滚
	err = s.OnboardingRepo.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		if isNew {
			txErr = repository.NewOnboardingRepository(tx).Create(profile)
		} else {
			txErr = repository.NewOnboardingRepository(tx).Save(profile)
		}
		if txErr != nil {
			return txErr
		}
		return repository.NewRecommendationRepository(tx).DeleteByUser(userID)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *OnboardingService) GetProfile(userID uint) (*model.OnboardingProfile, error) {
	profile, err := s.OnboardingRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *OnboardingService) GetCompleteness(userID uint) (*CompletenessResponse, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return &CompletenessResponse{
		ProfileCompleteness: profile.ProfileCompleteness,
		StepCompleted:       profile.StepCompleted,
		IsCompleted:         profile.IsCompleted,
	}, nil
}

func applyUpdates(profile *model.OnboardingProfile, req *OnboardingUpdateRequest) {
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.EducationLevel != nil {
		profile.EducationLevel = *req.EducationLevel
	}
	if req.FieldOfStudy != nil {
		profile.FieldOfStudy = *req.FieldOfStudy
	}
	if req.Institution != nil {
		profile.Institution = *req.Institution
	}
	if req.GraduationYear != nil {
		profile.GraduationYear = req.GraduationYear
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = req.YearsOfExperience
	}
	if req.CurrentRole != nil {
		profile.CurrentRole = *req.CurrentRole
	}
	if req.Industry != nil {
		profile.Industry = *req.Industry
	}
	if req.TechnicalSkills != nil {
		profile.TechnicalSkills = mustMarshal(req.TechnicalSkills)
	}
	if req.SoftSkills != nil {
		profile.SoftSkills = mustMarshal(req.SoftSkills)
	}
	if req.Interests != nil {
		profile.Interests = mustMarshal(req.Interests)
	}
	if req.CareerGoals != nil {
		profile.CareerGoals = *req.CareerGoals
	}
	if req.StepCompleted != nil && *req.StepCompleted > profile.StepCompleted {
		profile.StepCompleted = *req.StepCompleted
	}
}

// computeCompleteness 统计14个画像字段的填写比例，四舍五入为0-100的整数
// years_of_experience 填0也算有效值，其余数值字段0视为未填
func computeCompleteness(profile *model.OnboardingProfile) int {
	filled := 0

	if profile.Age != nil && *profile.Age != 0 {
		filled++
	}
	if profile.Gender != "" {
		filled++
	}
	if profile.Location != "" {
		filled++
	}
	if profile.EducationLevel != "" {
		filled++
	}
	if profile.FieldOfStudy != "" {
		filled++
	}
	if profile.Institution != "" {
		filled++
	}
	if profile.GraduationYear != nil && *profile.GraduationYear != 0 {
		filled++
	}
	if profile.YearsOfExperience != nil {
		filled++
	}
	if profile.CurrentRole != "" {
		filled++
	}
	if profile.Industry != "" {
		filled++
	}
	if jsonArrayNotEmpty(profile.TechnicalSkills) {
		filled++
	}
	if jsonArrayNotEmpty(profile.SoftSkills) {
		filled++
	}
	if jsonArrayNotEmpty(profile.Interests) {
		filled++
	}
	if profile.CareerGoals != "" {
		filled++
	}

	return int(math.Round(100 * float64(filled) / float64(util.OnboardingTrackedFields)))
}

func jsonArrayNotEmpty(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}
	return len(items) > 0
}

func mustMarshal(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
