package repository

import (
	"career_compass_backend/internal/model"

	"gorm.io/gorm"
)

type OnboardingRepository struct {
	DB *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{DB: db}
}

func (r *OnboardingRepository) FindByUserID(userID uint) (*model.OnboardingProfile, error) {
	var profile model.OnboardingProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *OnboardingRepository) Create(profile *model.OnboardingProfile) error {
	return r.DB.Create(profile).Error
}

func (r *OnboardingRepository) Save(profile *model.OnboardingProfile) error {
	return r.DB.Save(profile).Error
}

func (r *OnboardingRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.DB.Model(&model.OnboardingProfile{}).Where("is_completed = ?", true).Count(&count).Error
	return count, err
}
