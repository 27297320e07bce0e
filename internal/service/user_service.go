package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo           *repository.UserRepository
	OnboardingRepo     *repository.OnboardingRepository
	SubmissionRepo     *repository.QuizSubmissionRepository
	RecommendationRepo *repository.RecommendationRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	onboardingRepo *repository.OnboardingRepository,
	submissionRepo *repository.QuizSubmissionRepository,
	recommendationRepo *repository.RecommendationRepository,
) *UserService {
	return &UserService{
		UserRepo:           userRepo,
		OnboardingRepo:     onboardingRepo,
		SubmissionRepo:     submissionRepo,
		RecommendationRepo: recommendationRepo,
	}
}

type ProfileUpdateRequest struct {
	FullName string `json:"fullName" binding:"required"`
}

type AnalyticsResponse struct {
	TotalUsers           int64 `json:"totalUsers"`
	ActiveLast7Days      int64 `json:"activeLast7Days"`
	CompletedOnboarding  int64 `json:"completedOnboarding"`
	CompletedQuizzes     int64 `json:"completedQuizzes"`
	TotalRecommendations int64 `json:"totalRecommendations"`
}

func (s *UserService) GetUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req *ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateLastSeen(userID uint) error {
	return s.UserRepo.UpdateLastSeen(userID)
}

// ListUsers 管理端分页查询用户
func (s *UserService) ListUsers(page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.FindAll((page-1)*pageSize, pageSize)
}

// SetUserActive 管理端启用或禁用账号
func (s *UserService) SetUserActive(userID uint, active bool) (*model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAnalytics 汇总平台运营指标
func (s *UserService) GetAnalytics() (*AnalyticsResponse, error) {
	totalUsers, err := s.UserRepo.CountAll()
	if err != nil {
		return nil, err
	}

	activeUsers, err := s.UserRepo.CountActiveSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	completedOnboarding, err := s.OnboardingRepo.CountCompleted()
	if err != nil {
		return nil, err
	}

	completedQuizzes, err := s.SubmissionRepo.CountCompleted()
	if err != nil {
		return nil, err
	}

	totalRecommendations, err := s.RecommendationRepo.CountAll()
	if err != nil {
		return nil, err
	}

	return &AnalyticsResponse{
		TotalUsers:           totalUsers,
		ActiveLast7Days:      activeUsers,
		CompletedOnboarding:  completedOnboarding,
		CompletedQuizzes:     completedQuizzes,
		TotalRecommendations: totalRecommendations,
	}, nil
}
