package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/pkg/logger"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.OnboardingProfile{},
		&model.QuizQuestion{},
		&model.QuizAnswer{},
		&model.QuizSubmission{},
		&model.CareerRecommendation{},
		&model.SkillGap{},
		&model.LearningRoadmap{},
		&model.LearningMaterial{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:    email,
		Password: "hashed",
		FullName: "Test User",
		Role:     model.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedQuestion(t *testing.T, db *gorm.DB, section string, qType model.QuestionType, fieldOfStudy *string, order int) *model.QuizQuestion {
	t.Helper()

	question := &model.QuizQuestion{
		Section:      section,
		QuestionText: "question " + section,
		QuestionType: qType,
		Options:      json.RawMessage(`["a","b","c"]`),
		FieldOfStudy: fieldOfStudy,
		Order:        order,
		IsActive:     true,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}
	return question
}

func newOnboardingService(db *gorm.DB) *OnboardingService {
	return NewOnboardingService(
		repository.NewOnboardingRepository(db),
		repository.NewRecommendationRepository(db),
	)
}

func newQuizService(db *gorm.DB) *QuizService {
	return NewQuizService(
		repository.NewQuizQuestionRepository(db),
		repository.NewQuizAnswerRepository(db),
		repository.NewQuizSubmissionRepository(db),
		repository.NewOnboardingRepository(db),
	)
}

func newRecommendationService(db *gorm.DB, generator TextGenerator) *RecommendationService {
	return NewRecommendationService(
		repository.NewRecommendationRepository(db),
		repository.NewOnboardingRepository(db),
		repository.NewQuizQuestionRepository(db),
		repository.NewQuizAnswerRepository(db),
		generator,
		nil,
	)
}

func newMaterialService(db *gorm.DB) *MaterialService {
	return NewMaterialService(
		repository.NewMaterialRepository(db),
		repository.NewOnboardingRepository(db),
	)
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func intPtr(n int) *int {
	return &n
}
