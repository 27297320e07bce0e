package repository

import (
	"career_compass_backend/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.CareerRecommendation{},
		&model.SkillGap{},
		&model.LearningRoadmap{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedRecommendation(t *testing.T, repo *RecommendationRepository, userID uint, title string, score float64) {
	t.Helper()

	recs := []model.CareerRecommendation{
		{
			UserID:      userID,
			CareerTitle: title,
			MatchScore:  score,
			SkillGaps: []model.SkillGap{
				{SkillName: "Go", RequiredLevel: "advanced", Priority: model.GapPriorityHigh},
			},
			LearningRoadmaps: []model.LearningRoadmap{
				{Phase: "Phase 2", Order: 1},
				{Phase: "Phase 1", Order: 0},
			},
		},
	}
	if err := repo.ReplaceForUser(userID, recs); err != nil {
		t.Fatalf("ReplaceForUser: %v", err)
	}
}

func TestReplaceForUserDeletesChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)

	seedRecommendation(t, repo, 1, "Backend Developer", 80)
	seedRecommendation(t, repo, 1, "Data Analyst", 75)

	recs, err := repo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(recs) != 1 || recs[0].CareerTitle != "Data Analyst" {
		t.Fatalf("replace did not overwrite: %+v", recs)
	}

	// 旧推荐的技能差距不应再可见
	var gaps []model.SkillGap
	if err := db.Find(&gaps).Error; err != nil {
		t.Fatalf("load gaps: %v", err)
	}
	if len(gaps) != 1 {
		t.Fatalf("got %d visible skill gaps, want 1", len(gaps))
	}
}

func TestReplaceForUserKeepsOtherUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)

	seedRecommendation(t, repo, 1, "Backend Developer", 80)
	seedRecommendation(t, repo, 2, "Auditor", 70)

	count, err := repo.CountByUser(1)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("user 1 count = %d, want 1", count)
	}
}

func TestFindByUserOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)

	recs := []model.CareerRecommendation{
		{UserID: 1, CareerTitle: "Low", MatchScore: 55},
		{UserID: 1, CareerTitle: "High", MatchScore: 92, LearningRoadmaps: []model.LearningRoadmap{
			{Phase: "Phase 2", Order: 1},
			{Phase: "Phase 1", Order: 0},
		}},
	}
	if err := repo.ReplaceForUser(1, recs); err != nil {
		t.Fatalf("ReplaceForUser: %v", err)
	}

	found, err := repo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(found) != 2 || found[0].CareerTitle != "High" {
		t.Fatalf("not ordered by match score: %+v", found)
	}
	roadmap := found[0].LearningRoadmaps
	if len(roadmap) != 2 || roadmap[0].Phase != "Phase 1" {
		t.Fatalf("roadmap not ordered by position: %+v", roadmap)
	}
}

func TestDeleteByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)

	seedRecommendation(t, repo, 1, "Backend Developer", 80)

	if err := repo.DeleteByUser(1); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}

	count, err := repo.CountByUser(1)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}
