package service

import (
	"career_compass_backend/internal/model"
	"errors"
	"testing"

	"career_compass_backend/internal/util"
)

func TestUpsertProfileCreatesAndScores(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	profile, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Age:            intPtr(22),
		Gender:         strPtr("female"),
		Location:       strPtr("Berlin"),
		EducationLevel: strPtr("Bachelor"),
		FieldOfStudy:   strPtr("Computer Science"),
		Institution:    strPtr("TU Berlin"),
		GraduationYear: intPtr(2024),
	})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	// 14个跟踪字段中填写了7个
	if profile.ProfileCompleteness != 50 {
		t.Fatalf("completeness = %d, want 50", profile.ProfileCompleteness)
	}
	if profile.IsCompleted {
		t.Fatalf("profile should not be completed yet")
	}
}

func TestUpsertProfilePartialUpdatePreservesFields(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	if _, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Location:     strPtr("Berlin"),
		FieldOfStudy: strPtr("Finance"),
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	profile, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Gender: strPtr("male"),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if profile.Location != "Berlin" || profile.FieldOfStudy != "Finance" {
		t.Fatalf("earlier fields lost: location=%q field=%q", profile.Location, profile.FieldOfStudy)
	}
	if profile.Gender != "male" {
		t.Fatalf("gender not applied: %q", profile.Gender)
	}
}

func TestCompletenessCountsExplicitZeroExperience(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	profile, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		YearsOfExperience: intPtr(0),
	})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	// 0年工作经验是有效值，1/14 = 7
	if profile.ProfileCompleteness != 7 {
		t.Fatalf("completeness = %d, want 7", profile.ProfileCompleteness)
	}
}

func TestCompletenessFullProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	profile, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Age:               intPtr(25),
		Gender:            strPtr("other"),
		Location:          strPtr("Lagos"),
		EducationLevel:    strPtr("Master"),
		FieldOfStudy:      strPtr("Data Science"),
		Institution:       strPtr("UNILAG"),
		GraduationYear:    intPtr(2023),
		YearsOfExperience: intPtr(2),
		CurrentRole:       strPtr("Analyst"),
		Industry:          strPtr("Fintech"),
		TechnicalSkills:   []string{"Python", "SQL"},
		SoftSkills:        []string{"Communication"},
		Interests:         []string{"Machine Learning"},
		CareerGoals:       strPtr("Become a data scientist"),
	})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	if profile.ProfileCompleteness != 100 {
		t.Fatalf("completeness = %d, want 100", profile.ProfileCompleteness)
	}
}

func TestIsCompletedLatches(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	profile, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		StepCompleted: intPtr(4),
	})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if !profile.IsCompleted {
		t.Fatalf("step 4 should mark profile completed")
	}

	// 后续更新不会回退完成状态
	profile, err = svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		StepCompleted: intPtr(2),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !profile.IsCompleted {
		t.Fatalf("completed flag must not regress")
	}
	if profile.StepCompleted != 4 {
		t.Fatalf("step must not regress, got %d", profile.StepCompleted)
	}
}

func TestUpsertInvalidatesRecommendations(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	rec := model.CareerRecommendation{
		UserID:      user.ID,
		CareerTitle: "Backend Developer",
		SkillGaps: []model.SkillGap{
			{SkillName: "Go", RequiredLevel: "advanced", Priority: model.GapPriorityHigh},
		},
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed recommendation: %v", err)
	}

	if _, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Location: strPtr("Paris"),
	}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	var recCount, gapCount int64
	db.Model(&model.CareerRecommendation{}).Where("user_id = ?", user.ID).Count(&recCount)
	db.Model(&model.SkillGap{}).Count(&gapCount)
	if recCount != 0 || gapCount != 0 {
		t.Fatalf("recommendations not invalidated: recs=%d gaps=%d", recCount, gapCount)
	}
}

func TestCompletenessRoundsHalfUp(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	profile, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Gender:         strPtr("female"),
		Location:       strPtr("Berlin"),
		EducationLevel: strPtr("Bachelor"),
		FieldOfStudy:   strPtr("Computer Science"),
	})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	// 4/14 = 28.57，四舍五入为29而不是截断为28
	if profile.ProfileCompleteness != 29 {
		t.Fatalf("completeness = %d, want 29", profile.ProfileCompleteness)
	}
}

func TestCompletenessMonotonicUnderAdditiveUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	steps := []*OnboardingUpdateRequest{
		{Gender: strPtr("male")},
		{Location: strPtr("Nairobi")},
		{EducationLevel: strPtr("Bachelor")},
		{FieldOfStudy: strPtr("Economics")},
		{YearsOfExperience: intPtr(0)},
		{TechnicalSkills: []string{"Excel"}},
		{CareerGoals: strPtr("Become an analyst")},
	}

	// 只增不减的更新序列下完成度单调不降
	previous := 0
	for i, req := range steps {
		profile, err := svc.UpsertProfile(user.ID, req)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if profile.ProfileCompleteness < previous {
			t.Fatalf("step %d: completeness dropped from %d to %d", i, previous, profile.ProfileCompleteness)
		}
		if profile.ProfileCompleteness > 100 {
			t.Fatalf("step %d: completeness out of range: %d", i, profile.ProfileCompleteness)
		}
		previous = profile.ProfileCompleteness
	}
}

func TestUpsertRollsBackWhenInvalidationFails(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)
	user := seedUser(t, db, "a@example.com")

	rec := model.CareerRecommendation{
		UserID:      user.ID,
		CareerTitle: "Backend Developer",
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed recommendation: %v", err)
	}

	// 让推荐作废步骤失败，整次写入应该回滚而不是带着旧推荐返回成功
	if err := db.Migrator().DropTable(&model.SkillGap{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.UpsertProfile(user.ID, &OnboardingUpdateRequest{
		Location: strPtr("Paris"),
	})
	if err == nil {
		t.Fatalf("expected error when invalidation fails")
	}

	var profileCount, recCount int64
	db.Model(&model.OnboardingProfile{}).Where("user_id = ?", user.ID).Count(&profileCount)
	db.Model(&model.CareerRecommendation{}).Where("user_id = ?", user.ID).Count(&recCount)
	if profileCount != 0 {
		t.Fatalf("profile write not rolled back: count = %d", profileCount)
	}
	if recCount != 1 {
		t.Fatalf("recommendation unexpectedly deleted: count = %d", recCount)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newOnboardingService(db)

	_, err := svc.GetProfile(999)
	if !errors.Is(err, util.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}
