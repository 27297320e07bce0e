package repository

import (
	"career_compass_backend/internal/model"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// ReplaceForUser 在一个事务内删除用户现有推荐并写入新的一批
// 推荐与其技能差距和学习路线图作为整体落库，要么全部成功要么全部回滚
func (r *RecommendationRepository) ReplaceForUser(userID uint, recommendations []model.CareerRecommendation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteForUser(tx, userID); err != nil {
			return err
		}
		for i := range recommendations {
			if err := tx.Create(&recommendations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByUser 级联删除用户的推荐及其子记录
func (r *RecommendationRepository) DeleteByUser(userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteForUser(tx, userID)
	})
}

func deleteForUser(tx *gorm.DB, userID uint) error {
	var ids []string
	if err := tx.Model(&model.CareerRecommendation{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("recommendation_id IN ?", ids).Delete(&model.SkillGap{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recommendation_id IN ?", ids).Delete(&model.LearningRoadmap{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&model.CareerRecommendation{}).Error
}

func (r *RecommendationRepository) FindByUser(userID uint) ([]model.CareerRecommendation, error) {
	var recommendations []model.CareerRecommendation
	err := r.DB.
		Preload("SkillGaps").
		Preload("LearningRoadmaps", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` ASC")
		}).
		Where("user_id = ?", userID).
		Order("match_score DESC").
		Find(&recommendations).Error
	return recommendations, err
}

func (r *RecommendationRepository) FindByID(id string) (*model.CareerRecommendation, error) {
	var recommendation model.CareerRecommendation
	err := r.DB.
		Preload("SkillGaps").
		Preload("LearningRoadmaps", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` ASC")
		}).
		Where("id = ?", id).
		First(&recommendation).Error
	return &recommendation, err
}

func (r *RecommendationRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CareerRecommendation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// FindSkillGapsByUser 汇总用户所有推荐下的技能差距
func (r *RecommendationRepository) FindSkillGapsByUser(userID uint) ([]model.SkillGap, error) {
	var gaps []model.SkillGap
	err := r.DB.
		Joins("JOIN career_recommendations ON career_recommendations.id = skill_gaps.recommendation_id").
		Where("career_recommendations.user_id = ? AND career_recommendations.deleted_at IS NULL", userID).
		Find(&gaps).Error
	return gaps, err
}

func (r *RecommendationRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.CareerRecommendation{}).Count(&count).Error
	return count, err
}
