package repository

import (
	"career_compass_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type QuizQuestionRepository struct {
	DB *gorm.DB
}

func NewQuizQuestionRepository(db *gorm.DB) *QuizQuestionRepository {
	return &QuizQuestionRepository{DB: db}
}

// FindActiveForField 返回通用题目加上指定专业的定向题目
// fieldOfStudy 为空时只返回通用题目，section 非空时只返回该分区
func (r *QuizQuestionRepository) FindActiveForField(fieldOfStudy, section string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	query := r.DB.Where("is_active = ?", true)
	if fieldOfStudy == "" {
		query = query.Where("field_of_study IS NULL")
	} else {
		query = query.Where("field_of_study IS NULL OR field_of_study = ?", fieldOfStudy)
	}
	if section != "" {
		query = query.Where("section = ?", section)
	}
	err := query.Order("`order` ASC").Find(&questions).Error
	return questions, err
}

// FindAll 返回全部题目（含已下架），供管理端维护题库
func (r *QuizQuestionRepository) FindAll() ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Order("section ASC").Order("`order` ASC").Find(&questions).Error
	return questions, err
}

func (r *QuizQuestionRepository) FindByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.First(&question, id).Error
	return &question, err
}

// CountActive 统计全部启用题目，不做专业过滤
func (r *QuizQuestionRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *QuizQuestionRepository) Create(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizQuestionRepository) Save(question *model.QuizQuestion) error {
	return r.DB.Save(question).Error
}

func (r *QuizQuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.QuizQuestion{}, id).Error
}

type QuizAnswerRepository struct {
	DB *gorm.DB
}

func NewQuizAnswerRepository(db *gorm.DB) *QuizAnswerRepository {
	return &QuizAnswerRepository{DB: db}
}

// Upsert 同一用户对同一题目的重复作答覆盖旧答案
func (r *QuizAnswerRepository) Upsert(answer *model.QuizAnswer) error {
	var existing model.QuizAnswer
	err := r.DB.Where("user_id = ? AND question_id = ?", answer.UserID, answer.QuestionID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.DB.Create(answer).Error
		}
		return err
	}

	existing.Answer = answer.Answer
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	*answer = existing
	return nil
}

func (r *QuizAnswerRepository) FindByUser(userID uint) ([]model.QuizAnswer, error) {
	var answers []model.QuizAnswer
	err := r.DB.Where("user_id = ?", userID).Find(&answers).Error
	return answers, err
}

// CountByUser 统计用户的全部答案行数
// 题目被下架后其答案仍然计入进度，否则已答用户可能永远达不到提交门槛
func (r *QuizAnswerRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAnswer{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DistinctAnsweredSections 返回用户已作答过的题目分区
func (r *QuizAnswerRepository) DistinctAnsweredSections(userID uint) ([]string, error) {
	var sections []string
	err := r.DB.Model(&model.QuizAnswer{}).
		Joins("JOIN quiz_questions ON quiz_questions.id = quiz_answers.question_id").
		Where("quiz_answers.user_id = ?", userID).
		Distinct().
		Pluck("quiz_questions.section", &sections).Error
	return sections, err
}

func (r *QuizAnswerRepository) DeleteByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.QuizAnswer{}).Error
}

type QuizSubmissionRepository struct {
	DB *gorm.DB
}

func NewQuizSubmissionRepository(db *gorm.DB) *QuizSubmissionRepository {
	return &QuizSubmissionRepository{DB: db}
}

// FindByUser 返回用户最近创建的进度记录
func (r *QuizSubmissionRepository) FindByUser(userID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&submission).Error
	return &submission, err
}

func (r *QuizSubmissionRepository) Create(submission *model.QuizSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *QuizSubmissionRepository) Save(submission *model.QuizSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *QuizSubmissionRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizSubmission{}).Where("is_completed = ?", true).Count(&count).Error
	return count, err
}
