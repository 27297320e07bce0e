package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"encoding/json"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	QuestionRepo   *repository.QuizQuestionRepository
	AnswerRepo     *repository.QuizAnswerRepository
	SubmissionRepo *repository.QuizSubmissionRepository
	OnboardingRepo *repository.OnboardingRepository
}

func NewQuizService(
	questionRepo *repository.QuizQuestionRepository,
	answerRepo *repository.QuizAnswerRepository,
	submissionRepo *repository.QuizSubmissionRepository,
	onboardingRepo *repository.OnboardingRepository,
) *QuizService {
	return &QuizService{
		QuestionRepo:   questionRepo,
		AnswerRepo:     answerRepo,
		SubmissionRepo: submissionRepo,
		OnboardingRepo: onboardingRepo,
	}
}

type QuizAnswerRequest struct {
	QuestionID uint            `json:"questionId" binding:"required"`
	Answer     json.RawMessage `json:"answer" binding:"required"`
}

type QuizProgressResponse struct {
	TotalQuestions     int      `json:"totalQuestions"`
	AnsweredQuestions  int      `json:"answeredQuestions"`
	ProgressPercentage float64  `json:"progressPercentage"`
	CompletedSections  []string `json:"completedSections"`
	IsCompleted        bool     `json:"isCompleted"`
}

type QuestionCreateRequest struct {
	Section      string          `json:"section" binding:"required"`
	QuestionText string          `json:"questionText" binding:"required"`
	QuestionType string          `json:"questionType" binding:"required,oneof=multiple_choice scale text multi_select"`
	Options      json.RawMessage `json:"options"`
	FieldOfStudy *string         `json:"fieldOfStudy"`
	Order        int             `json:"order"`
}

// QuestionUpdateRequest 所有字段可选，未提供的字段保持原值
type QuestionUpdateRequest struct {
	Section      *string         `json:"section"`
	QuestionText *string         `json:"questionText"`
	QuestionType *string         `json:"questionType" binding:"omitempty,oneof=multiple_choice scale text multi_select"`
	Options      json.RawMessage `json:"options"`
	FieldOfStudy *string         `json:"fieldOfStudy"`
	Order        *int            `json:"order"`
	IsActive     *bool           `json:"isActive"`
}

// GetQuestionsForUser 按用户专业过滤题目
// 未填写引导问卷或未填专业时只返回通用题目
func (s *QuizService) GetQuestionsForUser(userID uint, section string) ([]model.QuizQuestion, error) {
	fieldOfStudy := ""
	profile, err := s.OnboardingRepo.FindByUserID(userID)
	if err == nil {
		fieldOfStudy = profile.FieldOfStudy
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.QuestionRepo.FindActiveForField(fieldOfStudy, section)
}

// SaveAnswer 保存或覆盖单题答案，随后重算提交进度
func (s *QuizService) SaveAnswer(userID uint, req *QuizAnswerRequest) (*model.QuizAnswer, error) {
	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if err := validateAnswerShape(question.QuestionType, req.Answer); err != nil {
		return nil, err
	}

	answer := &model.QuizAnswer{
		UserID:     userID,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
	}
	if err := s.AnswerRepo.Upsert(answer); err != nil {
		return nil, err
	}

	if err := s.updateProgress(userID); err != nil {
		return nil, err
	}

	return answer, nil
}

func (s *QuizService) GetAnswers(userID uint) ([]model.QuizAnswer, error) {
	return s.AnswerRepo.FindByUser(userID)
}

// GetOrCreateSubmission 惰性创建进度记录
// total_questions 在创建时对全部启用题目做快照，之后不再随题库变化
func (s *QuizService) GetOrCreateSubmission(userID uint) (*model.QuizSubmission, error) {
	submission, err := s.SubmissionRepo.FindByUser(userID)
	if err == nil {
		return submission, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	total, err := s.QuestionRepo.CountActive()
	if err != nil {
		return nil, err
	}

	submission = &model.QuizSubmission{
		UserID:            userID,
		TotalQuestions:    int(total),
		CompletedSections: json.RawMessage("[]"),
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *QuizService) GetProgress(userID uint) (*QuizProgressResponse, error) {
	submission, err := s.GetOrCreateSubmission(userID)
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if submission.TotalQuestions > 0 {
		percentage = float64(submission.AnsweredQuestions) / float64(submission.TotalQuestions) * 100
		percentage = math.Round(percentage*100) / 100
	}

	sections := []string{}
	if len(submission.CompletedSections) > 0 {
		_ = json.Unmarshal(submission.CompletedSections, &sections)
	}

	return &QuizProgressResponse{
		TotalQuestions:     submission.TotalQuestions,
		AnsweredQuestions:  submission.AnsweredQuestions,
		ProgressPercentage: percentage,
		CompletedSections:  sections,
		IsCompleted:        submission.IsCompleted,
	}, nil
}

// Submit 提交测评，要求已作答题数达到阈值，重复提交报错
func (s *QuizService) Submit(userID uint) (*model.QuizSubmission, error) {
	submission, err := s.GetOrCreateSubmission(userID)
	if err != nil {
		return nil, err
	}

	if submission.IsCompleted {
		return nil, util.ErrQuizAlreadyCompleted
	}

	if float64(submission.AnsweredQuestions) < float64(submission.TotalQuestions)*util.QuizSubmitThreshold {
		return nil, util.ErrInsufficientProgress
	}

	now := time.Now()
	submission.IsCompleted = true
	submission.SubmittedAt = &now

	if err := s.SubmissionRepo.Save(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *QuizService) updateProgress(userID uint) error {
	submission, err := s.GetOrCreateSubmission(userID)
	if err != nil {
		return err
	}

	answered, err := s.AnswerRepo.CountByUser(userID)
	if err != nil {
		return err
	}

	sections, err := s.AnswerRepo.DistinctAnsweredSections(userID)
	if err != nil {
		return err
	}
	if sections == nil {
		sections = []string{}
	}

	submission.AnsweredQuestions = int(answered)
	submission.CompletedSections = mustMarshal(sections)

	return s.SubmissionRepo.Save(submission)
}

// validateAnswerShape 校验答案JSON与题型匹配
// multi_select 需要字符串数组，scale 接受数字或字符串，其余题型为字符串
func validateAnswerShape(questionType model.QuestionType, answer json.RawMessage) error {
	switch questionType {
	case model.QuestionMultiSelect:
		var items []string
		if err := json.Unmarshal(answer, &items); err != nil {
			return util.ErrAnswerTypeMismatch
		}
	case model.QuestionScale:
		var num float64
		if err := json.Unmarshal(answer, &num); err != nil {
			var str string
			if err := json.Unmarshal(answer, &str); err != nil {
				return util.ErrAnswerTypeMismatch
			}
		}
	case model.QuestionMultipleChoice, model.QuestionText:
		var str string
		if err := json.Unmarshal(answer, &str); err != nil {
			return util.ErrAnswerTypeMismatch
		}
	default:
		return util.ErrAnswerTypeMismatch
	}
	return nil
}

// CreateQuestion 管理端新增题目
func (s *QuizService) CreateQuestion(req *QuestionCreateRequest) (*model.QuizQuestion, error) {
	question := &model.QuizQuestion{
		Section:      req.Section,
		QuestionText: req.QuestionText,
		QuestionType: model.QuestionType(req.QuestionType),
		Options:      req.Options,
		FieldOfStudy: req.FieldOfStudy,
		Order:        req.Order,
		IsActive:     true,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListAllQuestions 管理端列出全部题目，包括已下架的
func (s *QuizService) ListAllQuestions() ([]model.QuizQuestion, error) {
	return s.QuestionRepo.FindAll()
}

// UpdateQuestion 管理端增量更新题目
func (s *QuizService) UpdateQuestion(id uint, req *QuestionUpdateRequest) (*model.QuizQuestion, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if req.Section != nil {
		question.Section = *req.Section
	}
	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.QuestionType != nil {
		question.QuestionType = model.QuestionType(*req.QuestionType)
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	if req.FieldOfStudy != nil {
		question.FieldOfStudy = req.FieldOfStudy
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := s.QuestionRepo.Save(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeactivateQuestion 下架题目，保留历史答案
func (s *QuizService) DeactivateQuestion(id uint) error {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	question.IsActive = false
	return s.QuestionRepo.Save(question)
}
