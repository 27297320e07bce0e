package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"career_compass_backend/pkg/logger"
	"career_compass_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const generationLockTTL = 2 * time.Minute

type RecommendationService struct {
	RecommendationRepo *repository.RecommendationRepository
	OnboardingRepo     *repository.OnboardingRepository
	QuestionRepo       *repository.QuizQuestionRepository
	AnswerRepo         *repository.QuizAnswerRepository
	Generator          TextGenerator
	Redis              *redis.Client
}

func NewRecommendationService(
	recommendationRepo *repository.RecommendationRepository,
	onboardingRepo *repository.OnboardingRepository,
	questionRepo *repository.QuizQuestionRepository,
	answerRepo *repository.QuizAnswerRepository,
	generator TextGenerator,
	redisClient *redis.Client,
) *RecommendationService {
	return &RecommendationService{
		RecommendationRepo: recommendationRepo,
		OnboardingRepo:     onboardingRepo,
		QuestionRepo:       questionRepo,
		AnswerRepo:         answerRepo,
		Generator:          generator,
		Redis:              redisClient,
	}
}

type GenerateRequest struct {
	ForceRegenerate bool `json:"forceRegenerate"`
}

// aiRecommendation 约定的AI响应结构，字段名与提示词中的JSON契约一致
type aiRecommendation struct {
	CareerTitle       string          `json:"career_title"`
	CareerDescription string          `json:"career_description"`
	MatchScore        float64         `json:"match_score"`
	Reasoning         string          `json:"reasoning"`
	RequiredSkills    []string        `json:"required_skills"`
	GrowthPotential   string          `json:"growth_potential"`
	SalaryRange       string          `json:"salary_range"`
	WorkEnvironment   string          `json:"work_environment"`
	SkillGaps         []aiSkillGap    `json:"skill_gaps"`
	LearningRoadmap   []aiRoadmapItem `json:"learning_roadmap"`
}

type aiSkillGap struct {
	SkillName     string `json:"skill_name"`
	CurrentLevel  string `json:"current_level"`
	RequiredLevel string `json:"required_level"`
	Priority      string `json:"priority"`
	EstimatedTime string `json:"estimated_time"`
}

type aiRoadmapItem struct {
	Phase      string          `json:"phase"`
	Duration   string          `json:"duration"`
	Objectives []string        `json:"objectives"`
	Resources  json.RawMessage `json:"resources"`
}

// Generate 生成职业推荐
// 已有推荐且未要求重新生成时直接返回现有结果
// AI调用或解析失败时回退到基于专业关键词的内置推荐
func (s *RecommendationService) Generate(ctx context.Context, userID uint, force bool) ([]model.CareerRecommendation, error) {
	count, err := s.RecommendationRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if count > 0 && !force {
		return s.RecommendationRepo.FindByUser(userID)
	}

	release, err := s.acquireLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	profile, err := s.OnboardingRepo.FindByUserID(userID)
	if err != nil {
		profile = nil
	}

	recommendations, usedAI := s.generateWithAI(ctx, userID, profile)
	if !usedAI {
		recommendations = buildFallbackRecommendations(userID, profile)
		monitoring.GenerationCounter.WithLabelValues("fallback").Inc()
	} else {
		monitoring.GenerationCounter.WithLabelValues("ai").Inc()
	}

	if err := s.RecommendationRepo.ReplaceForUser(userID, recommendations); err != nil {
		return nil, err
	}

	return s.RecommendationRepo.FindByUser(userID)
}

// acquireLock 借助redis防止同一用户并发触发生成，未配置redis时跳过
func (s *RecommendationService) acquireLock(ctx context.Context, userID uint) (func(), error) {
	if s.Redis == nil {
		return func() {}, nil
	}

	key := fmt.Sprintf("career:generation:%d", userID)
	ok, err := s.Redis.SetNX(ctx, key, "1", generationLockTTL).Result()
	if err != nil {
		logger.Log.Warn("Redis lock unavailable, proceeding without it", zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		monitoring.GenerationCounter.WithLabelValues("locked").Inc()
		return nil, util.ErrGenerationInProgress
	}
	return func() {
		s.Redis.Del(context.Background(), key)
	}, nil
}

func (s *RecommendationService) generateWithAI(ctx context.Context, userID uint, profile *model.OnboardingProfile) ([]model.CareerRecommendation, bool) {
	if s.Generator == nil {
		return nil, false
	}

	prompt, err := s.buildPrompt(userID, profile)
	if err != nil {
		logger.Log.Error("Failed to build AI prompt", zap.Uint("userID", userID), zap.Error(err))
		return nil, false
	}

	text, err := s.Generator.Generate(ctx, "You are an expert career counselor.", prompt)
	if err != nil {
		logger.Log.Error("AI generation failed, using fallback", zap.Uint("userID", userID), zap.Error(err))
		return nil, false
	}

	parsed, err := parseRecommendations(text)
	if err != nil {
		logger.Log.Error("Failed to parse AI response, using fallback", zap.Uint("userID", userID), zap.Error(err))
		return nil, false
	}

	return toRecommendationModels(userID, parsed), true
}

// buildPrompt 汇总引导问卷和测评答案，拼装完整提示词
func (s *RecommendationService) buildPrompt(userID uint, profile *model.OnboardingProfile) (string, error) {
	summary := s.buildProfileSummary(userID, profile)
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze the following user profile and provide 3-5 HIGHLY SPECIFIC personalized career recommendations.

User Profile:
%s

IMPORTANT INSTRUCTIONS FOR CAREER TITLES:
- Be VERY SPECIFIC with career titles. Don't use generic terms like "Software Engineer" or "Accountant"
- For Computer Science/IT field: Use titles like "Backend Developer", "Frontend Developer", "Full Stack Developer", "DevOps Engineer", "Machine Learning Engineer", "Computer Vision Engineer", "Data Scientist", "Mobile App Developer", "Cloud Architect"
- For Accounting/Finance field: Use titles like "Tax Accountant", "Forensic Accountant", "Management Accountant", "Financial Analyst", "Auditor", "Bookkeeper", "Payroll Specialist"
- For Engineering fields: Use titles like "Structural Engineer", "Electrical Systems Engineer", "Power Systems Engineer", "Civil Infrastructure Engineer", "HVAC Engineer"
- For Business/Management: Use titles like "Business Analyst", "Operations Manager", "Product Manager", "HR Manager", "Marketing Manager"
- Match the specificity to the user's field of study and interests

For each career recommendation, provide:
1. SPECIFIC Career title (not generic)
2. Detailed description (2-3 sentences)
3. Match score (0-100) based on their profile
4. Reasoning for the recommendation
5. Required skills (list of 5-8 skills)
6. Growth potential (High/Medium/Low)
7. Salary range (e.g., "$60,000 - $90,000")
8. Work environment description
9. Top 5 skill gaps with:
   - Skill name
   - Current level (beginner/intermediate/advanced or "not present")
   - Required level (intermediate/advanced/expert)
   - Priority (high/medium/low)
   - Estimated time to acquire
10. Learning roadmap with 3-4 phases:
   - Phase name
   - Duration
   - Learning objectives (3-5 items)
   - Resources (courses, books, certifications)

Return ONLY a valid JSON array with this exact structure:
[
  {
    "career_title": "...",
    "career_description": "...",
    "match_score": 85,
    "reasoning": "...",
    "required_skills": ["skill1", "skill2"],
    "growth_potential": "High",
    "salary_range": "$...",
    "work_environment": "...",
    "skill_gaps": [
      {
        "skill_name": "...",
        "current_level": "...",
        "required_level": "...",
        "priority": "high",
        "estimated_time": "3 months"
      }
    ],
    "learning_roadmap": [
      {
        "phase": "Phase 1: Foundations",
        "duration": "3 months",
        "objectives": ["...", "..."],
        "resources": [{"type": "course", "name": "...", "provider": "..."}]
      }
    ]
  }
]`, string(summaryJSON)), nil
}

func (s *RecommendationService) buildProfileSummary(userID uint, profile *model.OnboardingProfile) map[string]interface{} {
	summary := map[string]interface{}{
		"personal":       map[string]interface{}{},
		"education":      map[string]interface{}{},
		"experience":     map[string]interface{}{},
		"skills":         map[string]interface{}{},
		"interests":      json.RawMessage("[]"),
		"career_goals":   "",
		"quiz_responses": map[string][]map[string]interface{}{},
	}

	if profile != nil {
		summary["personal"] = map[string]interface{}{
			"age":      profile.Age,
			"location": profile.Location,
		}
		summary["education"] = map[string]interface{}{
			"level":           profile.EducationLevel,
			"field":           profile.FieldOfStudy,
			"graduation_year": profile.GraduationYear,
		}
		summary["experience"] = map[string]interface{}{
			"years":        profile.YearsOfExperience,
			"current_role": profile.CurrentRole,
			"industry":     profile.Industry,
		}
		summary["skills"] = map[string]interface{}{
			"technical": rawOrEmptyArray(profile.TechnicalSkills),
			"soft":      rawOrEmptyArray(profile.SoftSkills),
		}
		summary["interests"] = rawOrEmptyArray(profile.Interests)
		summary["career_goals"] = profile.CareerGoals
	}

	// 按分区归组测评答案
	answers, err := s.AnswerRepo.FindByUser(userID)
	if err != nil {
		return summary
	}

	quizData := map[string][]map[string]interface{}{}
	for _, answer := range answers {
		question, err := s.QuestionRepo.FindByID(answer.QuestionID)
		if err != nil {
			continue
		}
		quizData[question.Section] = append(quizData[question.Section], map[string]interface{}{
			"question": question.QuestionText,
			"answer":   answer.Answer,
		})
	}
	summary["quiz_responses"] = quizData

	return summary
}

func rawOrEmptyArray(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("[]")
	}
	return raw
}

// parseRecommendations 解析AI返回的JSON数组，容忍markdown代码块包裹
func parseRecommendations(text string) ([]aiRecommendation, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[7:]
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[3:]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-3]
	}
	cleaned = strings.TrimSpace(cleaned)

	var parsed []aiRecommendation
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrAIResponseParse, err)
	}
	if len(parsed) == 0 {
		return nil, util.ErrAIResponseParse
	}
	for _, rec := range parsed {
		if rec.CareerTitle == "" {
			return nil, util.ErrAIResponseParse
		}
	}
	return parsed, nil
}

func toRecommendationModels(userID uint, parsed []aiRecommendation) []model.CareerRecommendation {
	recommendations := make([]model.CareerRecommendation, 0, len(parsed))
	for _, rec := range parsed {
		score := rec.MatchScore
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		rawRec, _ := json.Marshal(rec)

		m := model.CareerRecommendation{
			UserID:            userID,
			CareerTitle:       rec.CareerTitle,
			CareerDescription: rec.CareerDescription,
			MatchScore:        score,
			Reasoning:         rec.Reasoning,
			RequiredSkills:    mustMarshal(rec.RequiredSkills),
			GrowthPotential:   rec.GrowthPotential,
			SalaryRange:       rec.SalaryRange,
			WorkEnvironment:   rec.WorkEnvironment,
			AIAnalysis:        rawRec,
		}

		for _, gap := range rec.SkillGaps {
			m.SkillGaps = append(m.SkillGaps, model.SkillGap{
				SkillName:     gap.SkillName,
				CurrentLevel:  gap.CurrentLevel,
				RequiredLevel: gap.RequiredLevel,
				Priority:      model.GapPriority(gap.Priority),
				EstimatedTime: gap.EstimatedTime,
			})
		}

		// 路线图顺序以AI返回数组中的位置为准
		for i, phase := range rec.LearningRoadmap {
			resources := phase.Resources
			if len(resources) == 0 {
				resources = json.RawMessage("[]")
			}
			m.LearningRoadmaps = append(m.LearningRoadmaps, model.LearningRoadmap{
				Phase:      phase.Phase,
				Duration:   phase.Duration,
				Objectives: mustMarshal(phase.Objectives),
				Resources:  resources,
				Order:      i,
			})
		}

		recommendations = append(recommendations, m)
	}
	return recommendations
}

// GetRecommendations 返回用户全部推荐，按匹配度降序
func (s *RecommendationService) GetRecommendations(userID uint) ([]model.CareerRecommendation, error) {
	recommendations, err := s.RecommendationRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(recommendations) == 0 {
		return nil, util.ErrRecommendationNotFound
	}
	return recommendations, nil
}

func (s *RecommendationService) GetDetail(id string, userID uint) (*model.CareerRecommendation, error) {
	recommendation, err := s.RecommendationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRecommendationNotFound
		}
		return nil, err
	}
	if recommendation.UserID != userID {
		return nil, util.ErrRecommendationNotFound
	}
	return recommendation, nil
}

func (s *RecommendationService) GetSkillGaps(id string, userID uint) ([]model.SkillGap, error) {
	recommendation, err := s.GetDetail(id, userID)
	if err != nil {
		return nil, err
	}
	return recommendation.SkillGaps, nil
}

func (s *RecommendationService) GetRoadmap(id string, userID uint) ([]model.LearningRoadmap, error) {
	recommendation, err := s.GetDetail(id, userID)
	if err != nil {
		return nil, err
	}
	return recommendation.LearningRoadmaps, nil
}
