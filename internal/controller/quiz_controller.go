package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 获取测评题目
// @Description 按当前用户的专业过滤，未填写专业时只返回通用题目
// @Tags 职业测评
// @Produce json
// @Security BearerAuth
// @Param section query string false "按分区过滤"
// @Success 200 {object} util.Response
// @Router /api/quiz/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questions, err := c.Service.GetQuestionsForUser(user.UserID, ctx.Query("section"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary 提交单题答案
// @Description 同一题重复作答会覆盖旧答案并重算进度
// @Tags 职业测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuizAnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/quiz/answers [post]
func (c *QuizController) SaveAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.SaveAnswer(user.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		if errors.Is(err, util.ErrAnswerTypeMismatch) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// @Summary 获取当前用户全部答案
// @Tags 职业测评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/quiz/answers [get]
func (c *QuizController) GetAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	answers, err := c.Service.GetAnswers(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// @Summary 获取测评进度
// @Tags 职业测评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/quiz/progress [get]
func (c *QuizController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.Service.GetProgress(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 获取提交状态
// @Tags 职业测评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/quiz/submission [get]
func (c *QuizController) GetSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.Service.GetOrCreateSubmission(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// @Summary 提交测评
// @Description 要求至少作答70%的题目，重复提交返回400
// @Tags 职业测评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.Service.Submit(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrQuizAlreadyCompleted) || errors.Is(err, util.ErrInsufficientProgress) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// @Summary 新增测评题目
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionCreateRequest true "题目信息"
// @Success 201 {object} util.Response
// @Router /api/admin/quiz/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.CreateQuestion(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary 获取全部测评题目
// @Description 管理端题库视图，包括已下架题目
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/quiz/questions [get]
func (c *QuizController) ListAllQuestions(ctx *gin.Context) {
	questions, err := c.Service.ListAllQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary 更新测评题目
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body service.QuestionUpdateRequest true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/admin/quiz/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.UpdateQuestion(uint(id), &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary 下架测评题目
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quiz/questions/{id} [delete]
func (c *QuizController) DeactivateQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeactivateQuestion(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
