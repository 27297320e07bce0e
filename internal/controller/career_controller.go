package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CareerController struct {
	Service *service.RecommendationService
}

func NewCareerController(svc *service.RecommendationService) *CareerController {
	return &CareerController{Service: svc}
}

// @Summary 生成职业推荐
// @Description 已有推荐且未指定forceRegenerate时直接返回现有结果
// @Tags 职业推荐
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.GenerateRequest false "生成选项"
// @Success 200 {object} util.Response
// @Router /api/careers/generate [post]
func (c *CareerController) Generate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GenerateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	recommendations, err := c.Service.Generate(ctx.Request.Context(), user.UserID, req.ForceRegenerate)
	if err != nil {
		if errors.Is(err, util.ErrGenerationInProgress) {
			util.Error(ctx, http.StatusConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, recommendations)
}

// @Summary 获取职业推荐列表
// @Description 按匹配度降序返回，尚未生成过推荐时返回404
// @Tags 职业推荐
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/careers [get]
func (c *CareerController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	recommendations, err := c.Service.GetRecommendations(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrRecommendationNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, recommendations)
}

// @Summary 获取推荐详情
// @Tags 职业推荐
// @Produce json
// @Security BearerAuth
// @Param id path string true "推荐ID"
// @Success 200 {object} util.Response
// @Router /api/careers/{id} [get]
func (c *CareerController) Detail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	recommendation, err := c.Service.GetDetail(ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrRecommendationNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, recommendation)
}

// @Summary 获取推荐的技能差距
// @Tags 职业推荐
// @Produce json
// @Security BearerAuth
// @Param id path string true "推荐ID"
// @Success 200 {object} util.Response
// @Router /api/careers/{id}/skill-gaps [get]
func (c *CareerController) SkillGaps(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	gaps, err := c.Service.GetSkillGaps(ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrRecommendationNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gaps)
}

// @Summary 获取推荐的学习路线图
// @Description 阶段按生成时的顺序返回
// @Tags 职业推荐
// @Produce json
// @Security BearerAuth
// @Param id path string true "推荐ID"
// @Success 200 {object} util.Response
// @Router /api/careers/{id}/roadmap [get]
func (c *CareerController) Roadmap(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	roadmap, err := c.Service.GetRoadmap(ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrRecommendationNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, roadmap)
}
