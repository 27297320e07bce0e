package controller

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	Service *service.OnboardingService
}

func NewOnboardingController(svc *service.OnboardingService) *OnboardingController {
	return &OnboardingController{Service: svc}
}

// @Summary 保存引导问卷
// @Description 创建或增量更新当前用户的引导问卷
// @Tags 引导问卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.OnboardingUpdateRequest true "问卷字段"
// @Success 200 {object} util.Response
// @Router /api/onboarding [put]
func (c *OnboardingController) Upsert(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.OnboardingUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.Service.UpsertProfile(user.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary 获取引导问卷
// @Description 未填写过问卷时返回空白画像而非404，便于前端直接渲染表单
// @Tags 引导问卷
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/onboarding [get]
func (c *OnboardingController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.Service.GetProfile(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.Success(ctx, &model.OnboardingProfile{UserID: user.UserID})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary 获取画像完成度
// @Tags 引导问卷
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/onboarding/completeness [get]
func (c *OnboardingController) Completeness(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.GetCompleteness(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.Success(ctx, &service.CompletenessResponse{})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}
