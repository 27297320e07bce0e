package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	UserService *service.UserService
}

func NewAdminController(userService *service.UserService) *AdminController {
	return &AdminController{UserService: userService}
}

// @Summary 获取用户列表
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	users, total, err := c.UserService.ListUsers(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// @Summary 启用或禁用用户
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param body body setActiveRequest true "状态"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/active [put]
func (c *AdminController) SetUserActive(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req setActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetUserActive(uint(id), *req.IsActive)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// @Summary 获取运营指标
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/analytics [get]
func (c *AdminController) Analytics(ctx *gin.Context) {
	analytics, err := c.UserService.GetAnalytics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, analytics)
}
