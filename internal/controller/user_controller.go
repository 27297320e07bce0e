package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	u, err := c.Service.GetUser(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, u)
}

// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileUpdateRequest true "资料"
// @Success 200 {object} util.Response
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	u, err := c.Service.UpdateProfile(user.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, u)
}
