package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "注册信息"
// @Success 201 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Register(&req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Login(&req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
			return
		}
		if errors.Is(err, util.ErrAccountDisabled) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.RefreshRequest true "refresh token"
// @Success 200 {object} util.Response
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req service.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Refresh(&req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) || errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(ctx)
			return
		}
		if errors.Is(err, util.ErrAccountDisabled) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 获取当前登录用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	u, err := c.Service.GetCurrentUser(user.UserID)
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
