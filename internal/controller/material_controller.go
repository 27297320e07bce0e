package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	Service *service.MaterialService
}

func NewMaterialController(svc *service.MaterialService) *MaterialController {
	return &MaterialController{Service: svc}
}

// @Summary 获取学习资源列表
// @Description 按用户专业附带定向资源，支持分类、难度和免费过滤
// @Tags 学习资源
// @Produce json
// @Security BearerAuth
// @Param category query string false "分类"
// @Param level query string false "难度"
// @Param freeOnly query bool false "仅免费"
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MaterialListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	materials, total, err := c.Service.ListForUser(user.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	util.Success(ctx, util.PageResponse{
		List:  materials,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}

// @Summary 获取学习资源详情
// @Tags 学习资源
// @Produce json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [get]
func (c *MaterialController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	material, err := c.Service.GetMaterial(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, material)
}

// @Summary 新增学习资源
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MaterialCreateRequest true "资源信息"
// @Success 201 {object} util.Response
// @Router /api/admin/materials [post]
func (c *MaterialController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MaterialCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.Service.CreateMaterial(user.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, material)
}

// @Summary 更新学习资源
// @Tags 管理端
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Param body body service.MaterialUpdateRequest true "资源信息"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [put]
func (c *MaterialController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.MaterialUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.Service.UpdateMaterial(uint(id), &req)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, material)
}

// @Summary 下架学习资源
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [delete]
func (c *MaterialController) Deactivate(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeactivateMaterial(uint(id)); err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
