package controller

import (
	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SlideController struct {
	SlideService *service.SlideService
}

func NewSlideController(slideService *service.SlideService) *SlideController {
	return &SlideController{SlideService: slideService}
}

// Generate godoc
// @Summary 基于调研内容生成PPT结构
// @Description 模型输出解析失败时返回200，body里带原文和error字段
// @Tags PPT结构
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=service.GenerateResult}
// @Failure 400 {object} util.Response "调研未完成"
// @Failure 504 {object} util.Response "上游超时"
// @Router /api/cursos/{id}/estructuras/{n} [post]
func (c *SlideController) Generate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	result, err := c.SlideService.Generate(ctx.Request.Context(), id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// RawStructureRequest 手工编辑后的结构JSON
type RawStructureRequest struct {
	Raw string `json:"json_estructura" binding:"required"`
}

// Validate godoc
// @Summary 校验手工编辑的结构JSON
// @Tags PPT结构
// @Accept  json
// @Produce json
// @Param   id   path int                 true "课程ID"
// @Param   n    path int                 true "会话编号"
// @Param   body body RawStructureRequest true "结构JSON"
// @Success 200 {object} util.Response{data=model.SlideDeck}
// @Failure 422 {object} util.Response "JSON无效或tipo未知"
// @Router /api/cursos/{id}/estructuras/{n}/validar [post]
func (c *SlideController) Validate(ctx *gin.Context) {
	if _, ok := parseID(ctx, "id"); !ok {
		return
	}
	if _, ok := parseSession(ctx); !ok {
		return
	}

	var req RawStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deck, err := c.SlideService.Validate(req.Raw)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, deck)
}

// Save godoc
// @Summary 保存结构（服务端重算派生字段）
// @Tags PPT结构
// @Accept  json
// @Produce json
// @Param   id   path int                 true "课程ID"
// @Param   n    path int                 true "会话编号"
// @Param   body body RawStructureRequest true "结构JSON"
// @Success 200 {object} util.Response{data=model.SlideStructure}
// @Failure 401 {object} util.Response "需要登录"
// @Failure 422 {object} util.Response "结构无效"
// @Router /api/cursos/{id}/estructuras/{n}/guardar [post]
func (c *SlideController) Save(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}

	var req RawStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	structure, err := c.SlideService.Save(ctx.Request.Context(), id, n, req.Raw, userID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, structure)
}

// List godoc
// @Summary 列出课程已保存的全部结构
// @Tags PPT结构
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.SlideStructure}
// @Router /api/cursos/{id}/estructuras [get]
func (c *SlideController) List(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	structures, err := c.SlideService.ListByCourse(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, structures)
}

// Get godoc
// @Summary 读取已保存的结构
// @Tags PPT结构
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=model.SlideStructure}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/estructuras/{n} [get]
func (c *SlideController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	structure, err := c.SlideService.Get(id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, structure)
}
