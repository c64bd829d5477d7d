package controller

import (
	"silabo_backend/internal/model"
	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResearchController struct {
	ResearchService *service.ResearchService
}

func NewResearchController(researchService *service.ResearchService) *ResearchController {
	return &ResearchController{ResearchService: researchService}
}

// ResearchRequest 生成调研的请求体
type ResearchRequest struct {
	SessionNumber int    `json:"numero_sesion" binding:"required,min=1"`
	Backend       string `json:"backend" binding:"required"`
}

// Generate godoc
// @Summary 为一个会话生成调研内容
// @Tags 调研
// @Accept  json
// @Produce json
// @Param   id   path int             true "课程ID"
// @Param   body body ResearchRequest true "会话与后端"
// @Success 200 {object} util.Response{data=model.SessionResearch}
// @Failure 400 {object} util.Response "后端未知或评审未批准"
// @Failure 409 {object} util.Response "该会话已有生成进行中"
// @Router /api/cursos/{id}/investigacion [post]
func (c *ResearchController) Generate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req ResearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	research, err := c.ResearchService.Research(ctx.Request.Context(), id, req.SessionNumber, model.ResearchBackend(req.Backend))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, research)
}

// List godoc
// @Summary 课程全部会话的调研记录
// @Tags 调研
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.SessionResearch}
// @Router /api/cursos/{id}/investigacion [get]
func (c *ResearchController) List(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	list, err := c.ResearchService.ListByCourse(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Get godoc
// @Summary 单个会话的调研记录
// @Tags 调研
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=model.SessionResearch}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/investigacion/{n} [get]
func (c *ResearchController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	research, err := c.ResearchService.Get(id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, research)
}

// Delete godoc
// @Summary 删除会话调研（级联删除依赖它的对比）
// @Tags 调研
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/investigacion/{n} [delete]
func (c *ResearchController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	if err := c.ResearchService.Delete(id, n); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": n})
}
