package controller

import (
	"strconv"

	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ComparisonController struct {
	ComparisonService *service.ComparisonService
}

func NewComparisonController(comparisonService *service.ComparisonService) *ComparisonController {
	return &ComparisonController{ComparisonService: comparisonService}
}

// UploadDocument godoc
// @Summary 上传对比用参考文档（槽位1或2）
// @Tags 对比
// @Accept  multipart/form-data
// @Produce json
// @Param   id      path     int  true "课程ID"
// @Param   n       path     int  true "会话编号"
// @Param   slot    path     int  true "槽位 1|2"
// @Param   archivo formData file true "参考文档"
// @Success 200 {object} util.Response{data=model.SessionComparison}
// @Failure 400 {object} util.Response "槽位无效"
// @Failure 404 {object} util.Response "会话没有调研记录"
// @Router /api/cursos/{id}/comparacion/{n}/documentos/{slot} [post]
func (c *ComparisonController) UploadDocument(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	slot, err := strconv.Atoi(ctx.Param("slot"))
	if err != nil {
		util.FromError(ctx, util.ErrSlotInvalido)
		return
	}

	fileHeader, err := ctx.FormFile("archivo")
	if err != nil {
		util.FromError(ctx, util.ErrCampoObligatorio)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	cmp, err := c.ComparisonService.UploadDocument(ctx.Request.Context(), id, n, slot,
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, cmp)
}

// Compare godoc
// @Summary 对两份文档跑对比分析
// @Tags 对比
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=model.SessionComparison}
// @Failure 400 {object} util.Response "文档不齐或调研未完成"
// @Failure 504 {object} util.Response "上游超时"
// @Router /api/cursos/{id}/comparacion/{n}/comparar [post]
func (c *ComparisonController) Compare(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	cmp, err := c.ComparisonService.Compare(ctx.Request.Context(), id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, cmp)
}

// Get godoc
// @Summary 会话的对比记录
// @Tags 对比
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=model.SessionComparison}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/comparacion/{n} [get]
func (c *ComparisonController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	cmp, err := c.ComparisonService.Get(id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, cmp)
}
