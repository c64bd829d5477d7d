package controller

import (
	"net/http"

	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// Generate godoc
// @Summary 为会话生成活动提案
// @Tags 活动
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=model.SessionActivity}
// @Failure 400 {object} util.Response "会话没有登记活动"
// @Router /api/cursos/{id}/actividades/{n} [post]
func (c *ActivityController) Generate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	activity, err := c.ActivityService.Generate(ctx.Request.Context(), id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// Get godoc
// @Summary 会话的活动提案
// @Tags 活动
// @Produce json
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {object} util.Response{data=model.SessionActivity}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/actividades/{n} [get]
func (c *ActivityController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	activity, err := c.ActivityService.Get(id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// List godoc
// @Summary 课程全部会话的活动提案
// @Tags 活动
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.SessionActivity}
// @Router /api/cursos/{id}/actividades [get]
func (c *ActivityController) List(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	list, err := c.ActivityService.ListByCourse(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// RenderHTML godoc
// @Summary 活动提案的HTML渲染
// @Tags 活动
// @Produce html
// @Param   id path int true "课程ID"
// @Param   n  path int true "会话编号"
// @Success 200 {string} string
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/actividades/{n}/html [get]
func (c *ActivityController) RenderHTML(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	n, ok := parseSession(ctx)
	if !ok {
		return
	}
	html, err := c.ActivityService.RenderHTML(id, n)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
