package controller

import (
	"silabo_backend/internal/model"
	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// Extract godoc
// @Summary 提取大纲纯文本
// @Tags 评审
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.ExtractResult}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response "文档为空"
// @Router /api/cursos/{id}/revision/extract [post]
func (c *ReviewController) Extract(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.ReviewService.ExtractText(ctx.Request.Context(), id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// CritiqueRequest 批判请求体。ApiKey 可选，用于临时覆盖服务端密钥
type CritiqueRequest struct {
	Text   string `json:"texto" binding:"required"`
	APIKey string `json:"apiKey"`
}

// Critique godoc
// @Summary 生成大纲批判与会话抽取
// @Tags 评审
// @Accept  json
// @Produce json
// @Param   id   path int             true "课程ID"
// @Param   body body CritiqueRequest true "大纲文本"
// @Success 200 {object} util.Response{data=service.CritiqueResult}
// @Failure 422 {object} util.Response "模型输出不符合分隔符协议，原文随错误返回"
// @Failure 504 {object} util.Response "上游超时"
// @Router /api/cursos/{id}/revision/critique [post]
func (c *ReviewController) Critique(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req CritiqueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ReviewService.Critique(ctx.Request.Context(), id, req.Text, req.APIKey)
	if err != nil {
		// 数据形状错误时把已有的部分结果一并返回
		if result != nil {
			ctx.JSON(422, util.Response{Code: 422, Message: err.Error(), Data: result})
			return
		}
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// DecideRequest 评审裁决请求体
type DecideRequest struct {
	Approved bool                    `json:"aprobado"`
	Critique string                  `json:"critica"`
	Sections model.CritiqueSections  `json:"secciones"`
	Sessions []model.SyllabusSession `json:"lista_sesiones"`
	Reviewer string                  `json:"revisor"`
	Remarks  string                  `json:"observaciones"`
}

// Decide godoc
// @Summary 落库评审裁决（latest wins）
// @Tags 评审
// @Accept  json
// @Produce json
// @Param   id   path int           true "课程ID"
// @Param   body body DecideRequest true "裁决内容"
// @Success 200 {object} util.Response{data=model.SyllabusReview}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/revision/decide [post]
func (c *ReviewController) Decide(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req DecideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.Decide(id, service.DecideInput{
		Approved: req.Approved,
		Critique: req.Critique,
		Sections: req.Sections,
		Sessions: req.Sessions,
		Reviewer: req.Reviewer,
		Remarks:  req.Remarks,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// Get godoc
// @Summary 查询课程的评审记录
// @Tags 评审
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.SyllabusReview}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/revision [get]
func (c *ReviewController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	review, err := c.ReviewService.Get(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// Sessions godoc
// @Summary 批准大纲的会话列表
// @Tags 评审
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.SyllabusSession}
// @Failure 400 {object} util.Response "评审未批准"
// @Router /api/cursos/{id}/sesiones [get]
func (c *ReviewController) Sessions(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	review, err := c.ReviewService.ApprovedReview(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, review.SessionList)
}
