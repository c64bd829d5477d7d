package controller

import (
	"silabo_backend/internal/model"
	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewerController struct {
	ReviewerService *service.ReviewerService
}

func NewReviewerController(reviewerService *service.ReviewerService) *ReviewerController {
	return &ReviewerController{ReviewerService: reviewerService}
}

// ReviewerRequest 指派评审人的请求体
type ReviewerRequest struct {
	ReviewerName string `json:"nombre_revisor" binding:"required"`
	DNI          string `json:"dni"`
	Phone        string `json:"telefono"`
	Email        string `json:"correo" binding:"omitempty,email"`
	Deadline     string `json:"fecha_limite"`
	Status       string `json:"estado_revision"`
	Comments     string `json:"comentarios"`
}

// Save godoc
// @Summary 指派或更新课程的评审人
// @Tags 评审人
// @Accept  json
// @Produce json
// @Param   id   path int             true "课程ID"
// @Param   body body ReviewerRequest true "评审人信息"
// @Success 200 {object} util.Response{data=model.ReviewerAssignment}
// @Failure 400 {object} util.Response "DNI或状态无效"
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/revisor [post]
func (c *ReviewerController) Save(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req ReviewerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.ReviewerService.Save(id, service.ReviewerInput{
		ReviewerName: req.ReviewerName,
		DNI:          req.DNI,
		Phone:        req.Phone,
		Email:        req.Email,
		Deadline:     req.Deadline,
		Status:       model.AssignmentStatus(req.Status),
		Comments:     req.Comments,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// Get godoc
// @Summary 课程的评审人指派
// @Tags 评审人
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.ReviewerAssignment}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/revisor [get]
func (c *ReviewerController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	assignment, err := c.ReviewerService.Get(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}
