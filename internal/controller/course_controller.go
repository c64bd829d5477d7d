package controller

import (
	"io"
	"strconv"

	"silabo_backend/internal/model"
	"silabo_backend/internal/service"
	"silabo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "identificador inválido")
		return 0, false
	}
	return uint(id), true
}

func parseSession(ctx *gin.Context) (int, bool) {
	n, err := strconv.Atoi(ctx.Param("n"))
	if err != nil || n <= 0 {
		util.BadRequest(ctx, "número de sesión inválido")
		return 0, false
	}
	return n, true
}

// Create godoc
// @Summary 注册课程并上传大纲
// @Tags 课程
// @Accept  multipart/form-data
// @Produce json
// @Param   nombre_curso  formData string true  "课程名"
// @Param   version       formData int    true  "版本(1-10)"
// @Param   fecha_entrega formData string true  "交付日期 YYYY-MM-DD"
// @Param   cuenta        formData string true  "账户类别"
// @Param   codigo        formData string true  "5位数字代码"
// @Param   archivo       formData file   true  "大纲文件"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "校验失败"
// @Failure 409 {object} util.Response "代码重复"
// @Router /api/cursos [post]
func (c *CourseController) Create(ctx *gin.Context) {
	version, err := strconv.Atoi(ctx.PostForm("version"))
	if err != nil {
		util.FromError(ctx, util.ErrVersionInvalida)
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

	in := service.CourseInput{
		Name:     ctx.PostForm("nombre_curso"),
		Version:  version,
		DueDate:  ctx.PostForm("fecha_entrega"),
		Account:  model.AccountType(ctx.PostForm("cuenta")),
		Code:     ctx.PostForm("codigo"),
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}

	course, err := c.CourseService.Create(ctx.Request.Context(), in, file)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// List godoc
// @Summary 课程列表（最新在前）
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/cursos [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.CourseService.Get(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程及其全部产物
// @Tags 课程
// @Produce json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.CourseService.Delete(ctx.Request.Context(), id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// Download godoc
// @Summary 下载大纲原件
// @Tags 课程
// @Produce octet-stream
// @Param   id path int true "课程ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/cursos/{id}/archivo [get]
func (c *CourseController) Download(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	rc, name, err := c.CourseService.DownloadSyllabus(ctx.Request.Context(), id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	defer rc.Close()

	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Header("Content-Type", "application/octet-stream")
	_, _ = io.Copy(ctx.Writer, rc)
}
