package util

import (
	"errors"
	"net/http"

	"silabo_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromError 把哨兵错误映射为 §7 错误分类对应的状态码。
// 任何失败都只影响当次请求，不影响进程。
func FromError(c *gin.Context, err error) {
	switch {
	// 校验类 400/409
	case errors.Is(err, ErrCodigoFormato),
		errors.Is(err, ErrVersionInvalida),
		errors.Is(err, ErrCuentaInvalida),
		errors.Is(err, ErrFechaInvalida),
		errors.Is(err, ErrCampoObligatorio),
		errors.Is(err, ErrDNIInvalido),
		errors.Is(err, ErrEstadoInvalido),
		errors.Is(err, ErrSlotInvalido),
		errors.Is(err, ErrBackendInvalido),
		errors.Is(err, ErrMissingDocuments),
		errors.Is(err, ErrNoActivities),
		errors.Is(err, ErrReviewNotApproved),
		errors.Is(err, ErrResearchNotCompleted):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrCodigoDuplicado),
		errors.Is(err, ErrGenerationInProgress),
		errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())

	// 资源不存在 404
	case errors.Is(err, ErrCursoNotFound),
		errors.Is(err, ErrRevisionNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrResearchNotFound),
		errors.Is(err, ErrComparacionNotFound),
		errors.Is(err, ErrAsignacionNotFound):
		Error(c, http.StatusNotFound, err.Error())

	// 数据形状类 422：原始输出已随响应保留
	case errors.Is(err, ErrEmptyDocument),
		errors.Is(err, ErrMalformedSections),
		errors.Is(err, ErrMalformedSessionList),
		errors.Is(err, ErrInvalidStructureJSON):
		Error(c, http.StatusUnprocessableEntity, err.Error())

	// 上游依赖类：逐状态码透传
	case errors.Is(err, ErrAIUnauthorized):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAIRateLimited):
		Error(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ErrAITimeout):
		Error(c, http.StatusGatewayTimeout, err.Error())

	// 认证类 401
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())

	default:
		LogInternalError(c, err)
	}
}
