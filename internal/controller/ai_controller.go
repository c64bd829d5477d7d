package controller

import (
	"errors"
	"fmt"
	"net/http"

	"silabo_backend/internal/service"
	"silabo_backend/internal/util"
	"silabo_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIController 暴露与前端约定的裸代理端点。
// 响应不走统一envelope：成功 {result}，失败 {error}
type AIController struct {
	AI          *service.AIService
	Perplexity  *service.PerplexityService
	Environment string
}

func NewAIController(ai *service.AIService, perplexity *service.PerplexityService, environment string) *AIController {
	return &AIController{AI: ai, Perplexity: perplexity, Environment: environment}
}

func aiStatus(err error) int {
	switch {
	case errors.Is(err, util.ErrAIUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, util.ErrAIRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, util.ErrAITimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// PromptRequest 裸补全请求。ApiKey 可选，只用于当次调用
type PromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	APIKey string `json:"apiKey"`
}

// DeepSeekAnalysis godoc
// @Summary DeepSeek 补全代理
// @Tags AI
// @Accept  json
// @Produce json
// @Param   body body PromptRequest true "提示词"
// @Success 200 {object} object "result"
// @Failure 401 {object} object "上游密钥无效"
// @Failure 429 {object} object "上游限流"
// @Failure 504 {object} object "上游超时"
// @Router /api/ai/deepseek-analysis [post]
func (c *AIController) DeepSeekAnalysis(ctx *gin.Context) {
	var req PromptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.AI.Chat(ctx.Request.Context(), req.APIKey, []service.ChatMessage{
		{Role: "user", Content: req.Prompt},
	}, 3000)
	if err != nil {
		logger.Log.Error("DeepSeek analysis failed", zap.Error(err))
		ctx.JSON(aiStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": result})
}

// PerplexityRequest 联网调研请求
type PerplexityRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// PerplexityResearch godoc
// @Summary Perplexity 联网调研代理
// @Tags AI
// @Accept  json
// @Produce json
// @Param   body body PerplexityRequest true "提示词"
// @Success 200 {object} object "result"
// @Failure 504 {object} object "上游超时"
// @Router /api/ai/perplexity-research [post]
func (c *AIController) PerplexityResearch(ctx *gin.Context) {
	var req PerplexityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.Perplexity.Chat(ctx.Request.Context(), []service.ChatMessage{
		{Role: "user", Content: req.Prompt},
	}, 3000)
	if err != nil {
		logger.Log.Error("Perplexity research failed", zap.Error(err))
		ctx.JSON(aiStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": result})
}

// PPTCodeRequest 无状态PPT结构生成请求
type PPTCodeRequest struct {
	Topic         string `json:"tema_sesion" binding:"required"`
	Research      string `json:"contenido_investigacion" binding:"required"`
	SessionNumber int    `json:"numero_sesion" binding:"required,min=1"`
	CourseName    string `json:"nombre_curso" binding:"required"`
	CourseCode    string `json:"codigo_curso" binding:"required"`
}

// GeneratePPTCode godoc
// @Summary 无状态生成PPT结构JSON
// @Description 解析失败时仍返回200，带 json_estructura 原文和 error
// @Tags AI
// @Accept  json
// @Produce json
// @Param   body body PPTCodeRequest true "会话与调研内容"
// @Success 200 {object} object "json_estructura + json_parsed|error"
// @Failure 504 {object} object "上游超时"
// @Router /api/ai/generate-ppt-code [post]
func (c *AIController) GeneratePPTCode(ctx *gin.Context) {
	var req PPTCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := c.AI.Chat(ctx.Request.Context(), "", []service.ChatMessage{
		{Role: "system", Content: service.SlideSystemPrompt()},
		{Role: "user", Content: fmt.Sprintf(
			"Curso: %s\nCódigo: %s\nSesión: %d\nTema: %s\n\nContenido de investigación:\n%s",
			req.CourseName, req.CourseCode, req.SessionNumber, req.Topic, req.Research)},
	}, 4000)
	if err != nil {
		logger.Log.Error("PPT structure generation failed", zap.Error(err))
		ctx.JSON(aiStatus(err), gin.H{"error": err.Error()})
		return
	}

	cleaned := service.StripCodeFences(raw)
	deck, parseErr := service.ParseSlideDeck(cleaned)
	if parseErr != nil {
		ctx.JSON(http.StatusOK, gin.H{"json_estructura": cleaned, "error": parseErr.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"json_estructura": cleaned, "json_parsed": deck})
}

// TestDeepSeek godoc
// @Summary 诊断DeepSeek密钥配置（只暴露前缀）
// @Tags AI
// @Produce json
// @Success 200 {object} service.KeyInfo
// @Router /api/ai/test-deepseek [get]
func (c *AIController) TestDeepSeek(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.AI.KeyInfo(c.Environment))
}
