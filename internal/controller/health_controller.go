package controller

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"silabo_backend/internal/util"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health godoc
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}
	util.Success(ctx, gin.H{"status": "ok", "database": dbStatus})
}
