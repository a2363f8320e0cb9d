package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filespad/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(e *gin.Engine) {
	healthRoutes := e.Group("/healthz")
	{
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/s3", handle.HealthS3)
	}
}
