// Package router 管理路由配置，将路径绑定到 handle 提供的处理器.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册全部业务路由，挂载在 /api 前缀下.
func RegisterAPIRoutes(e *gin.Engine) {
	api := e.Group("/api")
	{
		RegisterSpacesRoutes(api)
		RegisterFilesRoutes(api)
	}

	RegisterHealthCheckRoute(e)
}
