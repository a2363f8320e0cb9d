package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filespad/pkg/internal/handle"
)

// RegisterSpacesRoutes 注册空间相关路由.
func RegisterSpacesRoutes(g *gin.RouterGroup) {
	spacesRoutes := g.Group("/spaces")
	{
		// 创建空间
		spacesRoutes.POST("/create", handle.CreateSpace)
		// 登录（校验空间码与可选锁码）
		spacesRoutes.POST("/login", handle.Login)
		// 启用二级锁码
		spacesRoutes.POST("/enable-lock", handle.EnableLock)

		// 单个空间操作
		singleGroup := spacesRoutes.Group("/:code")
		{
			// 文本板读写
			singleGroup.GET("/textpad", handle.GetTextPad)
			singleGroup.PUT("/textpad", handle.UpdateTextPad)
			// 删除空间（级联删除其下全部文件）
			singleGroup.DELETE("", handle.DeleteSpace)
		}
	}
}
