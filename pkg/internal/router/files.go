package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filespad/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件操作相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 上传文件（multipart: file + spaceCode + duration）
		filesRoutes.POST("/upload", handle.UploadFile)
		// 下载，只凭 ID
		filesRoutes.GET("/download/:id", handle.DownloadFile)
		// 列举空间下的文件元数据
		filesRoutes.GET("/:spaceCode", handle.ListFiles)
		// 删除文件
		filesRoutes.DELETE("/:id", handle.DeleteFile)
	}
}
