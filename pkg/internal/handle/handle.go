// Package handle 提供HTTP请求处理器的实现.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filespad/pkg/internal/service"
	"github.com/yeisme/filespad/pkg/log"
)

// abortWithServiceError 把业务错误映射为 HTTP 响应.
// 未分类错误一律 500，消息文本回传、详情只记在服务端日志.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSpaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Space not found"})
	case errors.Is(err, service.ErrSpaceExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Space already exists"})
	case errors.Is(err, service.ErrSpaceLocked):
		c.JSON(http.StatusForbidden, gin.H{"message": "Space is locked", "isLocked": true})
	case errors.Is(err, service.ErrInvalidLockCode):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid lock code", "isLocked": true})
	case errors.Is(err, service.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
	default:
		log.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
