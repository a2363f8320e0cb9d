package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filespad/pkg/internal/service"
	"github.com/yeisme/filespad/pkg/internal/types"
)

// CreateSpace 创建空间. 码哈希已存在时返回 400.
func CreateSpace(c *gin.Context) {
	var req types.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Space name is required"})

		return
	}

	svc := service.NewSpaceService(c.Request.Context())

	if err := svc.Create(c.Request.Context(), req.Code); err != nil {
		abortWithServiceError(c, err)

		return
	}

	// 明文码只在这里回传一次，服务端没有找回机制
	c.JSON(http.StatusCreated, types.CreateSpaceResponse{
		Code:    req.Code,
		Message: "Space created successfully",
	})
}

// Login 校验空间码（与可选锁码）. 无会话，后续操作各自重新校验.
func Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Space code is required"})

		return
	}

	svc := service.NewSpaceService(c.Request.Context())

	if err := svc.Login(c.Request.Context(), req.Code, req.LockCode); err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{Code: req.Code, Message: "Login successful"})
}

// EnableLock 启用二级锁码.
func EnableLock(c *gin.Context) {
	var req types.EnableLockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" || req.LockCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Space code and lock code are required"})

		return
	}

	svc := service.NewSpaceService(c.Request.Context())

	if err := svc.EnableLock(c.Request.Context(), req.Code, req.LockCode); err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Lock Pad enabled successfully"})
}

// GetTextPad 读取文本板内容.
func GetTextPad(c *gin.Context) {
	svc := service.NewSpaceService(c.Request.Context())

	content, err := svc.GetTextPad(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.TextPadResponse{Content: content})
}

// UpdateTextPad 覆盖文本板内容，回显明文.
func UpdateTextPad(c *gin.Context) {
	var req types.UpdateTextPadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})

		return
	}

	svc := service.NewSpaceService(c.Request.Context())

	if err := svc.UpdateTextPad(c.Request.Context(), c.Param("code"), req.Content); err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.UpdateTextPadResponse{Message: "TextPad updated", Content: req.Content})
}

// DeleteSpace 删除空间及其全部文件.
func DeleteSpace(c *gin.Context) {
	svc := service.NewSpaceService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("code")); err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Space and all data deleted successfully"})
}
