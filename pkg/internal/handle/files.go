package handle

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filespad/pkg/internal/service"
	"github.com/yeisme/filespad/pkg/log"
)

// UploadFile 处理 multipart 上传：file + spaceCode + duration（天）.
func UploadFile(c *gin.Context) {
	l := log.Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})

		return
	}

	spaceCode := c.PostForm("spaceCode")
	duration := c.PostForm("duration")

	src, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("open uploaded file failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	defer func() { _ = src.Close() }()

	// 每个请求最多缓存一个文件的内容
	data, err := io.ReadAll(src)
	if err != nil {
		l.Error().Err(err).Msg("read uploaded file failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.Upload(c.Request.Context(), spaceCode, data, fileHeader.Filename, contentType, duration)
	if err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListFiles 列举空间下的文件元数据.
func ListFiles(c *gin.Context) {
	svc := service.NewFileService(c.Request.Context())

	metas, err := svc.List(c.Request.Context(), c.Param("spaceCode"))
	if err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, metas)
}

// DownloadFile 按 ID 返回文件内容.
// 只凭 ID 取文件、不校验空间归属是沿用的既有行为，防护依赖 ID 的不可猜测性.
func DownloadFile(c *gin.Context) {
	svc := service.NewFileService(c.Request.Context())

	result, err := svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.Header("Content-Disposition", `inline; filename="`+escapeFilename(result.FileName)+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// DeleteFile 删除单个文件.
func DeleteFile(c *gin.Context) {
	svc := service.NewFileService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

// escapeFilename 转义文件名中会破坏响应头的字符.
func escapeFilename(s string) string {
	out := make([]rune, 0, len(s))

	for _, r := range s {
		switch r {
		case '"', '\\', '\n', '\r', ';':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}

	return string(out)
}
