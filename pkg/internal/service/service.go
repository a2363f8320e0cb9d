// Package service 实现空间与文件的业务逻辑：
// 空间码校验（访问网关）、文本板读写、文件上传下载与过期清理.
package service

import (
	"context"

	ctxPkg "github.com/yeisme/filespad/pkg/context"
	"github.com/yeisme/filespad/pkg/crypto"
	"github.com/yeisme/filespad/pkg/internal/storage/db"
	"github.com/yeisme/filespad/pkg/internal/storage/s3"
)

// SpaceService 处理空间的创建、校验、文本板与删除.
type SpaceService struct {
	dbClient *db.Client
	s3Client *s3.Client
	cipher   *crypto.Cipher
}

// NewSpaceService 从 context 取出存储与加密组件构造服务.
func NewSpaceService(c context.Context) *SpaceService {
	return &SpaceService{
		dbClient: ctxPkg.GetDBClient(c),
		s3Client: ctxPkg.GetS3Client(c),
		cipher:   ctxPkg.GetCipher(c),
	}
}

// FileService 处理文件的上传、列举、下载、删除与过期清理.
type FileService struct {
	dbClient *db.Client
	s3Client *s3.Client
	cipher   *crypto.Cipher
}

// NewFileService 从 context 取出存储与加密组件构造服务.
func NewFileService(c context.Context) *FileService {
	return &FileService{
		dbClient: ctxPkg.GetDBClient(c),
		s3Client: ctxPkg.GetS3Client(c),
		cipher:   ctxPkg.GetCipher(c),
	}
}
