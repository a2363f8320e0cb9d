// Package context 拓展上下文功能，将存储管理器、加密组件等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/yeisme/filespad/pkg/crypto"
	"github.com/yeisme/filespad/pkg/internal/storage"
	dbc "github.com/yeisme/filespad/pkg/internal/storage/db"
	s3c "github.com/yeisme/filespad/pkg/internal/storage/s3"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	CipherKey         ContextKey = "cipher"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetS3Client 从 context 中获取 S3 客户端，未启用对象存储时返回 nil.
func GetS3Client(ctx context.Context) *s3c.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// WithCipher 将加密组件存储到 context 中.
func WithCipher(ctx context.Context, c *crypto.Cipher) context.Context {
	return context.WithValue(ctx, CipherKey, c)
}

// GetCipher 从 context 中获取加密组件.
func GetCipher(ctx context.Context) *crypto.Cipher {
	if c, ok := ctx.Value(CipherKey).(*crypto.Cipher); ok {
		return c
	}

	return nil
}
