// Package storage 聚合数据库与可选的对象存储资源.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
//	s3Client := mgr.GetS3Client() // 未启用时为 nil
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/filespad/pkg/configs"
	"github.com/yeisme/filespad/pkg/internal/model"
	dbc "github.com/yeisme/filespad/pkg/internal/storage/db"
	s3c "github.com/yeisme/filespad/pkg/internal/storage/s3"
	nlog "github.com/yeisme/filespad/pkg/log"
)

// Manager 聚合所有存储资源. S3 仅在配置启用时非 nil.
type Manager struct {
	DB *dbc.Client
	S3 *s3c.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx, &cfg.DB)
		if e != nil {
			err = e

			return
		}

		m.DB = dbi

		if e := dbi.WithContext(ctx).AutoMigrate(&model.Space{}, &model.File{}); e != nil {
			err = e

			return
		}

		// S3（可选）
		if cfg.S3.Enabled {
			s3i, e := s3c.New(ctx, &cfg.S3)
			if e != nil {
				err = e

				return
			}

			m.S3 = s3i
		}

		mgr = m

		nlog.Logger().Info().Bool("s3", m.S3 != nil).Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetS3Client 获取 S3 客户端，未启用对象存储时为 nil.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}
