package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/filespad/pkg/internal/model"
	nlog "github.com/yeisme/filespad/pkg/log"
	"github.com/yeisme/filespad/pkg/metrics"
)

// SweepExpired 删除所有已过期的文件，返回本轮删除数量.
// 逐条删除并记录日志：单条失败不会中断本轮；记录已被并发删除时按无事发生处理，
// 因此慢速轮次与下一轮重叠也是安全的.
func (fs *FileService) SweepExpired(ctx context.Context) (int, error) {
	l := nlog.Logger().With().Str("job", "files.expire_sweep").Logger()

	var expired []model.File

	err := fs.dbClient.WithContext(ctx).
		Select("id, file_name, original_name, object_key, expires_at").
		Where("expires_at < ?", time.Now()).
		Find(&expired).Error
	if err != nil {
		return 0, fmt.Errorf("find expired files: %w", err)
	}

	removed := 0

	for _, f := range expired {
		res := fs.dbClient.WithContext(ctx).Delete(&model.File{}, "id = ?", f.ID)
		if res.Error != nil {
			l.Error().Err(res.Error).Str("id", f.ID).Msg("delete expired file failed")
			continue
		}

		if res.RowsAffected == 0 {
			// 已被并发删除
			continue
		}

		if f.ObjectKey != "" && fs.s3Client != nil {
			if err := fs.s3Client.RemoveBlob(ctx, f.ObjectKey); err != nil {
				l.Warn().Err(err).Str("key", f.ObjectKey).Msg("remove expired blob failed")
			}
		}

		removed++

		metrics.SweptFiles.Inc()
		l.Info().
			Str("id", f.ID).
			Str("name", fs.cipher.DecryptOrRaw(f.OriginalName)).
			Time("expired_at", f.ExpiresAt).
			Msg("deleted expired file")
	}

	return removed, nil
}
