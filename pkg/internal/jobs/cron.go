// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/filespad/pkg/configs"
	ctxPkg "github.com/yeisme/filespad/pkg/context"
	"github.com/yeisme/filespad/pkg/crypto"
	"github.com/yeisme/filespad/pkg/internal/service"
	"github.com/yeisme/filespad/pkg/internal/storage"
	"github.com/yeisme/filespad/pkg/log"
	"github.com/yeisme/filespad/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每分钟扫描并删除已过期的文件（cron 表达式可由 files.sweep_cron 覆盖）
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, cipher *crypto.Cipher) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 与加密组件注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)
	baseCtx = ctxPkg.WithCipher(baseCtx, cipher)

	sweepCron := configs.GetConfig().Files.SweepCron

	if err := sched.AddCron(JobFilesExpireSweep, sweepCron, runExpireSweep, baseCtx); err != nil {
		return err
	}

	return nil
}

// runExpireSweep 执行一轮过期文件清理.
func runExpireSweep(ctx context.Context) {
	l := log.Logger().With().Str("job", JobFilesExpireSweep).Logger()

	svc := service.NewFileService(ctx)

	n, err := svc.SweepExpired(ctx)
	if err != nil {
		l.Error().Err(err).Msg("expire sweep failed")

		return
	}

	if n > 0 {
		l.Info().Int("removed", n).Msg("expire sweep done")
	}
}
