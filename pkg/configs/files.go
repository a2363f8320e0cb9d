package configs

import "github.com/spf13/viper"

const (
	DefaultFilesMaxUploadSize   = 100 << 20     // 单文件上传上限（字节），策略上限 100MB
	DefaultFilesExpiryDays      = 1.0           // 未指定 duration 时的默认保留天数
	DefaultFilesMaxDurationDays = 30.0          // duration 的策略上限（天）
	DefaultFilesSweepCron       = "* * * * *"   // 过期清理任务的 cron 表达式，分钟粒度
)

// FilesConfig 文件上传与过期策略配置.
type FilesConfig struct {
	MaxUploadSize   int64   `mapstructure:"max_upload_size"`
	ExpiryDays      float64 `mapstructure:"expiry_days"       rule:"gt=0"`
	MaxDurationDays float64 `mapstructure:"max_duration_days" rule:"gt=0"`
	SweepCron       string  `mapstructure:"sweep_cron"`
}

func (c *FilesConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("files.max_upload_size", DefaultFilesMaxUploadSize)
	v.SetDefault("files.expiry_days", DefaultFilesExpiryDays)
	v.SetDefault("files.max_duration_days", DefaultFilesMaxDurationDays)
	v.SetDefault("files.sweep_cron", DefaultFilesSweepCron)
}
