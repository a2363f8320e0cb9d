package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Metrics相关配置.
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`         // 是否启用Metrics
	RuntimeMetrics bool `mapstructure:"runtime_metrics"` // 是否收集运行时指标
	Pprof          bool `mapstructure:"pprof"`           // 是否注册pprof端点
}

// setDefaults 设置Metrics配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
}
