// Package configs 管理应用程序配置，包括服务器、数据库、对象存储与安全相关的配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/filespad/pkg/rule"
)

// AppVersion 应用版本号.
const AppVersion = "1.0.0"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server   ServerConfig         `mapstructure:"server"`   // 服务器端口、对外 base URL 等
		DB       DBConfig             `mapstructure:"db"`       // 数据库配置
		S3       S3Config             `mapstructure:"s3"`       // 可选的对象存储配置（文件内容外置）
		Log      LogConfig            `mapstructure:"log"`      // 日志相关配置
		Metrics  MetricsConfig        `mapstructure:"metrics"`  // 监控指标配置
		Rate     RateLimitConfig      `mapstructure:"rate_limit"`
		Breaker  CircuitBreakerConfig `mapstructure:"circuit_breaker"`
		Security SecurityConfig       `mapstructure:"security"` // 密钥派生所用 secret
		Files    FilesConfig          `mapstructure:"files"`    // 上传大小与过期策略
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	// path 可以直接是配置文件，也可以是查找目录
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("FILESPAD")

	// 没有配置文件时允许仅靠默认值与环境变量运行
	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := rule.ValidateStruct(&globalConfig); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var serverConfig ServerConfig

	var dbConfig DBConfig

	var s3Config S3Config

	var logConfig LogConfig

	var metricsConfig MetricsConfig

	var rateConfig RateLimitConfig

	var breakerConfig CircuitBreakerConfig

	var securityConfig SecurityConfig

	var filesConfig FilesConfig

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	logConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	rateConfig.setDefaults(v)
	breakerConfig.setDefaults(v)
	securityConfig.setDefaults(v)
	filesConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
