package configs

import "github.com/spf13/viper"

// DefaultSecuritySecret 仅用于本地开发，生产环境必须通过 FILESPAD_SECURITY_SECRET 覆盖.
const DefaultSecuritySecret = "default_secret_key_change_me_now!!"

// SecurityConfig 安全相关配置. Secret 在进程启动时派生一次加密与哈希密钥，
// 更换 secret 会使已存储的哈希与密文全部失效.
type SecurityConfig struct {
	Secret string `mapstructure:"secret" rule:"required"`
}

func (c *SecurityConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("security.secret", DefaultSecuritySecret)
}
