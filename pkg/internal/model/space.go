package model

import (
	"time"
)

// Space 空间模型. 空间码只以带密钥哈希的形式落库，明文码不存储.
type Space struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// 空间码的 HMAC 摘要，全表唯一，是空间的唯一查找键
	CodeHash string `gorm:"size:64;uniqueIndex" json:"code_hash"`
	// 二级锁码的 HMAC 摘要，空串表示未上锁
	LockCodeHash string `gorm:"size:64" json:"-"`
	// 共享文本板内容，加密信封或空串（从未写入时）
	TextPadContent string `gorm:"type:text" json:"-"`

	CreatedAt time.Time
}
