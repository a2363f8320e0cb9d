package model

import (
	"time"
)

// File 文件模型. 文件名以加密信封存储；ID 为随机 UUID，
// 下载端点只凭 ID 取文件，不再校验空间码，防护依赖 ID 的不可猜测性.
type File struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// 虚拟文件名（上传时间戳前缀 + 原始名），加密存储
	FileName string `gorm:"size:1024" json:"file_name"`
	// 用户上传时的原始文件名，加密存储
	OriginalName string `gorm:"size:1024" json:"original_name"`
	// 文件内容；内容外置到对象存储时为空，ObjectKey 指向实际数据
	Data      []byte `gorm:"type:blob" json:"-"`
	ObjectKey string `gorm:"size:1024" json:"-"`

	Size        int64  `json:"size"`
	ContentType string `gorm:"size:255" json:"content_type"`
	// 所属空间的码哈希. 值相等即归属，无外键约束：
	// 空间删除与上传并发时允许出现短暂的孤儿记录，由清理任务或后续删除兜底
	SpaceCodeHash string `gorm:"size:64;index" json:"space_code_hash"`
	// 过期时间，清理任务删除所有早于当前时间的记录
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`

	CreatedAt time.Time
}
