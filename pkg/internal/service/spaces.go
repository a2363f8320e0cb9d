package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/filespad/pkg/internal/model"
	nlog "github.com/yeisme/filespad/pkg/log"
)

// findByCode 按空间码哈希查找空间，不存在时返回 ErrSpaceNotFound.
func (ss *SpaceService) findByCode(ctx context.Context, code string) (*model.Space, error) {
	var space model.Space

	err := ss.dbClient.WithContext(ctx).
		Where("code_hash = ?", ss.cipher.Hash(code)).
		First(&space).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceNotFound
		}

		return nil, fmt.Errorf("find space: %w", err)
	}

	return &space, nil
}

// Create 创建空间. 同一码哈希已存在时返回 ErrSpaceExists.
// 明文码只在本次响应中回传一次，之后服务端无法还原.
func (ss *SpaceService) Create(ctx context.Context, code string) error {
	if _, err := ss.findByCode(ctx, code); err == nil {
		return ErrSpaceExists
	} else if !errors.Is(err, ErrSpaceNotFound) {
		return err
	}

	space := model.Space{CodeHash: ss.cipher.Hash(code)}
	if err := ss.dbClient.WithContext(ctx).Create(&space).Error; err != nil {
		return fmt.Errorf("create space: %w", err)
	}

	return nil
}

// Login 校验空间码与可选锁码. 没有会话与令牌，之后的每个操作都重新提交空间码校验.
func (ss *SpaceService) Login(ctx context.Context, code, lockCode string) error {
	space, err := ss.findByCode(ctx, code)
	if err != nil {
		return err
	}

	if space.LockCodeHash != "" {
		if lockCode == "" {
			return ErrSpaceLocked
		}

		if ss.cipher.Hash(lockCode) != space.LockCodeHash {
			return ErrInvalidLockCode
		}
	}

	return nil
}

// EnableLock 设置二级锁码，此后登录必须同时提供锁码.
func (ss *SpaceService) EnableLock(ctx context.Context, code, lockCode string) error {
	space, err := ss.findByCode(ctx, code)
	if err != nil {
		return err
	}

	err = ss.dbClient.WithContext(ctx).
		Model(space).
		Update("lock_code_hash", ss.cipher.Hash(lockCode)).Error
	if err != nil {
		return fmt.Errorf("enable lock: %w", err)
	}

	return nil
}

// GetTextPad 读取文本板内容. 解密失败时回退为原始存储值（旧明文数据兼容），从未写入时为空串.
func (ss *SpaceService) GetTextPad(ctx context.Context, code string) (string, error) {
	space, err := ss.findByCode(ctx, code)
	if err != nil {
		return "", err
	}

	return ss.cipher.DecryptOrRaw(space.TextPadContent), nil
}

// UpdateTextPad 覆盖文本板内容. 空输入存空串而不是空明文的加密信封.
func (ss *SpaceService) UpdateTextPad(ctx context.Context, code, content string) error {
	space, err := ss.findByCode(ctx, code)
	if err != nil {
		return err
	}

	stored := ""
	if content != "" {
		stored, err = ss.cipher.Encrypt(content)
		if err != nil {
			return fmt.Errorf("encrypt textpad: %w", err)
		}
	}

	err = ss.dbClient.WithContext(ctx).
		Model(space).
		Update("text_pad_content", stored).Error
	if err != nil {
		return fmt.Errorf("update textpad: %w", err)
	}

	return nil
}

// Delete 删除空间及其全部文件. 文件行与空间行在同一事务中删除，
// 任一步失败整体回滚并向调用方报错；外置的对象在提交后尽力清理.
func (ss *SpaceService) Delete(ctx context.Context, code string) error {
	space, err := ss.findByCode(ctx, code)
	if err != nil {
		return err
	}

	// 先收集外置对象键，行删掉之后就查不到了
	var objectKeys []string

	err = ss.dbClient.WithContext(ctx).
		Model(&model.File{}).
		Where("space_code_hash = ? AND object_key <> ''", space.CodeHash).
		Pluck("object_key", &objectKeys).Error
	if err != nil {
		return fmt.Errorf("collect object keys: %w", err)
	}

	err = ss.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_code_hash = ?", space.CodeHash).Delete(&model.File{}).Error; err != nil {
			return fmt.Errorf("delete files: %w", err)
		}

		if err := tx.Delete(space).Error; err != nil {
			return fmt.Errorf("delete space: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if ss.s3Client != nil {
		for _, key := range objectKeys {
			if err := ss.s3Client.RemoveBlob(ctx, key); err != nil {
				nlog.Logger().Warn().Err(err).Str("key", key).Msg("remove blob after space delete failed")
			}
		}
	}

	return nil
}
