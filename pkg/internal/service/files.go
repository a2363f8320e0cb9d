package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/yeisme/filespad/pkg/configs"
	"github.com/yeisme/filespad/pkg/internal/model"
	"github.com/yeisme/filespad/pkg/internal/types"
)

const qrImageSize = 256 // 二维码边长（像素）

// fileMetaColumns 列举元数据时选取的列，刻意排除 data 大字段.
const fileMetaColumns = "id, file_name, original_name, size, content_type, space_code_hash, expires_at, created_at"

// resolveDuration 解析保留天数. 非数字或非正数回退为默认值，超出策略上限时收敛到上限.
func resolveDuration(raw string, cfg *configs.FilesConfig) float64 {
	days, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(days) || days <= 0 {
		days = cfg.ExpiryDays
	}

	if days > cfg.MaxDurationDays {
		days = cfg.MaxDurationDays
	}

	return days
}

// downloadURL 由对外 base URL 构造文件的绝对下载链接.
func downloadURL(id string) string {
	return fmt.Sprintf("%s/api/files/download/%s", configs.GetConfig().Server.BaseURL, id)
}

// qrDataURL 将下载链接渲染为 PNG 二维码并编码为内联 data URL，不落盘.
func qrDataURL(link string) (string, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Upload 保存上传的文件并返回下载链接与二维码.
// 过期时间为 now + duration 天；虚拟文件名加上传毫秒时间戳前缀去重；
// 虚拟名与原始名都加密落库. 内容默认进数据库，启用对象存储时外置.
func (fs *FileService) Upload(ctx context.Context, spaceCode string, data []byte,
	originalName, contentType, duration string,
) (*types.UploadFileResponse, error) {
	cfg := configs.GetConfig()

	if int64(len(data)) > cfg.Files.MaxUploadSize {
		return nil, fmt.Errorf("file exceeds size limit of %d bytes", cfg.Files.MaxUploadSize)
	}

	days := resolveDuration(duration, &cfg.Files)
	now := time.Now()
	expiresAt := now.Add(time.Duration(days * 24 * float64(time.Hour)))

	virtualName := fmt.Sprintf("%d-%s", now.UnixMilli(), originalName)

	encVirtual, err := fs.cipher.Encrypt(virtualName)
	if err != nil {
		return nil, fmt.Errorf("encrypt filename: %w", err)
	}

	encOriginal, err := fs.cipher.Encrypt(originalName)
	if err != nil {
		return nil, fmt.Errorf("encrypt original name: %w", err)
	}

	spaceHash := fs.cipher.Hash(spaceCode)

	file := model.File{
		ID:            uuid.NewString(),
		FileName:      encVirtual,
		OriginalName:  encOriginal,
		Size:          int64(len(data)),
		ContentType:   contentType,
		SpaceCodeHash: spaceHash,
		ExpiresAt:     expiresAt,
	}

	if fs.s3Client != nil {
		file.ObjectKey = spaceHash + "/" + file.ID
		if err := fs.s3Client.PutBlob(ctx, file.ObjectKey, data, contentType); err != nil {
			return nil, err
		}
	} else {
		file.Data = data
	}

	if err := fs.dbClient.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	link := downloadURL(file.ID)

	qr, err := qrDataURL(link)
	if err != nil {
		return nil, err
	}

	return &types.UploadFileResponse{
		Message: "File uploaded",
		File: types.FileMeta{
			ID:           file.ID,
			FileName:     virtualName,
			OriginalName: originalName,
			Size:         file.Size,
			ContentType:  file.ContentType,
			ExpiresAt:    file.ExpiresAt,
			DownloadURL:  link,
		},
		Link:   link,
		QRCode: qr,
	}, nil
}

// List 列举空间下全部文件的元数据，不含二进制内容.
// 文件名解密失败时回退为存储值（旧明文数据兼容），按插入顺序返回.
func (fs *FileService) List(ctx context.Context, spaceCode string) ([]types.FileMeta, error) {
	var files []model.File

	err := fs.dbClient.WithContext(ctx).
		Select(fileMetaColumns).
		Where("space_code_hash = ?", fs.cipher.Hash(spaceCode)).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	metas := make([]types.FileMeta, 0, len(files))
	for _, f := range files {
		metas = append(metas, types.FileMeta{
			ID:           f.ID,
			FileName:     fs.cipher.DecryptOrRaw(f.FileName),
			OriginalName: fs.cipher.DecryptOrRaw(f.OriginalName),
			Size:         f.Size,
			ContentType:  f.ContentType,
			ExpiresAt:    f.ExpiresAt,
			DownloadURL:  downloadURL(f.ID),
		})
	}

	return metas, nil
}

// Download 按 ID 取文件内容. 不校验空间归属：防护只依赖 ID 的不可猜测性，
// 这是沿用的既有行为，弱于 list/delete 的保障.
func (fs *FileService) Download(ctx context.Context, id string) (*types.DownloadResult, error) {
	var file model.File

	err := fs.dbClient.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}

		return nil, fmt.Errorf("find file: %w", err)
	}

	data := file.Data
	if file.ObjectKey != "" && fs.s3Client != nil {
		data, err = fs.s3Client.GetBlob(ctx, file.ObjectKey)
		if err != nil {
			return nil, err
		}
	}

	return &types.DownloadResult{
		Data:        data,
		ContentType: file.ContentType,
		FileName:    fs.cipher.DecryptOrRaw(file.OriginalName),
	}, nil
}

// Delete 删除单个文件记录与其内容.
func (fs *FileService) Delete(ctx context.Context, id string) error {
	var file model.File

	err := fs.dbClient.WithContext(ctx).Select(fileMetaColumns + ", object_key").First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}

		return fmt.Errorf("find file: %w", err)
	}

	if err := fs.dbClient.WithContext(ctx).Delete(&model.File{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if file.ObjectKey != "" && fs.s3Client != nil {
		if err := fs.s3Client.RemoveBlob(ctx, file.ObjectKey); err != nil {
			return err
		}
	}

	return nil
}
