package types

import "time"

// FileMeta 单个文件的展示元数据，文件名已解密（旧明文数据按原值返回）.
type FileMeta struct {
	ID           string    `json:"_id"`
	FileName     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"mimetype"`
	ExpiresAt    time.Time `json:"expiresAt"`
	DownloadURL  string    `json:"downloadUrl"`
}

// UploadFileResponse 上传响应：元数据、下载链接与二维码 data URL.
type UploadFileResponse struct {
	Message string   `json:"message"`
	File    FileMeta `json:"file"`
	Link    string   `json:"link"`
	QRCode  string   `json:"qrCode"`
}

// DownloadResult 下载结果：内容、类型与展示文件名.
type DownloadResult struct {
	Data        []byte
	ContentType string
	FileName    string
}
