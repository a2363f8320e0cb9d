package types

// CreateSpaceRequest 创建空间请求.
type CreateSpaceRequest struct {
	Code string `binding:"required" json:"code"`
}

// CreateSpaceResponse 创建空间响应，原样返回明文码，服务端此后无法再还原它.
type CreateSpaceResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest 登录（校验空间码与可选锁码）请求.
type LoginRequest struct {
	Code     string `binding:"required" json:"code"`
	LockCode string `json:"lockCode,omitempty"`
}

// LoginResponse 登录响应.
type LoginResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EnableLockRequest 启用二级锁码请求.
type EnableLockRequest struct {
	Code     string `binding:"required" json:"code"`
	LockCode string `binding:"required" json:"lockCode"`
}

// TextPadResponse 文本板内容响应.
type TextPadResponse struct {
	Content string `json:"content"`
}

// UpdateTextPadRequest 文本板更新请求，空内容表示清空.
type UpdateTextPadRequest struct {
	Content string `json:"content"`
}

// UpdateTextPadResponse 文本板更新响应，回显明文内容.
type UpdateTextPadResponse struct {
	Message string `json:"message"`
	Content string `json:"content"`
}

// MessageResponse 通用消息响应.
type MessageResponse struct {
	Message string `json:"message"`
}
