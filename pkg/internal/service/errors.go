package service

import "errors"

// 业务错误，handle 层用 errors.Is 映射为 HTTP 状态码.
var (
	// ErrSpaceExists 空间码哈希冲突，空间已存在.
	ErrSpaceExists = errors.New("space already exists")
	// ErrSpaceNotFound 空间不存在.
	ErrSpaceNotFound = errors.New("space not found")
	// ErrSpaceLocked 空间已上锁且未提供锁码.
	ErrSpaceLocked = errors.New("space is locked")
	// ErrInvalidLockCode 锁码不匹配.
	ErrInvalidLockCode = errors.New("invalid lock code")
	// ErrFileNotFound 文件不存在.
	ErrFileNotFound = errors.New("file not found")
)
