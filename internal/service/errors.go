// Package service 包含了应用的业务逻辑层。
package service

import "errors"

var (
	// ErrEmptyMessage 表示聊天消息去除空白后为空。
	ErrEmptyMessage = errors.New("message is required")
	// ErrUserExists 表示用户名或邮箱已被占用。
	ErrUserExists = errors.New("username or email already exists")
	// ErrInvalidCredentials 表示登录凭证错误。
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRevoked 表示 token 已登出。
	ErrTokenRevoked = errors.New("token has been revoked")
	// ErrUnknownCategory 表示内容条目引用了不存在的分类。
	ErrUnknownCategory = errors.New("category does not exist")
	// ErrEmptyConversation 表示会话没有任何消息，无法生成摘要。
	ErrEmptyConversation = errors.New("conversation has no messages")
	// ErrSummaryUnavailable 表示模型未能生成摘要。
	ErrSummaryUnavailable = errors.New("summary unavailable")
)
