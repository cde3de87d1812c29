package logic

import (
	"errors"
	"fmt"
)

// 业务错误，handler层据此映射HTTP状态码
var (
	// ErrInvalidAmount 支付金额非法（非正数或非有限值）
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrPresaleInactive 预售已关闭
	ErrPresaleInactive = errors.New("presale is not active")
	// ErrPresaleNotConfigured 预售配置缺失
	ErrPresaleNotConfigured = errors.New("presale is not configured")
	// ErrWalletNotResolvable 钱包身份缺失或格式非法
	ErrWalletNotResolvable = errors.New("wallet not resolvable")
	// ErrMissingTxHash 交易哈希缺失
	ErrMissingTxHash = errors.New("tx hash required")
	// ErrInvalidStage 预售阶段号非法
	ErrInvalidStage = errors.New("invalid presale stage")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable 底层存储失败，可安全重试
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeError 包装存储错误，保留底层原因
func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
