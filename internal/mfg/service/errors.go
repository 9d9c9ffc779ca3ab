package service

import (
	"errors"
	"strings"
)

// 领域错误，handler层映射为HTTP状态码
var (
	// ErrProductNotFound 搜索词未命中任何成品
	ErrProductNotFound = errors.New("no finished product matches the search")
	// ErrAmbiguousProduct 搜索词命中多个成品且无精确名称匹配
	ErrAmbiguousProduct = errors.New("search matches more than one finished product")
	// ErrMissingBOM 成品没有有效BOM，拒绝创建订单
	ErrMissingBOM = errors.New("product has no active bill of materials")
	// ErrInvalidTransition 当前状态不允许该操作
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrInsufficientStock 组件可用库存不足
	ErrInsufficientStock = errors.New("insufficient component stock")
)

// ValidationError 输入校验失败，Details为逐项错误信息
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}
