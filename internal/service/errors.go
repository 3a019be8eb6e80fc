package service

import "errors"

// 业务错误定义
var (
	ErrNotFound           = errors.New("resource not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already processing")
	ErrCheckoutNotFound   = errors.New("checkout flow not found")
)
