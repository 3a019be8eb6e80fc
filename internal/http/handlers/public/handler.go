package public

import "github.com/storefront-next/internal/provider"

// Handler 店面公开接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
