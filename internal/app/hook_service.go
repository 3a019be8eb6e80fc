package app

import "context"

// HookService 进程退出时执行清理动作的伪服务：
// Start 阻塞至上下文取消，Stop 执行注册的清理函数。
type HookService struct {
	name string
	stop func()
}

// NewHookService 创建清理服务
func NewHookService(name string, stop func()) *HookService {
	return &HookService{name: name, stop: stop}
}

// Name 服务名称
func (s *HookService) Name() string {
	if s == nil || s.name == "" {
		return "hook"
	}
	return s.name
}

// Start 阻塞等待退出
func (s *HookService) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Stop 执行清理
func (s *HookService) Stop(ctx context.Context) error {
	if s != nil && s.stop != nil {
		s.stop()
	}
	return nil
}
