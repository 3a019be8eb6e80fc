package service

import (
	"sync"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
)

// CheckoutStatus 结账流程状态
type CheckoutStatus struct {
	Step    string        `json:"step"`
	Summary *OrderSummary `json:"summary,omitempty"` // 仅 success 阶段存在
}

// checkoutFlow 单个会话的结账流程实例。
// 状态机：form → processing → success，无失败分支。
type checkoutFlow struct {
	step     string
	snapshot CartState
	totals   Totals
	form     CheckoutForm
	timer    *time.Timer
	summary  *OrderSummary
}

// CheckoutService 结账流程服务。
// processing 阶段为固定时长的模拟支付，到期必然完成订单。
type CheckoutService struct {
	mu    sync.Mutex
	carts *CartService
	delay time.Duration
	flows map[string]*checkoutFlow
	now   func() time.Time
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(carts *CartService, delay time.Duration) *CheckoutService {
	if delay <= 0 {
		delay = 3 * time.Second
	}
	return &CheckoutService{
		carts: carts,
		delay: delay,
		flows: make(map[string]*checkoutFlow),
		now:   time.Now,
	}
}

// Begin 进入结账页的入口守卫：空购物车直接返回 ErrCartEmpty，
// 由接口层引导跳回购物车页。该检查只在进入时执行一次，
// 流程中途购物车被清空不会打断 processing / success。
func (s *CheckoutService) Begin(sessionID string) error {
	if s.carts.State(sessionID).ItemCount == 0 {
		return ErrCartEmpty
	}
	return nil
}

// Submit 提交结账表单：同步捕获购物车快照、金额汇总与表单值，
// 进入 processing 并调度完成定时器。提交后不再回读实时购物车。
func (s *CheckoutService) Submit(sessionID string, form CheckoutForm) (CheckoutStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if ok && flow.step == constants.CheckoutStepProcessing {
		return s.statusLocked(sessionID), ErrCheckoutInProgress
	}

	snapshot := s.carts.State(sessionID)
	if snapshot.ItemCount == 0 {
		return s.statusLocked(sessionID), ErrCartEmpty
	}

	flow = &checkoutFlow{
		step:     constants.CheckoutStepProcessing,
		snapshot: snapshot,
		totals:   ComputeTotals(snapshot.Items),
		form:     form,
	}
	// 定时器持有取消句柄（Stop），仅供进程退出时使用，
	// 原始契约不向用户暴露取消操作。
	flow.timer = time.AfterFunc(s.delay, func() {
		s.complete(sessionID)
	})
	s.flows[sessionID] = flow

	logger.Infow("checkout_processing",
		"session_id", sessionID,
		"item_count", snapshot.ItemCount,
		"delay_ms", s.delay.Milliseconds(),
	)
	return s.statusLocked(sessionID), nil
}

// complete 模拟支付到期：生成订单号、构建订单摘要、清空购物车，
// 最后转入 success。
func (s *CheckoutService) complete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if !ok || flow.step != constants.CheckoutStepProcessing {
		return
	}

	orderID := GenerateOrderID(s.now())
	summary := BuildOrderSummary(flow.snapshot, flow.totals, flow.form, orderID)
	s.carts.ClearCart(sessionID)

	flow.summary = &summary
	flow.step = constants.CheckoutStepSuccess

	logger.Infow("checkout_success",
		"session_id", sessionID,
		"order_id", orderID,
		"total", summary.Total.String(),
	)
}

// Status 查询当前流程状态。未提交过的会话处于 form 阶段。
func (s *CheckoutService) Status(sessionID string) CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(sessionID)
}

func (s *CheckoutService) statusLocked(sessionID string) CheckoutStatus {
	flow, ok := s.flows[sessionID]
	if !ok {
		return CheckoutStatus{Step: constants.CheckoutStepForm}
	}
	return CheckoutStatus{Step: flow.step, Summary: flow.summary}
}

// Summary 获取订单摘要，仅在 success 阶段存在。
func (s *CheckoutService) Summary(sessionID string) (*OrderSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[sessionID]
	if !ok || flow.summary == nil {
		return nil, false
	}
	return flow.summary, true
}

// Reset 离开结账页：丢弃当前流程实例，下次进入从 form 重新开始。
// processing 中的定时器不会被用户操作取消，到期仍会完成订单。
func (s *CheckoutService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[sessionID]
	if !ok {
		return
	}
	if flow.step == constants.CheckoutStepProcessing {
		return
	}
	delete(s.flows, sessionID)
}

// Shutdown 停止所有未触发的定时器。仅用于进程退出，
// 属于超出原始契约的扩展（见 DESIGN.md）。
func (s *CheckoutService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, flow := range s.flows {
		if flow.timer != nil {
			flow.timer.Stop()
		}
	}
}
