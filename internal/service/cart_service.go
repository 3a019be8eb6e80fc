package service

import (
	"sync"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

// CartItem 购物车行项目
type CartItem struct {
	ProductID uint         `json:"id"`
	Title     string       `json:"title"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
	Category  string       `json:"category"`
	Quantity  int          `json:"quantity"`
}

// LineTotal 行小计（单价 × 数量）
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState 购物车快照。Total 与 ItemCount 为派生值，
// 每次变更后由 recompute 重新计算，始终与 Items 一致。
type CartState struct {
	Items     []CartItem   `json:"items"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"item_count"`
}

// AddItemInput 加入购物车的商品信息
type AddItemInput struct {
	ProductID uint
	Title     string
	Price     decimal.Decimal
	Image     string
	Category  string
}

// CartSubscriber 购物车变更订阅回调，入参为变更后的不可变快照。
type CartSubscriber func(CartState)

// sessionCart 单个会话的购物车存储。
// 每次变更遵循固定顺序：mutate → recompute → notify。
type sessionCart struct {
	mu          sync.Mutex
	items       []CartItem
	total       decimal.Decimal
	itemCount   int
	subscribers map[uint64]CartSubscriber
	nextSubID   uint64
}

func newSessionCart() *sessionCart {
	return &sessionCart{
		items:       make([]CartItem, 0),
		total:       decimal.Zero,
		subscribers: make(map[uint64]CartSubscriber),
	}
}

// recompute 根据行项目重新计算派生聚合值。
func (c *sessionCart) recompute() {
	total := decimal.Zero
	count := 0
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
		count += item.Quantity
	}
	c.total = total
	c.itemCount = count
}

// snapshot 生成不可变快照（行项目深拷贝）。
func (c *sessionCart) snapshot() CartState {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return CartState{
		Items:     items,
		Total:     models.NewMoneyFromDecimal(c.total),
		ItemCount: c.itemCount,
	}
}

func (c *sessionCart) collectSubscribers() []CartSubscriber {
	subs := make([]CartSubscriber, 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// CartService 会话购物车服务。每个会话持有一个独立的购物车存储，
// 所有状态仅保存在进程内存中，随进程退出丢弃。
type CartService struct {
	mu    sync.RWMutex
	carts map[string]*sessionCart
}

// NewCartService 创建购物车服务
func NewCartService() *CartService {
	return &CartService{carts: make(map[string]*sessionCart)}
}

// cart 获取会话购物车，不存在时创建。
func (s *CartService) cart(sessionID string) *sessionCart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = newSessionCart()
	s.carts[sessionID] = c
	return c
}

// AddItem 加入商品。同一商品重复加入时数量 +1（上限 99，达到上限后不再累加），
// 否则按到达顺序追加数量为 1 的新行项目。
func (s *CartService) AddItem(sessionID string, input AddItemInput) CartState {
	c := s.cart(sessionID)
	c.mu.Lock()

	found := false
	for idx := range c.items {
		if c.items[idx].ProductID == input.ProductID {
			if c.items[idx].Quantity < constants.CartQuantityMax {
				c.items[idx].Quantity++
			}
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, CartItem{
			ProductID: input.ProductID,
			Title:     input.Title,
			Price:     models.NewMoneyFromDecimal(input.Price),
			Image:     input.Image,
			Category:  input.Category,
			Quantity:  1,
		})
	}

	c.recompute()
	state := c.snapshot()
	subs := c.collectSubscribers()
	c.mu.Unlock()

	notify(subs, state)
	return state
}

// RemoveItem 删除行项目。商品不存在时为幂等空操作。
func (s *CartService) RemoveItem(sessionID string, productID uint) CartState {
	c := s.cart(sessionID)
	c.mu.Lock()

	for idx := range c.items {
		if c.items[idx].ProductID == productID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			break
		}
	}

	c.recompute()
	state := c.snapshot()
	subs := c.collectSubscribers()
	c.mu.Unlock()

	notify(subs, state)
	return state
}

// UpdateQuantity 设置行项目数量。
// 注意：存储本身不做范围校验，1-99 的有效范围由调用方（购物车接口层）负责拦截。
func (s *CartService) UpdateQuantity(sessionID string, productID uint, quantity int) CartState {
	c := s.cart(sessionID)
	c.mu.Lock()

	for idx := range c.items {
		if c.items[idx].ProductID == productID {
			c.items[idx].Quantity = quantity
			break
		}
	}

	c.recompute()
	state := c.snapshot()
	subs := c.collectSubscribers()
	c.mu.Unlock()

	notify(subs, state)
	return state
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(sessionID string) CartState {
	c := s.cart(sessionID)
	c.mu.Lock()

	c.items = c.items[:0]

	c.recompute()
	state := c.snapshot()
	subs := c.collectSubscribers()
	c.mu.Unlock()

	notify(subs, state)
	return state
}

// GetItemQuantity 查询商品数量，不存在时返回 0。只读无副作用。
func (s *CartService) GetItemQuantity(sessionID string, productID uint) int {
	c := s.cart(sessionID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// IsInCart 查询商品是否在购物车中。只读无副作用。
func (s *CartService) IsInCart(sessionID string, productID uint) bool {
	return s.GetItemQuantity(sessionID, productID) > 0
}

// State 获取当前购物车快照
func (s *CartService) State(sessionID string) CartState {
	c := s.cart(sessionID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe 订阅购物车变更，返回取消订阅函数。
func (s *CartService) Subscribe(sessionID string, fn CartSubscriber) func() {
	c := s.cart(sessionID)
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func notify(subs []CartSubscriber, state CartState) {
	for _, fn := range subs {
		if fn != nil {
			fn(state)
		}
	}
}
