package constants

// 结账流程阶段常量
const (
	CheckoutStepForm       = "form"
	CheckoutStepProcessing = "processing"
	CheckoutStepSuccess    = "success"
)

// 购物车数量边界
const (
	CartQuantityMin = 1
	CartQuantityMax = 99
)

// 订单号常量
const (
	OrderIDPrefix       = "ORD"
	OrderIDSuffixLength = 9
)

// 支付方式展示常量（模拟支付固定输出 Visa）
const (
	CardTypeVisa       = "Visa"
	CardMaskPrefix     = "**** **** **** "
	CardMaskLastDigits = 4
)

// 商品排序方式常量
const (
	SortDefault   = "default"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortName      = "name"
)

// 商品分类筛选：全部分类
const CategoryAll = "all"

// 会话 Cookie 名称
const SessionCookieName = "store_session"
