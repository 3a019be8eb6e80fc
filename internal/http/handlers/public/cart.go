package public

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// cartPayload 购物车响应体（快照 + 金额汇总）
func cartPayload(state service.CartState) gin.H {
	return gin.H{
		"cart":   state,
		"totals": service.ComputeTotals(state.Items),
	}
}

// GetCart 获取当前会话购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	response.Success(c, cartPayload(h.CartService.State(sessionID)))
}

// AddCartItem 加入商品。同一商品重复加入数量 +1。
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, err := h.ProductService.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to get product", err)
		return
	}

	state := h.CartService.AddItem(sessionID, service.AddItemInput{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price.Decimal,
		Image:     product.Image,
		Category:  product.Category,
	})
	response.Success(c, cartPayload(state))
}

// UpdateCartItem 设置行项目数量。有效范围 1-99 在此拦截，
// 购物车存储本身不做校验。
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.Quantity < constants.CartQuantityMin || req.Quantity > constants.CartQuantityMax {
		response.BadRequest(c, fmt.Sprintf("quantity must be between %d and %d",
			constants.CartQuantityMin, constants.CartQuantityMax))
		return
	}

	if !h.CartService.IsInCart(sessionID, uint(productID)) {
		response.NotFound(c, "product not in cart")
		return
	}

	state := h.CartService.UpdateQuantity(sessionID, uint(productID), req.Quantity)
	response.Success(c, cartPayload(state))
}

// DeleteCartItem 删除行项目，商品不存在时为幂等空操作。
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	state := h.CartService.RemoveItem(sessionID, uint(productID))
	response.Success(c, cartPayload(state))
}

// GetCartItem 查询单个商品的在购物车状态（数量 / 是否在车）。
func (h *Handler) GetCartItem(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	quantity := h.CartService.GetItemQuantity(sessionID, uint(productID))
	response.Success(c, gin.H{
		"quantity": quantity,
		"in_cart":  quantity > 0,
	})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	response.Success(c, cartPayload(h.CartService.ClearCart(sessionID)))
}
