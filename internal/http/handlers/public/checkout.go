package public

import (
	"errors"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCheckout 查询结账流程状态。
// form 阶段执行入口守卫：空购物车返回跳回购物车页的提示。
func (h *Handler) GetCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	status := h.CheckoutService.Status(sessionID)
	if status.Step == constants.CheckoutStepForm {
		if err := h.CheckoutService.Begin(sessionID); err != nil {
			response.Success(c, gin.H{
				"step":     constants.CheckoutStepForm,
				"redirect": "/cart",
			})
			return
		}
		state := h.CartService.State(sessionID)
		response.Success(c, gin.H{
			"step":   constants.CheckoutStepForm,
			"cart":   state,
			"totals": service.ComputeTotals(state.Items),
		})
		return
	}
	response.Success(c, status)
}

// SubmitCheckout 提交结账表单，进入 processing 模拟支付。
func (h *Handler) SubmitCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	var form service.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid checkout form")
		return
	}

	status, err := h.CheckoutService.Submit(sessionID, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			response.ErrorWithData(c, response.CodeBadRequest, "cart is empty",
				gin.H{"redirect": "/cart"})
		case errors.Is(err, service.ErrCheckoutInProgress):
			response.Error(c, response.CodeConflict, "checkout is processing")
		default:
			respondError(c, response.CodeInternal, "failed to submit checkout", err)
		}
		return
	}
	response.Success(c, status)
}

// ResetCheckout 离开结账页：丢弃流程实例，processing 中不可重置。
func (h *Handler) ResetCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	h.CheckoutService.Reset(sessionID)
	response.Success(c, h.CheckoutService.Status(sessionID))
}
