package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
)

// CheckoutForm 结账表单。除邮箱做格式校验外均为自由文本，
// 不做跨字段语义校验（卡号内容不限），与接口层 binding 约束保持一致。
type CheckoutForm struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	ZipCode    string `json:"zip_code" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
	CardName   string `json:"card_name" binding:"required"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// ShippingAddress 订单收货信息（表单收货字段的拷贝）
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// PaymentMethod 订单支付方式展示信息
type PaymentMethod struct {
	CardNumber string `json:"card_number"` // 仅保留末 4 位的掩码形式
	CardType   string `json:"card_type"`   // 固定 Visa
}

// OrderSummary 订单摘要。结账成功时生成一次，此后不可变。
type OrderSummary struct {
	OrderID         string          `json:"order_id"`
	Items           []CartItem      `json:"items"`
	Totals          // Subtotal / Tax / Total
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
}

// BuildOrderSummary 由结账快照、表单与订单号构建订单摘要。
// 只读取提交瞬间捕获的快照，不回读实时购物车。
func BuildOrderSummary(snapshot CartState, totals Totals, form CheckoutForm, orderID string) OrderSummary {
	items := make([]CartItem, len(snapshot.Items))
	copy(items, snapshot.Items)
	return OrderSummary{
		OrderID: orderID,
		Items:   items,
		Totals:  totals,
		ShippingAddress: ShippingAddress{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Address:   form.Address,
			City:      form.City,
			State:     form.State,
			ZipCode:   form.ZipCode,
		},
		PaymentMethod: PaymentMethod{
			CardNumber: MaskCardNumber(form.CardNumber),
			CardType:   constants.CardTypeVisa,
		},
	}
}

// MaskCardNumber 卡号掩码：固定前缀 + 提交卡号的末 4 个字符。
// 不足 4 位时保留原串，不做内容校验。
func MaskCardNumber(raw string) string {
	last := raw
	if len(raw) > constants.CardMaskLastDigits {
		last = raw[len(raw)-constants.CardMaskLastDigits:]
	}
	return constants.CardMaskPrefix + last
}

// GenerateOrderID 生成订单号：ORD-<毫秒时间戳>-<9 位大写字母数字>
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("%s-%d-%s",
		constants.OrderIDPrefix,
		now.UnixMilli(),
		randUpperAlnum(constants.OrderIDSuffixLength),
	)
}

const upperAlnumChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randUpperAlnum(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(upperAlnumChars)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(upperAlnumChars[n.Int64()])
	}
	return b.String()
}
