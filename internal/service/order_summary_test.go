package service

import (
	"strings"
	"testing"
	"time"
)

func TestMaskCardNumber(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"4111111111111111", "**** **** **** 1111"},
		{"4111 1111 1111 1234", "**** **** **** 1234"},
		{"not-a-card", "**** **** **** card"},
		{"99", "**** **** **** 99"},
		{"", "**** **** **** "},
	}
	for _, tc := range cases {
		if got := MaskCardNumber(tc.input); got != tc.expected {
			t.Fatalf("mask(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestGenerateOrderIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := GenerateOrderID(now)

	if !orderIDPattern.MatchString(id) {
		t.Fatalf("unexpected order id format: %s", id)
	}
	if !strings.HasPrefix(id, "ORD-1700000000000-") {
		t.Fatalf("expected timestamp part, got %s", id)
	}
}

func TestGenerateOrderIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	now := time.Now()
	for i := 0; i < 200; i++ {
		id := GenerateOrderID(now)
		if seen[id] {
			t.Fatalf("duplicate order id: %s", id)
		}
		seen[id] = true
	}
}

func TestBuildOrderSummaryCopiesSnapshot(t *testing.T) {
	snapshot := CartState{
		Items:     []CartItem{cartItem(1, "29.99", 2)},
		ItemCount: 2,
	}
	totals := ComputeTotals(snapshot.Items)
	form := checkoutForm()

	summary := BuildOrderSummary(snapshot, totals, form, "ORD-1-ABCDEFGHI")

	// 修改原快照不能影响已生成的摘要
	snapshot.Items[0].Quantity = 50
	if summary.Items[0].Quantity != 2 {
		t.Fatalf("summary items must be an independent copy")
	}
	if summary.ShippingAddress.City != form.City {
		t.Fatalf("expected shipping city %s, got %s", form.City, summary.ShippingAddress.City)
	}
	if summary.PaymentMethod.CardType != "Visa" {
		t.Fatalf("card type must be fixed to Visa")
	}
}
