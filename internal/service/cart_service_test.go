package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

const testSession = "session-1"

func addInput(id uint, price string) AddItemInput {
	d, _ := decimal.NewFromString(price)
	return AddItemInput{
		ProductID: id,
		Title:     "product",
		Price:     d,
		Image:     "https://example.com/p.png",
		Category:  "electronics",
	}
}

func TestAddItemAggregates(t *testing.T) {
	s := NewCartService()

	s.AddItem(testSession, addInput(1, "29.99"))
	s.AddItem(testSession, addInput(1, "29.99"))
	state := s.AddItem(testSession, addInput(2, "19.99"))

	if len(state.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(state.Items))
	}
	if state.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", state.ItemCount)
	}
	expected, _ := decimal.NewFromString("79.97")
	if !state.Total.Decimal.Equal(expected) {
		t.Fatalf("expected total 79.97, got %s", state.Total.Decimal.String())
	}
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	s := NewCartService()

	s.AddItem(testSession, addInput(3, "1.00"))
	s.AddItem(testSession, addInput(1, "1.00"))
	state := s.AddItem(testSession, addInput(3, "1.00"))

	if state.Items[0].ProductID != 3 || state.Items[1].ProductID != 1 {
		t.Fatalf("expected insertion order [3 1], got %+v", state.Items)
	}
}

func TestAddItemClampsAtMax(t *testing.T) {
	s := NewCartService()

	var state CartState
	for i := 0; i < 120; i++ {
		state = s.AddItem(testSession, addInput(1, "2.00"))
	}
	if state.Items[0].Quantity != 99 {
		t.Fatalf("expected quantity clamped at 99, got %d", state.Items[0].Quantity)
	}
	if state.ItemCount != 99 {
		t.Fatalf("expected item count 99, got %d", state.ItemCount)
	}
}

func TestUpdateQuantitySetsVerbatim(t *testing.T) {
	s := NewCartService()

	s.AddItem(testSession, addInput(1, "5.00"))
	state := s.UpdateQuantity(testSession, 1, 7)

	if got := s.GetItemQuantity(testSession, 1); got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
	expected, _ := decimal.NewFromString("35.00")
	if !state.Total.Decimal.Equal(expected) {
		t.Fatalf("expected total 35.00, got %s", state.Total.Decimal.String())
	}
}

func TestRemoveItemDropsContribution(t *testing.T) {
	s := NewCartService()

	s.AddItem(testSession, addInput(1, "10.00"))
	s.AddItem(testSession, addInput(2, "4.50"))
	state := s.RemoveItem(testSession, 1)

	if s.IsInCart(testSession, 1) {
		t.Fatalf("expected product 1 removed")
	}
	if state.ItemCount != 1 {
		t.Fatalf("expected item count 1, got %d", state.ItemCount)
	}
	expected, _ := decimal.NewFromString("4.50")
	if !state.Total.Decimal.Equal(expected) {
		t.Fatalf("expected total 4.50, got %s", state.Total.Decimal.String())
	}
}

func TestRemoveItemMissingIsNoop(t *testing.T) {
	s := NewCartService()

	s.AddItem(testSession, addInput(1, "10.00"))
	state := s.RemoveItem(testSession, 42)

	if state.ItemCount != 1 || len(state.Items) != 1 {
		t.Fatalf("expected untouched cart, got %+v", state)
	}
}

func TestClearCart(t *testing.T) {
	s := NewCartService()

	s.AddItem(testSession, addInput(1, "10.00"))
	s.AddItem(testSession, addInput(2, "20.00"))
	state := s.ClearCart(testSession)

	if len(state.Items) != 0 || state.ItemCount != 0 || !state.Total.Decimal.IsZero() {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestGetItemQuantityMissingReturnsZero(t *testing.T) {
	s := NewCartService()
	if got := s.GetItemQuantity(testSession, 999); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if s.IsInCart(testSession, 999) {
		t.Fatalf("expected false for missing product")
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s := NewCartService()

	var received []CartState
	unsubscribe := s.Subscribe(testSession, func(state CartState) {
		received = append(received, state)
	})

	s.AddItem(testSession, addInput(1, "10.00"))
	s.UpdateQuantity(testSession, 1, 3)
	unsubscribe()
	s.ClearCart(testSession)

	if len(received) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(received))
	}
	if received[1].ItemCount != 3 {
		t.Fatalf("expected second snapshot with item count 3, got %d", received[1].ItemCount)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	s := NewCartService()

	first := s.AddItem(testSession, addInput(1, "10.00"))
	first.Items[0].Quantity = 50

	if got := s.GetItemQuantity(testSession, 1); got != 1 {
		t.Fatalf("snapshot mutation leaked into store: quantity %d", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewCartService()

	s.AddItem("a", addInput(1, "10.00"))
	if s.State("b").ItemCount != 0 {
		t.Fatalf("expected session b to be empty")
	}
}
