package domain

import "testing"

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{StatusPendingPayment, StatusPendingConfirmation},
		{StatusPendingPayment, StatusFailed},
		{StatusPendingPayment, StatusCancelled},
		{StatusPendingConfirmation, StatusCompleted},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to OrderStatus }{
		{StatusPendingConfirmation, StatusPendingPayment}, // no backward moves
		{StatusCompleted, StatusPendingPayment},
		{StatusCompleted, StatusPendingConfirmation},
		{StatusFailed, StatusCompleted},
		{StatusCancelled, StatusCompleted},
		{StatusPendingPayment, StatusCompleted}, // must pass through confirmation
	}
	for _, tc := range forbidden {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s must not be allowed", tc.from, tc.to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []OrderStatus{StatusCompleted, StatusFailed, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{StatusPendingPayment, StatusPendingConfirmation} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestCartItemSubtotal(t *testing.T) {
	ci := CartItem{PriceAtAdd: 9.50, Qty: 3}
	if got := ci.Subtotal(); got != 28.50 {
		t.Fatalf("want 28.50, got %.2f", got)
	}
}
