package services

import (
	"log"
	"sync"
	"time"

	"dukkan/internal/domain"
	"dukkan/internal/metrics"
	"dukkan/internal/repos"
)

// TransferSimulator plays the part of a buyer wiring money and uploading a
// proof of payment. A fixed delay after a bank-transfer order is placed it
// moves the order PENDING_PAYMENT -> PENDING_CONFIRMATION and attaches the
// proof URL.
//
// The transition is guarded: it only happens if the order is still exactly
// PENDING_PAYMENT when the timer fires. The guard lives in the conditional
// UPDATE inside OrderRepo.TransitionStatus, so a timer racing an admin
// action (or a duplicate fire) observes zero rows changed and backs off.
type TransferSimulator struct {
	orders *repos.OrderRepo
	delay  time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTransferSimulator(orders *repos.OrderRepo, delay time.Duration) *TransferSimulator {
	return &TransferSimulator{
		orders: orders,
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms a one-shot timer for the order. Scheduling the same order
// twice replaces the earlier timer.
func (s *TransferSimulator) Schedule(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}
	s.timers[orderID] = time.AfterFunc(s.delay, func() { s.fire(orderID) })
}

// Cancel disarms a pending timer, if any. Cancelling an unknown or
// already-fired order is a no-op.
func (s *TransferSimulator) Cancel(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
		delete(s.timers, orderID)
	}
}

// Stop disarms every pending timer. Used on shutdown.
func (s *TransferSimulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *TransferSimulator) fire(orderID string) {
	s.mu.Lock()
	delete(s.timers, orderID)
	s.mu.Unlock()

	ok, err := s.orders.TransitionStatus(orderID,
		domain.StatusPendingPayment, domain.StatusPendingConfirmation,
		ProofURL(orderID), "")
	if err != nil {
		log.Printf("[transfer-sim] order %s: %v", orderID, err)
		return
	}
	if !ok {
		// The order moved on before we fired; nothing to do.
		metrics.TransfersStale.Inc()
		return
	}
	metrics.TransfersSimulated.Inc()
}

// ProofURL is the mock proof-of-payment location for an order.
func ProofURL(orderID string) string { return "/proofs/" + orderID + ".png" }

// DownloadLink is the mock download location granted on completion.
func DownloadLink(orderID string) string { return "/downloads/" + orderID }
