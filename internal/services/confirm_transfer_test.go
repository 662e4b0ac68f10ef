package services_test

import (
	"testing"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"dukkan/internal/domain"
	"dukkan/internal/services"
)

// ord-seed-2 is the seeded bank transfer sitting at PENDING_CONFIRMATION.

func TestConfirmTransferCompletesOrder(t *testing.T) {
	f := newStore(t, time.Hour)
	sid := "sid-admin"
	f.loginAs(t, sid, "admin@dukkan.test")

	o, err := f.order.ConfirmTransfer(sid, "ord-seed-2")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.StatusCompleted {
		t.Fatalf("want COMPLETED, got %s", o.Status)
	}
	if o.DownloadLink == "" {
		t.Fatal("confirmation must grant the download link")
	}
	// proof stays on the record
	if o.ProofOfPaymentURL == "" {
		t.Fatal("proof of payment should be retained")
	}
}

func TestConfirmTransferGuardsPriorStatus(t *testing.T) {
	f := newStore(t, time.Hour)
	sid := "sid-admin"
	f.loginAs(t, sid, "admin@dukkan.test")

	// ord-seed-1 is already COMPLETED; re-confirming is a conflict.
	if _, err := f.order.ConfirmTransfer(sid, "ord-seed-1"); err != services.ErrConflict {
		t.Fatalf("want ErrConflict for a completed order, got %v", err)
	}

	// confirming twice: second call conflicts too
	if _, err := f.order.ConfirmTransfer(sid, "ord-seed-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.order.ConfirmTransfer(sid, "ord-seed-2"); err != services.ErrConflict {
		t.Fatalf("want ErrConflict on double confirm, got %v", err)
	}
}

func TestConfirmTransferRequiresAdmin(t *testing.T) {
	f := newStore(t, time.Hour)
	sid := "sid-sara"
	f.loginAs(t, sid, "sara@dukkan.test")

	if _, err := f.order.ConfirmTransfer(sid, "ord-seed-2"); err != services.ErrUnauthorized {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	// target order untouched
	o, err := f.orderRepo.Get("ord-seed-2")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.StatusPendingConfirmation {
		t.Fatalf("order mutated by unauthorized confirm: %s", o.Status)
	}

	// anonymous session
	if _, err := f.order.ConfirmTransfer("sid-anon", "ord-seed-2"); err != services.ErrUnauthorized {
		t.Fatalf("want ErrUnauthorized for anonymous, got %v", err)
	}
}

func TestConfirmTransferUnknownOrder(t *testing.T) {
	f := newStore(t, time.Hour)
	sid := "sid-admin"
	f.loginAs(t, sid, "admin@dukkan.test")

	if _, err := f.order.ConfirmTransfer(sid, "ord-does-not-exist"); err != services.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetOrderOwnershipRules(t *testing.T) {
	f := newStore(t, time.Hour)

	sidOwner := "sid-owner"
	f.loginAs(t, sidOwner, "sara@dukkan.test")
	if _, err := f.order.Get(sidOwner, "ord-seed-1"); err != nil {
		t.Fatalf("owner should see their order: %v", err)
	}

	sidOther := "sid-other"
	f.loginAs(t, sidOther, "omar@dukkan.test")
	if _, err := f.order.Get(sidOther, "ord-seed-1"); err != services.ErrNotFound {
		t.Fatalf("stranger should get ErrNotFound, got %v", err)
	}

	sidAdmin := "sid-admin"
	f.loginAs(t, sidAdmin, "admin@dukkan.test")
	if _, err := f.order.Get(sidAdmin, "ord-seed-1"); err != nil {
		t.Fatalf("admin should see any order: %v", err)
	}
}
