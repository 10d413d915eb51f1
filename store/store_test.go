package store

import (
	"errors"
	"testing"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

func TestSeededBalances(t *testing.T) {
	t.Parallel()

	s := NewSeeded()

	balance, err := s.GetBalance("user_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 5420.50 {
		t.Fatalf("unexpected balance: %v", balance)
	}

	balance, err = s.GetBalance("user_002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 12750.25 {
		t.Fatalf("unexpected balance: %v", balance)
	}
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	if _, err := s.GetBalance("user_999"); !errors.Is(err, contractx.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	if err := s.SetPassword("user_001", "newSecurePass123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cred, err := s.Credential("user_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred != "hashed_newSecurePass123" {
		t.Fatalf("unexpected credential: %s", cred)
	}

	if err := s.SetPassword("user_999", "x"); !errors.Is(err, contractx.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateAddress(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	if err := s.UpdateAddress("user_002", "789 Pine Rd, Denver, CO 80201"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := s.GetAccount("user_002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Address != "789 Pine Rd, Denver, CO 80201" {
		t.Fatalf("unexpected address: %s", a.Address)
	}
}

func TestRecentTransactionsOrderAndLimit(t *testing.T) {
	t.Parallel()

	s := NewSeeded()

	txns, err := s.RecentTransactions("user_001", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txns))
	}
	for i := 1; i < len(txns); i++ {
		if txns[i].Date.After(txns[i-1].Date) {
			t.Fatalf("transactions not sorted most recent first at index %d", i)
		}
	}
	if txns[0].ID != "txn_001" {
		t.Fatalf("unexpected most recent transaction: %s", txns[0].ID)
	}

	txns, err = s.RecentTransactions("user_001", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
}

func TestAppendTransactionAdjustsBalance(t *testing.T) {
	t.Parallel()

	s := NewSeeded()

	txn, err := s.AppendTransaction("user_002", -50.25, "Coffee Shop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ID == "" {
		t.Fatal("expected a transaction id")
	}

	balance, err := s.GetBalance("user_002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 12700.00 {
		t.Fatalf("unexpected balance after append: %v", balance)
	}

	txns, err := s.RecentTransactions("user_002", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
}

func TestDeactivateCardIdempotent(t *testing.T) {
	t.Parallel()

	s := NewSeeded()

	if err := s.DeactivateCard("user_001", "card_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second deactivation of the same card succeeds without change.
	if err := s.DeactivateCard("user_001", "card_1"); err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}

	a, err := s.GetAccount("user_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Cards[0].Status != CardDeactivated {
		t.Fatalf("unexpected card status: %s", a.Cards[0].Status)
	}
}

func TestDeactivateCardUnknownCard(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	if err := s.DeactivateCard("user_001", "card_999"); !errors.Is(err, contractx.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestDeactivateAllCards(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	if err := s.DeactivateAllCards("user_002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := s.GetAccount("user_002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range a.Cards {
		if c.Status != CardDeactivated {
			t.Fatalf("card %s still %s", c.ID, c.Status)
		}
	}
}

func TestCreateTicketSequence(t *testing.T) {
	t.Parallel()

	s := NewSeeded()

	first, err := s.CreateTicket("user_001", "My card was declined at the store")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != "TKT-001" {
		t.Fatalf("unexpected ticket id: %s", first.ID)
	}
	if first.Status != TicketOpen {
		t.Fatalf("unexpected ticket status: %s", first.Status)
	}

	second, err := s.CreateTicket("user_002", "App keeps logging me out")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != "TKT-002" {
		t.Fatalf("unexpected ticket id: %s", second.ID)
	}
	if second.Priority == first.Priority {
		t.Fatalf("expected rotating priority, got %s twice", second.Priority)
	}

	tickets := s.Tickets("user_001")
	if len(tickets) != 1 || tickets[0].ID != "TKT-001" {
		t.Fatalf("unexpected tickets for user_001: %+v", tickets)
	}
}

func TestCloseTicket(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	ticket, err := s.CreateTicket("user_001", "Statement PDF will not download")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.CloseTicket(ticket.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tickets := s.Tickets("user_001")
	if tickets[0].Status != TicketClosed {
		t.Fatalf("unexpected status: %s", tickets[0].Status)
	}

	if err := s.CloseTicket("TKT-999"); err == nil {
		t.Fatal("expected error for unknown ticket")
	}
}

func TestSnapshotDoesNotAliasStore(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	a, err := s.GetAccount("user_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Cards[0].Status = CardDeactivated

	fresh, err := s.GetAccount("user_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Cards[0].Status != CardActive {
		t.Fatal("mutating a snapshot leaked into the store")
	}
}

func TestKnownAccountIDs(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	ids := s.KnownAccountIDs()
	if len(ids) != 2 || ids[0] != "user_001" || ids[1] != "user_002" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
