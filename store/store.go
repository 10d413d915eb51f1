// Package store holds the in-memory account, transaction, and ticket data
// behind the support operations. A real deployment would back this with a
// database; the contract stays the same.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

type CardStatus string

const (
	CardActive      CardStatus = "active"
	CardDeactivated CardStatus = "deactivated"
)

type Card struct {
	ID     string     `json:"id"`
	Number string     `json:"number"` // masked, e.g. "**** **** **** 1234"
	Status CardStatus `json:"status"`
}

type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Balance      float64   `json:"balance"`
	PasswordHash string    `json:"-"`
	Cards        []Card    `json:"cards"`
	CreatedAt    time.Time `json:"created_at"`
}

type Transaction struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type Ticket struct {
	ID          string       `json:"id"`
	AccountID   string       `json:"account_id"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	Priority    string       `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Store owns all records. A single mutex serializes every mutation, so a
// mutation on one account always completes before the next reads or writes
// any account — there is no partial mutation to observe.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*Account
	transactions map[string][]Transaction
	tickets      []Ticket
	now          func() time.Time
}

var ticketPriorities = []string{"low", "medium", "high"}

func New() *Store {
	return &Store{
		accounts:     make(map[string]*Account),
		transactions: make(map[string][]Transaction),
		now:          time.Now,
	}
}

// NewSeeded returns a store pre-loaded with the demo accounts.
func NewSeeded() *Store {
	s := New()
	s.seed()
	return s
}

func (s *Store) GetAccount(id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	return snapshot(a), nil
}

func (s *Store) GetBalance(id string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	return a.Balance, nil
}

func (s *Store) SetPassword(id, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	// Cleartext stand-in for a real credential hash.
	a.PasswordHash = "hashed_" + newPassword
	log.Info().Str("account", id).Msg("password changed")
	return nil
}

// Credential reports the stored credential for internal checks and tests.
func (s *Store) Credential(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	return a.PasswordHash, nil
}

func (s *Store) UpdateAddress(id, newAddress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	old := a.Address
	a.Address = newAddress
	log.Info().Str("account", id).Str("old", old).Str("new", newAddress).Msg("address updated")
	return nil
}

// RecentTransactions returns up to limit transactions, most recent first.
// limit <= 0 means no cap.
func (s *Store) RecentTransactions(id string, limit int) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[id]; !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	txns := s.transactions[id]
	out := make([]Transaction, len(txns))
	copy(out, txns)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AppendTransaction records a new transaction for an account.
func (s *Store) AppendTransaction(id string, amount float64, description string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	txn := Transaction{
		ID:          fmt.Sprintf("txn_%03d", s.countTransactionsLocked()+1),
		AccountID:   id,
		Amount:      amount,
		Description: description,
		Date:        s.now(),
	}
	s.transactions[id] = append(s.transactions[id], txn)
	a.Balance += amount
	return txn, nil
}

// DeactivateCard marks a card deactivated. Deactivating a card that is
// already inactive succeeds idempotently.
func (s *Store) DeactivateCard(id, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	for i := range a.Cards {
		if a.Cards[i].ID == cardID {
			a.Cards[i].Status = CardDeactivated
			log.Info().Str("account", id).Str("card", cardID).Msg("card deactivated")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", contractx.ErrCardNotFound, cardID)
}

// DeactivateAllCards deactivates every card on the account. Used when a
// caller asks for a security lockdown without naming a card.
func (s *Store) DeactivateAllCards(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	for i := range a.Cards {
		a.Cards[i].Status = CardDeactivated
	}
	log.Info().Str("account", id).Int("cards", len(a.Cards)).Msg("all cards deactivated")
	return nil
}

func (s *Store) CreateTicket(id, description string) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return Ticket{}, fmt.Errorf("%w: %s", contractx.ErrAccountNotFound, id)
	}
	t := Ticket{
		ID:          fmt.Sprintf("TKT-%03d", len(s.tickets)+1),
		AccountID:   id,
		Description: description,
		Status:      TicketOpen,
		Priority:    ticketPriorities[len(s.tickets)%len(ticketPriorities)],
		CreatedAt:   s.now(),
	}
	s.tickets = append(s.tickets, t)
	log.Info().Str("account", id).Str("ticket", t.ID).Msg("ticket created")
	return t, nil
}

func (s *Store) CloseTicket(ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == ticketID {
			s.tickets[i].Status = TicketClosed
			return nil
		}
	}
	return fmt.Errorf("ticket not found: %s", ticketID)
}

// Tickets returns the tickets filed for an account, oldest first.
func (s *Store) Tickets(id string) []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Ticket
	for _, t := range s.tickets {
		if t.AccountID == id {
			out = append(out, t)
		}
	}
	return out
}

// AccountDetails returns the full account snapshot.
func (s *Store) AccountDetails(id string) (Account, error) {
	return s.GetAccount(id)
}

// KnownAccountIDs lists every account identifier, sorted, for the shell's
// "available users" hint when a switch misses.
func (s *Store) KnownAccountIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) countTransactionsLocked() int {
	n := 0
	for _, txns := range s.transactions {
		n += len(txns)
	}
	return n
}

// snapshot deep-copies an account so internal pointers never escape the lock.
func snapshot(a *Account) Account {
	cp := *a
	cp.Cards = make([]Card, len(a.Cards))
	copy(cp.Cards, a.Cards)
	return cp
}

func maskCard(last4 string) string {
	return strings.Repeat("**** ", 3) + last4
}
