package store

import "time"

// seed loads the demo dataset the assistant runs against.
func (s *Store) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	s.accounts["user_001"] = &Account{
		ID:           "user_001",
		Name:         "John Doe",
		Email:        "john.doe@example.com",
		Phone:        "+1-555-0123",
		Address:      "123 Main St, Springfield, IL 62701",
		Balance:      5420.50,
		PasswordHash: "hashed_password_123",
		Cards: []Card{
			{ID: "card_1", Number: maskCard("1234"), Status: CardActive},
		},
		CreatedAt: now.Add(-400 * 24 * time.Hour),
	}
	s.accounts["user_002"] = &Account{
		ID:           "user_002",
		Name:         "Jane Smith",
		Email:        "jane.smith@example.com",
		Phone:        "+1-555-0456",
		Address:      "456 Oak Ave, Portland, OR 97201",
		Balance:      12750.25,
		PasswordHash: "hashed_password_456",
		Cards: []Card{
			{ID: "card_2", Number: maskCard("5678"), Status: CardActive},
		},
		CreatedAt: now.Add(-150 * 24 * time.Hour),
	}

	s.transactions["user_001"] = []Transaction{
		{ID: "txn_001", AccountID: "user_001", Amount: -89.99, Description: "Amazon Purchase", Date: now.Add(-24 * time.Hour)},
		{ID: "txn_002", AccountID: "user_001", Amount: 3500.00, Description: "Salary Deposit", Date: now.Add(-3 * 24 * time.Hour)},
		{ID: "txn_003", AccountID: "user_001", Amount: -125.50, Description: "Electric Bill", Date: now.Add(-5 * 24 * time.Hour)},
	}
	s.transactions["user_002"] = []Transaction{
		{ID: "txn_004", AccountID: "user_002", Amount: -156.32, Description: "Grocery Store", Date: now.Add(-2 * 24 * time.Hour)},
	}
}
