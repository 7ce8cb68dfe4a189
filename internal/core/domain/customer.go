package domain

// Customer is the owner of one or more accounts.
// Customers are provisioned outside the ledger; the ledger only appends
// to AccountIDs when it opens a new account.
type Customer struct {
	CustomerID string   `json:"customerID"` // Primary Key (UUID)
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Country    string   `json:"country"`
	AccountIDs []string `json:"accountIDs"` // Back-references in creation order
	AuditFields
}

// CustomerDetails is a customer with its account list expanded to full records.
type CustomerDetails struct {
	Customer
	Accounts []Account `json:"accounts"`
}
