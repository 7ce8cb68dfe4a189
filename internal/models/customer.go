package models

// Customer is the row shape of the customers table.
type Customer struct {
	CustomerID string   `db:"customer_id"`
	Name       string   `db:"name"`
	Address    string   `db:"address"`
	City       string   `db:"city"`
	State      string   `db:"state"`
	Country    string   `db:"country"`
	AccountIDs []string `db:"account_ids"` // TEXT[] in creation order
	AuditFields
}
