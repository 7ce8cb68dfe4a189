package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/google/uuid"
)

// seedCustomer is the on-disk shape of a pre-provisioned customer.
type seedCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type seedFile struct {
	Customers []seedCustomer `json:"customers"`
}

// LoadSeedCustomers reads customers from a JSON file of the form
// {"customers": [{"id": "...", "name": "...", ...}]}.
func LoadSeedCustomers(path string, now time.Time) ([]domain.Customer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeedCustomers(raw, now)
}

// ParseSeedCustomers decodes seed customers from raw JSON.
func ParseSeedCustomers(raw []byte, now time.Time) ([]domain.Customer, error) {
	var file seedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	customers := make([]domain.Customer, 0, len(file.Customers))
	seen := make(map[string]struct{}, len(file.Customers))
	for i, sc := range file.Customers {
		if _, err := uuid.Parse(sc.ID); err != nil || len(sc.ID) != 36 {
			return nil, fmt.Errorf("seed customer %d: invalid ID %q", i, sc.ID)
		}
		if _, dup := seen[sc.ID]; dup {
			return nil, fmt.Errorf("seed customer %d: duplicate ID %s", i, sc.ID)
		}
		seen[sc.ID] = struct{}{}
		customers = append(customers, domain.Customer{
			CustomerID: sc.ID,
			Name:       sc.Name,
			Address:    sc.Address,
			City:       sc.City,
			State:      sc.State,
			Country:    sc.Country,
			AccountIDs: []string{},
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		})
	}
	return customers, nil
}
