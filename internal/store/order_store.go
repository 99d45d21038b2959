package store

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/wemender/vorsilvester/internal/model"
)

// OrderStore reads and writes the order list in orders.json. The store
// exclusively owns the list; orders are never mutated after being
// written.
type OrderStore struct {
	mu   sync.Mutex
	path string
}

// NewOrderStore returns a store backed by orders.json under dataDir.
func NewOrderStore(dataDir string) *OrderStore {
	return &OrderStore{path: filepath.Join(dataDir, "orders.json")}
}

// Append prepends the order (newest first) and persists synchronously.
func (s *OrderStore) Append(o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := readList[model.Order](s.path)
	orders = append([]model.Order{o}, orders...)
	return writeList(s.path, orders)
}

// All returns every order, newest first.
func (s *OrderStore) All() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[model.Order](s.path)
}

// ByEmail returns the orders whose buyer email matches case-insensitively,
// newest first.
func (s *OrderStore) ByEmail(email string) []model.Order {
	s.mu.Lock()
	orders := readList[model.Order](s.path)
	s.mu.Unlock()

	var mine []model.Order
	for _, o := range orders {
		if strings.EqualFold(o.Email, email) {
			mine = append(mine, o)
		}
	}
	return mine
}
