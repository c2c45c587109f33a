package pennywise

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Store is the generic record store the ledger engine runs against. It is an
// external collaborator: implementations own persistence mechanics, the
// engine owns the mutation logic. There is no cross-record atomicity; each
// call stands alone (see the sqlstore subpackage for the SQLite-backed
// implementation, or MemStore for an in-memory one).
type Store interface {
	Accounts() ([]*Account, error)
	Account(id string) (*Account, error)
	CreateAccount(a *Account) error
	UpdateAccount(a *Account) error
	DeleteAccount(id string) error

	Transactions(filter func(*Transaction) bool) ([]*Transaction, error)
	Transaction(id string) (*Transaction, error)
	CreateTransaction(t *Transaction) error
	UpdateTransaction(t *Transaction) error
	DeleteTransaction(id string) error

	Schedules() ([]*RecurringSchedule, error)
	Schedule(id string) (*RecurringSchedule, error)
	CreateSchedule(s *RecurringSchedule) error
	UpdateSchedule(s *RecurringSchedule) error
	DeleteSchedule(id string) error

	Plans() ([]*DebtPayoffPlan, error)
	CreatePlan(p *DebtPayoffPlan) error
	UpdatePlan(p *DebtPayoffPlan) error
	DeletePlan(id string) error
}

// MemStore is an in-memory Store. It hands out copies, so callers observe
// record-store semantics: a mutation is only visible after an Update call.
type MemStore struct {
	accounts     map[string]Account
	transactions map[string]Transaction
	schedules    map[string]RecurringSchedule
	plans        map[string]DebtPayoffPlan
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts:     make(map[string]Account),
		transactions: make(map[string]Transaction),
		schedules:    make(map[string]RecurringSchedule),
		plans:        make(map[string]DebtPayoffPlan),
	}
}

func (m *MemStore) Accounts() ([]*Account, error) {
	out := make([]*Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStore) Account(id string) (*Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, id)
	}
	return &a, nil
}

func (m *MemStore) CreateAccount(a *Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.accounts[a.ID] = *a
	return nil
}

func (m *MemStore) UpdateAccount(a *Account) error {
	if _, ok := m.accounts[a.ID]; !ok {
		return fmt.Errorf("%w: %q", ErrAccountNotFound, a.ID)
	}
	m.accounts[a.ID] = *a
	return nil
}

func (m *MemStore) DeleteAccount(id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *MemStore) Transactions(filter func(*Transaction) bool) ([]*Transaction, error) {
	out := make([]*Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		t := t
		if filter == nil || filter(&t) {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemStore) Transaction(id string) (*Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %q not found", id)
	}
	return &t, nil
}

func (m *MemStore) CreateTransaction(t *Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.transactions[t.ID] = *t
	return nil
}

func (m *MemStore) UpdateTransaction(t *Transaction) error {
	if _, ok := m.transactions[t.ID]; !ok {
		return fmt.Errorf("transaction %q not found", t.ID)
	}
	m.transactions[t.ID] = *t
	return nil
}

func (m *MemStore) DeleteTransaction(id string) error {
	delete(m.transactions, id)
	return nil
}

func (m *MemStore) Schedules() ([]*RecurringSchedule, error) {
	out := make([]*RecurringSchedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStore) Schedule(id string) (*RecurringSchedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, fmt.Errorf("schedule %q not found", id)
	}
	return &s, nil
}

func (m *MemStore) CreateSchedule(s *RecurringSchedule) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.schedules[s.ID] = *s
	return nil
}

func (m *MemStore) UpdateSchedule(s *RecurringSchedule) error {
	if _, ok := m.schedules[s.ID]; !ok {
		return fmt.Errorf("schedule %q not found", s.ID)
	}
	m.schedules[s.ID] = *s
	return nil
}

func (m *MemStore) DeleteSchedule(id string) error {
	delete(m.schedules, id)
	return nil
}

func (m *MemStore) Plans() ([]*DebtPayoffPlan, error) {
	out := make([]*DebtPayoffPlan, 0, len(m.plans))
	for _, p := range m.plans {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStore) CreatePlan(p *DebtPayoffPlan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.plans[p.ID] = *p
	return nil
}

func (m *MemStore) UpdatePlan(p *DebtPayoffPlan) error {
	if _, ok := m.plans[p.ID]; !ok {
		return fmt.Errorf("plan %q not found", p.ID)
	}
	m.plans[p.ID] = *p
	return nil
}

func (m *MemStore) DeletePlan(id string) error {
	delete(m.plans, id)
	return nil
}

var _ Store = (*MemStore)(nil)
