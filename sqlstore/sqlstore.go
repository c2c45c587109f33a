// Package sqlstore provides the SQLite-backed record store for the ledger
// engine. Records are stored one table per entity as JSON documents keyed by
// id, so the schema never chases the Go types.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/ebzl/pennywise"
	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts     (id TEXT PRIMARY KEY, doc TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS transactions (id TEXT PRIMARY KEY, doc TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS schedules    (id TEXT PRIMARY KEY, doc TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS plans        (id TEXT PRIMARY KEY, doc TEXT NOT NULL);
`

// SQLStore is a pennywise.Store backed by a SQLite file.
type SQLStore struct {
	db   *sql.DB
	path string
}

var _ pennywise.Store = (*SQLStore)(nil)

// Open opens (creating if needed) the database at path. WAL mode keeps the
// file usable while a report reads and a mutation writes.
func Open(path string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create database directory: %w", err)
	}
	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}
	return &SQLStore{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *SQLStore) Path() string { return s.path }

func list[T any](s *SQLStore, table string) ([]*T, error) {
	rows, err := s.db.Query("SELECT doc FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("could not query %s: %w", table, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		v := new(T)
		if err := json.Unmarshal([]byte(doc), v); err != nil {
			return nil, fmt.Errorf("corrupt %s record: %w", table, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func get[T any](s *SQLStore, table, id string) (*T, error) {
	var doc string
	err := s.db.QueryRow("SELECT doc FROM "+table+" WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("could not query %s: %w", table, err)
	}
	v := new(T)
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return nil, fmt.Errorf("corrupt %s record: %w", table, err)
	}
	return v, nil
}

func (s *SQLStore) create(table, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("INSERT INTO "+table+" (id, doc) VALUES (?, ?)", id, string(doc))
	if err != nil {
		return fmt.Errorf("could not create %s record: %w", table, err)
	}
	return nil
}

func (s *SQLStore) update(table, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res, err := s.db.Exec("UPDATE "+table+" SET doc = ? WHERE id = ?", string(doc), id)
	if err != nil {
		return fmt.Errorf("could not update %s record: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(table, id)
	}
	return nil
}

func (s *SQLStore) delete(table, id string) error {
	if _, err := s.db.Exec("DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("could not delete %s record: %w", table, err)
	}
	return nil
}

func notFound(table, id string) error {
	if table == "accounts" {
		return fmt.Errorf("%w: %q", pennywise.ErrAccountNotFound, id)
	}
	return fmt.Errorf("%s record %q not found", table, id)
}

func (s *SQLStore) Accounts() ([]*pennywise.Account, error) {
	out, err := list[pennywise.Account](s, "accounts")
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *SQLStore) Account(id string) (*pennywise.Account, error) {
	return get[pennywise.Account](s, "accounts", id)
}

func (s *SQLStore) CreateAccount(a *pennywise.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return s.create("accounts", a.ID, a)
}

func (s *SQLStore) UpdateAccount(a *pennywise.Account) error {
	return s.update("accounts", a.ID, a)
}

func (s *SQLStore) DeleteAccount(id string) error { return s.delete("accounts", id) }

func (s *SQLStore) Transactions(filter func(*pennywise.Transaction) bool) ([]*pennywise.Transaction, error) {
	all, err := list[pennywise.Transaction](s, "transactions")
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, t := range all {
		if filter == nil || filter(t) {
			out = append(out, t)
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

func (s *SQLStore) Transaction(id string) (*pennywise.Transaction, error) {
	return get[pennywise.Transaction](s, "transactions", id)
}

func (s *SQLStore) CreateTransaction(t *pennywise.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return s.create("transactions", t.ID, t)
}

func (s *SQLStore) UpdateTransaction(t *pennywise.Transaction) error {
	return s.update("transactions", t.ID, t)
}

func (s *SQLStore) DeleteTransaction(id string) error { return s.delete("transactions", id) }

func (s *SQLStore) Schedules() ([]*pennywise.RecurringSchedule, error) {
	out, err := list[pennywise.RecurringSchedule](s, "schedules")
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *SQLStore) Schedule(id string) (*pennywise.RecurringSchedule, error) {
	return get[pennywise.RecurringSchedule](s, "schedules", id)
}

func (s *SQLStore) CreateSchedule(sc *pennywise.RecurringSchedule) error {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	return s.create("schedules", sc.ID, sc)
}

func (s *SQLStore) UpdateSchedule(sc *pennywise.RecurringSchedule) error {
	return s.update("schedules", sc.ID, sc)
}

func (s *SQLStore) DeleteSchedule(id string) error { return s.delete("schedules", id) }

func (s *SQLStore) Plans() ([]*pennywise.DebtPayoffPlan, error) {
	out, err := list[pennywise.DebtPayoffPlan](s, "plans")
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *SQLStore) CreatePlan(p *pennywise.DebtPayoffPlan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.create("plans", p.ID, p)
}

func (s *SQLStore) UpdatePlan(p *pennywise.DebtPayoffPlan) error {
	return s.update("plans", p.ID, p)
}

func (s *SQLStore) DeletePlan(id string) error { return s.delete("plans", id) }
