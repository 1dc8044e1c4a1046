// Package storage is the durable keeper of transactions and budgets. It owns
// a local SQLite database and republishes an immutable snapshot of each
// collection after every successful mutation. All mutations are serialized
// through a single writer goroutine; a mutating call does not return until the
// write is durable and the new snapshot is observable.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"expensed/internal/core"
	"expensed/internal/observe"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned for mutations submitted after Close.
var ErrClosed = errors.New("storage: store closed")

type job struct {
	run  func() error
	done chan error
}

// Store provides durable CRUD for transactions and budgets plus continuously
// observable snapshots of both collections.
type Store struct {
	db   *sql.DB
	jobs chan job
	quit chan struct{}
	done chan struct{}
	once sync.Once

	transactions *observe.Value[[]core.Transaction]
	budgets      *observe.Value[[]core.Budget]
}

// Open opens (creating if necessary) the database at dbPath, runs migrations,
// loads the initial snapshots and starts the writer lane.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{
		db:   db,
		jobs: make(chan job),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	ctx := context.Background()
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	budgets, err := s.loadBudgets(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.transactions = observe.NewValue(txs)
	s.budgets = observe.NewValue(budgets)

	go s.writeLoop()

	return s, nil
}

// Close stops the writer lane and closes the database. Pending mutations that
// were already accepted run to completion first.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
	})
	return s.db.Close()
}

// Transactions is the observable snapshot of all persisted transactions,
// ordered by date descending; ties preserve insertion order.
func (s *Store) Transactions() *observe.Value[[]core.Transaction] {
	return s.transactions
}

// Budgets is the observable snapshot of all persisted budgets, in a stable
// (category, period) order.
func (s *Store) Budgets() *observe.Value[[]core.Budget] {
	return s.budgets
}

// writeLoop is the single writer lane: one mutation in flight at a time, FIFO
// across submitters.
func (s *Store) writeLoop() {
	defer close(s.done)
	for {
		select {
		case j := <-s.jobs:
			j.done <- j.run()
		case <-s.quit:
			for {
				select {
				case j := <-s.jobs:
					j.done <- j.run()
				default:
					return
				}
			}
		}
	}
}

// submit queues a mutation on the writer lane and waits for it to finish.
// Once accepted a mutation always runs to completion or failure; ctx is
// consulted only before enqueue.
func (s *Store) submit(ctx context.Context, run func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j := job{run: run, done: make(chan error, 1)}
	select {
	case s.jobs <- j:
	case <-s.quit:
		return ErrClosed
	}
	return <-j.done
}

// CreateTransaction assigns a new unique identifier, persists the record and
// republishes the transaction snapshot before returning the identifier.
func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.submit(ctx, func() error {
		res, err := s.db.Exec(
			`INSERT INTO transactions (category, amount, description, date, receipt_ref)
			 VALUES (?, ?, ?, ?, ?)`,
			string(t.Category), t.Amount, t.Description, t.Date.String(), t.ReceiptRef,
		)
		if err != nil {
			return persistence("create transaction", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return persistence("create transaction", err)
		}
		return s.refreshTransactions()
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", id,
		"category", string(t.Category),
		"amount", t.Amount,
		"date", t.Date.String())
	return id, nil
}

// UpdateTransaction replaces the stored record matching t.ID and republishes
// the snapshot. It returns ErrNotFound, without mutating anything, when no
// record carries that identifier.
func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	err := s.submit(ctx, func() error {
		res, err := s.db.Exec(
			`UPDATE transactions
			 SET category = ?, amount = ?, description = ?, date = ?, receipt_ref = ?
			 WHERE id = ?`,
			string(t.Category), t.Amount, t.Description, t.Date.String(), t.ReceiptRef, t.ID,
		)
		if err != nil {
			return persistence("update transaction", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return persistence("update transaction", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return s.refreshTransactions()
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID)
	return nil
}

// DeleteTransaction removes the stored record with the given identifier and
// republishes the snapshot. It returns ErrNotFound, without mutating
// anything, when no record carries that identifier.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	err := s.submit(ctx, func() error {
		res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
		if err != nil {
			return persistence("delete transaction", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return persistence("delete transaction", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return s.refreshTransactions()
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// TransactionByID is a point lookup against durable storage, not the
// in-memory snapshot. It may run concurrently with writes.
func (s *Store) TransactionByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, amount, description, date, receipt_ref
		 FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, persistence("get transaction", err)
	}
	return t, nil
}

// UpsertBudget inserts the budget row or, when a row for the same
// (category, period) key exists, atomically overwrites its amount. There is
// never more than one row per key. The budget snapshot is republished before
// the call returns.
func (s *Store) UpsertBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	err := s.submit(ctx, func() error {
		_, err := s.db.Exec(
			`INSERT INTO budgets (category, amount, period) VALUES (?, ?, ?)
			 ON CONFLICT(category, period) DO UPDATE SET amount = excluded.amount`,
			string(b.Category), b.Amount, b.Period,
		)
		if err != nil {
			return persistence("upsert budget", err)
		}
		return s.refreshBudgets()
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budget upserted",
		"category", string(b.Category),
		"period", b.Period,
		"amount", b.Amount)
	return nil
}

func (s *Store) refreshTransactions() error {
	txs, err := s.loadTransactions(context.Background())
	if err != nil {
		return err
	}
	s.transactions.Set(txs)
	return nil
}

func (s *Store) refreshBudgets() error {
	budgets, err := s.loadBudgets(context.Background())
	if err != nil {
		return err
	}
	s.budgets.Set(budgets)
	return nil
}

func (s *Store) loadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount, description, date, receipt_ref
		 FROM transactions ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, persistence("load transactions", err)
	}
	defer rows.Close()

	txs := make([]core.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, persistence("load transactions", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("load transactions", err)
	}
	return txs, nil
}

func (s *Store) loadBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, amount, period FROM budgets ORDER BY category, period`)
	if err != nil {
		return nil, persistence("load budgets", err)
	}
	defer rows.Close()

	budgets := make([]core.Budget, 0)
	for rows.Next() {
		var catStr string
		var b core.Budget
		if err := rows.Scan(&catStr, &b.Amount, &b.Period); err != nil {
			return nil, persistence("load budgets", err)
		}
		cat, known := core.CategoryOrFallback(catStr)
		if !known {
			slog.Warn("Unknown budget category in storage, substituting fallback",
				"stored", catStr, "fallback", string(cat))
		}
		b.Category = cat
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("load budgets", err)
	}
	return budgets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads one transaction row. An unknown stored category must
// not fail the read: it is substituted with the fallback category and logged.
func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		catStr  string
		dateStr string
		receipt sql.NullString
	)
	if err := row.Scan(&t.ID, &catStr, &t.Amount, &t.Description, &dateStr, &receipt); err != nil {
		return core.Transaction{}, err
	}

	cat, known := core.CategoryOrFallback(catStr)
	if !known {
		slog.Warn("Unknown transaction category in storage, substituting fallback",
			"id", t.ID, "stored", catStr, "fallback", string(cat))
	}
	t.Category = cat

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	t.Date = date

	if receipt.Valid {
		ref := receipt.String
		t.ReceiptRef = &ref
	}
	return t, nil
}
