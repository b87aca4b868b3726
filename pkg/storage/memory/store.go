// Package memory is a single-process implementation of storage.Storage. Every
// method holds one lock for its whole read-check-write, which gives the same
// all-or-nothing behaviour as the conditional DynamoDB writes. Records are
// kept in their attributevalue form so callers never share memory with the
// store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

type item = map[string]types.AttributeValue

// Store keeps wallets, transactions and matches in memory.
type Store struct {
	mu           sync.Mutex
	wallets      map[string]item
	transactions map[string]item
	matches      map[string]item
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		wallets:      make(map[string]item),
		transactions: make(map[string]item),
		matches:      make(map[string]item),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func now() time.Time {
	return time.Now().UTC()
}

func put(table map[string]item, key string, v interface{}) error {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	table[key] = av
	return nil
}

func get[T any](table map[string]item, key string) (*T, bool, error) {
	av, ok := table[key]
	if !ok {
		return nil, false, nil
	}
	var v T
	if err := attributevalue.UnmarshalMap(av, &v); err != nil {
		return nil, true, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &v, true, nil
}

func all[T any](table map[string]item) ([]T, error) {
	out := make([]T, 0, len(table))
	for _, av := range table {
		var v T
		if err := attributevalue.UnmarshalMap(av, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// CreateWallet stores a new wallet and its optional opening transaction.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet, opening *models.Transaction) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wallets[wallet.UserID]; ok {
		return nil, fmt.Errorf("%w: user ID %s", storage.ErrWalletExists, wallet.UserID)
	}
	if opening != nil {
		if _, ok := s.transactions[opening.ID]; ok {
			return nil, storage.ErrDuplicateReference
		}
		if err := put(s.transactions, opening.ID, opening); err != nil {
			return nil, err
		}
	}
	if err := put(s.wallets, wallet.UserID, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// GetWallet retrieves a user's wallet.
func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getWallet(userID)
}

func (s *Store) getWallet(userID string) (*models.Wallet, error) {
	w, ok, err := get[models.Wallet](s.wallets, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: user ID %s", storage.ErrWalletNotFound, userID)
	}
	return w, nil
}

// ListWallets retrieves all wallets.
func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return all[models.Wallet](s.wallets)
}

// SetWalletStatus changes the moderation status of a wallet that is not closed.
func (s *Store) SetWalletStatus(ctx context.Context, userID string, status models.WalletStatus) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.getWallet(userID)
	if err != nil {
		return nil, err
	}
	if w.Status == models.WalletClosed {
		return nil, fmt.Errorf("%w: wallet is closed", storage.ErrWalletNotActive)
	}
	w.Status = status
	w.UpdatedAt = now()
	w.Version++
	if err := put(s.wallets, userID, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ApplyTransaction records a successful credit or debit.
func (s *Store) ApplyTransaction(ctx context.Context, tx *models.Transaction) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(tx, models.SUCCESS)
	w, err := s.applyLocked(tx)
	if err != nil {
		return nil, err
	}
	if err := s.commit(w, tx); err != nil {
		return nil, err
	}
	return w, nil
}

func prepare(tx *models.Transaction, status models.TransactionStatus) {
	ts := now()
	if tx.ID == "" {
		tx.ID = models.TransactionIDFor(tx.UserID, tx.ReferenceID)
	}
	if tx.WalletID == "" {
		tx.WalletID = models.WalletIDFor(tx.UserID)
	}
	tx.Status = status
	tx.CreatedAt = ts
	tx.UpdatedAt = ts
}

// applyLocked checks tx against the wallet and returns the changed wallet
// without writing anything.
func (s *Store) applyLocked(tx *models.Transaction) (*models.Wallet, error) {
	if _, ok := s.transactions[tx.ID]; ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrDuplicateReference, tx.ReferenceID)
	}
	w, err := s.getWallet(tx.UserID)
	if err != nil {
		return nil, err
	}
	if w.Status != models.WalletActive {
		return nil, fmt.Errorf("%w: status is %s", storage.ErrWalletNotActive, w.Status)
	}

	switch tx.Type {
	case models.CREDIT:
		w.Balance += tx.Amount
		w.TotalDeposits += tx.Amount
	case models.DEBIT:
		if w.Balance < tx.Amount {
			return nil, storage.ErrInsufficientBalance
		}
		w.Balance -= tx.Amount
		w.TotalWithdrawals += tx.Amount
	default:
		return nil, fmt.Errorf("unknown transaction type %q", tx.Type)
	}

	ts := tx.UpdatedAt
	w.LastTransactionAt = &ts
	w.UpdatedAt = ts
	w.Version++
	return w, nil
}

func (s *Store) commit(w *models.Wallet, tx *models.Transaction) error {
	if err := put(s.transactions, tx.ID, tx); err != nil {
		return err
	}
	return put(s.wallets, w.UserID, w)
}

// GetTransaction retrieves a transaction by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getTransaction(txID)
}

func (s *Store) getTransaction(txID string) (*models.Transaction, error) {
	tx, ok, err := get[models.Transaction](s.transactions, txID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: ID %s", storage.ErrTransactionNotFound, txID)
	}
	return tx, nil
}

// ListTransactions returns one page of a user's transactions, newest first.
// The cursor is the offset of the next page.
func (s *Store) ListTransactions(ctx context.Context, userID string, limit int32, cursor string) (*models.TransactionPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: malformed cursor", storage.ErrInvalidCursor)
		}
		offset = n
	}

	txs, err := all[models.Transaction](s.transactions)
	if err != nil {
		return nil, err
	}

	var mine []models.Transaction
	for _, tx := range txs {
		if tx.UserID == userID {
			mine = append(mine, tx)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].CreatedAt.After(mine[j].CreatedAt)
		}
		return mine[i].ID > mine[j].ID
	})

	page := &models.TransactionPage{}
	if offset >= len(mine) {
		return page, nil
	}
	end := offset + int(limit)
	if end < len(mine) {
		page.NextCursor = strconv.Itoa(end)
	} else {
		end = len(mine)
	}
	page.Items = mine[offset:end]
	return page, nil
}

// GetStalePendingTransactions retrieves transactions pending for longer than maxAge.
func (s *Store) GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := all[models.Transaction](s.transactions)
	if err != nil {
		return nil, err
	}

	cutoff := now().Add(-maxAge)
	var stale []models.Transaction
	for _, tx := range txs {
		if tx.Status == models.PENDING && tx.CreatedAt.Before(cutoff) {
			stale = append(stale, tx)
		}
	}
	return stale, nil
}

// CreatePendingTransaction records a pending deposit.
func (s *Store) CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(tx, models.PENDING)
	if _, ok := s.transactions[tx.ID]; ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrDuplicateReference, tx.ReferenceID)
	}
	if err := put(s.transactions, tx.ID, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// SettleDeposit finalises a pending deposit, crediting the wallet on success.
func (s *Store) SettleDeposit(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.getTransaction(txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.PENDING {
		return nil, fmt.Errorf("%w: transaction %s is %s", storage.ErrDepositNotPending, txID, tx.Status)
	}

	tx.UpdatedAt = now()
	if !succeeded {
		tx.Status = models.FAILED
		if err := put(s.transactions, tx.ID, tx); err != nil {
			return nil, err
		}
		return tx, nil
	}

	w, err := s.getWallet(tx.UserID)
	if err != nil {
		return nil, err
	}
	if w.Status != models.WalletActive {
		return nil, fmt.Errorf("%w: status is %s", storage.ErrWalletNotActive, w.Status)
	}
	w.Balance += tx.Amount
	w.TotalDeposits += tx.Amount
	ts := tx.UpdatedAt
	w.LastTransactionAt = &ts
	w.UpdatedAt = ts
	w.Version++

	tx.Status = models.SUCCESS
	if err := s.commit(w, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
