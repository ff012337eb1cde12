package constellation

import (
	"sync"

	"github.com/pkg/errors"
)

type InMemoryDatabase struct {
	lastRefs map[string]TransactionReference
	pending  map[string]PendingTransaction
	mu       sync.RWMutex
}

var _ Database = &InMemoryDatabase{}

func NewInMemoryDatabase() *InMemoryDatabase {
	return &InMemoryDatabase{
		lastRefs: make(map[string]TransactionReference),
		pending:  make(map[string]PendingTransaction),
	}
}

func (db *InMemoryDatabase) SetLastReference(address string, ref TransactionReference) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.lastRefs[address]; ok && ref.Ordinal <= existing.Ordinal {
		return errors.Errorf("ordinal %d does not advance last reference %d for %s",
			ref.Ordinal, existing.Ordinal, address)
	}

	db.lastRefs[address] = ref
	return nil
}

func (db *InMemoryDatabase) GetLastReference(address string) (TransactionReference, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	// unknown addresses start the chain at the genesis reference
	return db.lastRefs[address], nil
}

func (db *InMemoryDatabase) AddPendingTransaction(pending PendingTransaction) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.pending[pending.Hash]; ok {
		return errors.Errorf("transaction %s already pending", pending.Hash)
	}

	db.pending[pending.Hash] = pending
	return nil
}

func (db *InMemoryDatabase) GetPendingTransaction(hash string) (PendingTransaction, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	pending, ok := db.pending[hash]
	if !ok {
		return PendingTransaction{}, errors.Wrap(ErrTransactionNotFound, hash)
	}

	return pending, nil
}

func (db *InMemoryDatabase) SetTransactionStatus(hash string, status TransactionStatus) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !status.Valid() {
		return errors.Wrapf(ErrInvalidStatus, "'%s'", status)
	}

	pending, ok := db.pending[hash]
	if !ok {
		return errors.Wrap(ErrTransactionNotFound, hash)
	}

	pending.Status = status
	db.pending[hash] = pending
	return nil
}

func (db *InMemoryDatabase) EvictTransaction(hash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.pending[hash]; !ok {
		return errors.Wrap(ErrTransactionNotFound, hash)
	}

	delete(db.pending, hash)
	return nil
}
