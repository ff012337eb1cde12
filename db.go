package constellation

import (
	_ "github.com/mattn/go-sqlite3"
)

// Database holds the ledger state an L1 node tracks per address: the last
// accepted reference and the pool of pending transactions. Used by the
// mock node in cmd/l1mock; the SDK clients themselves are stateless.
type Database interface {
	SetLastReference(address string, ref TransactionReference) (err error)
	GetLastReference(address string) (ref TransactionReference, err error)

	AddPendingTransaction(pending PendingTransaction) (err error)
	GetPendingTransaction(hash string) (pending PendingTransaction, err error)
	SetTransactionStatus(hash string, status TransactionStatus) (err error)
	EvictTransaction(hash string) (err error)
}
