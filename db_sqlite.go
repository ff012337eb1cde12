package constellation

import (
	"database/sql"
	"encoding/json"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SqlLiteDatabase struct {
	db *sql.DB
	mu sync.Mutex
}

var _ Database = &SqlLiteDatabase{}

func NewSqlLiteDatabase(path string) (db *SqlLiteDatabase, err error) {
	log.Info().Msgf("opening sqlite db at: '%s'", path)

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		err = errors.Wrap(err, "failed to open database")
		return
	}

	if err = sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to ping database")
		return
	}

	db = &SqlLiteDatabase{db: sqldb}
	if err = db.initTables(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to init tables")
		return
	}

	return
}

func (s *SqlLiteDatabase) initTables() (err error) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS last_ref (
			address TEXT PRIMARY KEY,
			hash TEXT,
			ordinal INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS pending (
			hash TEXT PRIMARY KEY,
			status TEXT,
			tx TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pending_status ON pending(status)`,
	}

	for i, query := range queries {
		_, err = s.db.Exec(query)
		if err != nil {
			err = errors.Wrapf(err, "failed to execute query: %d", i)
			return
		}
	}

	return
}

func (s *SqlLiteDatabase) SetLastReference(address string, ref TransactionReference) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ordinal uint64
	err = s.db.QueryRow(
		`SELECT ordinal FROM last_ref WHERE address = ?`, address).Scan(&ordinal)
	if err != nil && err != sql.ErrNoRows {
		return errors.WithStack(err)
	}
	if err == nil && ref.Ordinal <= ordinal {
		return errors.Errorf("ordinal %d does not advance last reference %d for %s",
			ref.Ordinal, ordinal, address)
	}

	_, err = s.db.Exec(
		`INSERT INTO last_ref (address, hash, ordinal) VALUES (?, ?, ?)
		 ON CONFLICT(address) DO UPDATE SET hash = excluded.hash, ordinal = excluded.ordinal`,
		address, ref.Hash, ref.Ordinal)

	return errors.WithStack(err)
}

func (s *SqlLiteDatabase) GetLastReference(address string) (ref TransactionReference, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.QueryRow(
		`SELECT hash, ordinal FROM last_ref WHERE address = ?`, address).
		Scan(&ref.Hash, &ref.Ordinal)
	if err == sql.ErrNoRows {
		// unknown addresses start the chain at the genesis reference
		return TransactionReference{}, nil
	}

	return ref, errors.WithStack(err)
}

func (s *SqlLiteDatabase) AddPendingTransaction(pending PendingTransaction) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := json.Marshal(pending.Transaction)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = s.db.Exec(
		`INSERT INTO pending (hash, status, tx) VALUES (?, ?, ?)`,
		pending.Hash, string(pending.Status), string(tx))

	return errors.Wrapf(err, "failed to add pending transaction %s", pending.Hash)
}

func (s *SqlLiteDatabase) GetPendingTransaction(hash string) (pending PendingTransaction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status, tx string
	err = s.db.QueryRow(
		`SELECT status, tx FROM pending WHERE hash = ?`, hash).Scan(&status, &tx)
	if err == sql.ErrNoRows {
		err = errors.Wrap(ErrTransactionNotFound, hash)
		return
	}
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	pending.Hash = hash
	pending.Status = TransactionStatus(status)
	err = errors.WithStack(json.Unmarshal([]byte(tx), &pending.Transaction))

	return
}

func (s *SqlLiteDatabase) SetTransactionStatus(hash string, status TransactionStatus) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.Valid() {
		return errors.Wrapf(ErrInvalidStatus, "'%s'", status)
	}

	result, err := s.db.Exec(
		`UPDATE pending SET status = ? WHERE hash = ?`, string(status), hash)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errors.Wrap(ErrTransactionNotFound, hash)
	}

	return
}

func (s *SqlLiteDatabase) EvictTransaction(hash string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM pending WHERE hash = ?`, hash)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errors.Wrap(ErrTransactionNotFound, hash)
	}

	return
}

func (s *SqlLiteDatabase) Close() error {
	return errors.WithStack(s.db.Close())
}
