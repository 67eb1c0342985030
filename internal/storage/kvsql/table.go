// Package kvsql implements the document operations shared by the SQL
// backends. Queries are written with ? placeholders and rebound per driver.
package kvsql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/mindcalm/internal/storage"
)

// Table operates on the kv and kv_history tables created by the migrations.
type Table struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Table {
	return &Table{db: db, now: time.Now}
}

type historyRow struct {
	ID        int64  `db:"id"`
	Key       string `db:"key"`
	Value     string `db:"value"`
	ChangedAt string `db:"changed_at"`
}

func (t *Table) ready() error {
	if t == nil || t.db == nil {
		return storage.ErrNotLoaded
	}
	return nil
}

func (t *Table) Get(key string) ([]byte, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	var value string
	err := t.db.Get(&value, t.db.Rebind("SELECT value FROM kv WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts a document. When the key already held a value, that value is
// appended to kv_history in the same transaction.
func (t *Table) Set(key string, value []byte) error {
	if err := t.ready(); err != nil {
		return err
	}
	ts := t.now().UTC().Format(time.RFC3339Nano)

	tx, err := t.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := t.archive(tx, key, ts); err != nil {
		return err
	}

	upsert := t.db.Rebind(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := tx.Exec(upsert, key, string(value), ts); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return tx.Commit()
}

func (t *Table) Delete(key string) error {
	if err := t.ready(); err != nil {
		return err
	}
	ts := t.now().UTC().Format(time.RFC3339Nano)

	tx, err := t.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := t.archive(tx, key, ts); err != nil {
		return err
	}
	if _, err := tx.Exec(t.db.Rebind("DELETE FROM kv WHERE key = ?"), key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return tx.Commit()
}

func (t *Table) archive(tx *sqlx.Tx, key, ts string) error {
	var prev string
	err := tx.Get(&prev, t.db.Rebind("SELECT value FROM kv WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %q before archiving: %w", key, err)
	}
	insert := t.db.Rebind("INSERT INTO kv_history (key, value, changed_at) VALUES (?, ?, ?)")
	if _, err := tx.Exec(insert, key, prev, ts); err != nil {
		return fmt.Errorf("failed to archive %q: %w", key, err)
	}
	return nil
}

func (t *Table) Keys() ([]string, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	var keys []string
	if err := t.db.Select(&keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// History returns prior values of key, newest first.
func (t *Table) History(key string, limit int) ([]storage.Revision, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	var rows []historyRow
	q := t.db.Rebind("SELECT id, key, value, changed_at FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?")
	if err := t.db.Select(&rows, q, key, limit); err != nil {
		return nil, fmt.Errorf("failed to read history for %q: %w", key, err)
	}
	revs := make([]storage.Revision, 0, len(rows))
	for _, r := range rows {
		revs = append(revs, r.revision())
	}
	return revs, nil
}

func (t *Table) Revision(id int64) (storage.Revision, error) {
	if err := t.ready(); err != nil {
		return storage.Revision{}, err
	}
	var row historyRow
	err := t.db.Get(&row, t.db.Rebind("SELECT id, key, value, changed_at FROM kv_history WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Revision{}, fmt.Errorf("revision %d: %w", id, storage.ErrKeyNotFound)
	}
	if err != nil {
		return storage.Revision{}, err
	}
	return row.revision(), nil
}

func (r historyRow) revision() storage.Revision {
	changed, _ := time.Parse(time.RFC3339Nano, r.ChangedAt)
	return storage.Revision{ID: r.ID, Key: r.Key, Value: r.Value, ChangedAt: changed}
}
