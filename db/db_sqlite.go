// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// import to register the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/statekv/statekv/db/batch"
	"github.com/statekv/statekv/pkg/lifecycle"
	"github.com/statekv/statekv/pkg/log"
)

// SQLite3KVStore is KVStore implementation based on a local sqlite3 file,
// each namespace is stored as one table
type SQLite3KVStore struct {
	lifecycle.Readiness
	db     *sql.DB
	tables sync.Map // tables known to exist
	path   string
	config Config
}

// NewSQLite3KVStore creates a new SQLite3KVStore instance
func NewSQLite3KVStore(cfg Config) *SQLite3KVStore {
	return &SQLite3KVStore{
		db:     nil,
		path:   cfg.DbPath,
		config: cfg,
	}
}

// Start opens the sqlite3 file (creates new file if not existing yet)
func (b *SQLite3KVStore) Start(_ context.Context) error {
	dsn := b.path
	if b.config.ReadOnly {
		dsn = "file:" + b.path + "?mode=ro"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	if err := db.Ping(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	b.db = db
	return b.TurnOn()
}

// Stop closes the sqlite3 file
func (b *SQLite3KVStore) Stop(_ context.Context) error {
	if err := b.TurnOff(); err != nil {
		return err
	}
	if err := b.db.Close(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Put inserts a <key, value> record
func (b *SQLite3KVStore) Put(namespace string, key, value []byte) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	table := nsToTable(namespace)
	if err := b.createTableIfNotExists(table); err != nil {
		return err
	}
	if _, err := b.db.Exec(fmt.Sprintf("INSERT OR REPLACE INTO %s (k, v) VALUES (?, ?)", table), key, value); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Get retrieves a record
func (b *SQLite3KVStore) Get(namespace string, key []byte) ([]byte, error) {
	if !b.IsReady() {
		return nil, ErrDBNotStarted
	}
	table, err := b.lookupTable(namespace)
	if err != nil {
		return nil, err
	}
	var value []byte
	err = b.db.QueryRow(fmt.Sprintf("SELECT v FROM %s WHERE k = ?", table), key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotExist, "key = %x doesn't exist", key)
	} else if err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}
	return value, nil
}

// Delete deletes a record
func (b *SQLite3KVStore) Delete(namespace string, key []byte) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	table, err := b.lookupTable(namespace)
	if err != nil {
		if errors.Cause(err) == ErrBucketNotExist {
			return nil
		}
		return err
	}
	if _, err := b.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE k = ?", table), key); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// WriteBatch commits a batch atomically in one transaction
func (b *SQLite3KVStore) WriteBatch(kvsb batch.KVStoreBatch) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	succeed := true
	kvsb.Lock()
	defer func() {
		if succeed {
			// clear the batch if commit succeeds
			kvsb.ClearAndUnlock()
		} else {
			kvsb.Unlock()
		}
	}()

	uniqEntries, err := dedup(kvsb)
	if err != nil {
		succeed = false
		return err
	}
	err = b.transact(func(tx *sql.Tx) error {
		// tables created by this transaction, not visible to lookupTable until commit
		created := make(map[string]struct{})
		// keep the order of the original batch
		for i := len(uniqEntries) - 1; i >= 0; i-- {
			write := uniqEntries[i]
			table := nsToTable(write.Namespace())
			switch write.WriteType() {
			case batch.Put:
				if _, ok := b.tables.Load(table); !ok {
					if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (k BLOB PRIMARY KEY, v BLOB NOT NULL)", table)); err != nil {
						return errors.Wrap(err, write.Error())
					}
					created[table] = struct{}{}
				}
				if _, err := tx.Exec(fmt.Sprintf("INSERT OR REPLACE INTO %s (k, v) VALUES (?, ?)", table), write.Key(), write.Value()); err != nil {
					return errors.Wrap(err, write.Error())
				}
			case batch.Delete:
				if _, ok := created[table]; !ok {
					if _, err := b.lookupTable(write.Namespace()); err != nil {
						if errors.Cause(err) == ErrBucketNotExist {
							continue
						}
						return err
					}
				}
				if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE k = ?", table), write.Key()); err != nil {
					return errors.Wrap(err, write.Error())
				}
			}
		}
		return nil
	})
	if err != nil {
		succeed = false
		return errors.Wrap(ErrIO, err.Error())
	}
	// tables created inside the transaction are visible now
	for i := len(uniqEntries) - 1; i >= 0; i-- {
		if uniqEntries[i].WriteType() == batch.Put {
			b.tables.Store(nsToTable(uniqEntries[i].Namespace()), struct{}{})
		}
	}
	return nil
}

// Filter returns <k, v> pair in a bucket that meet the condition
func (b *SQLite3KVStore) Filter(namespace string, cond Condition, minKey, maxKey []byte) ([][]byte, [][]byte, error) {
	if !b.IsReady() {
		return nil, nil, ErrDBNotStarted
	}
	var keys, values [][]byte
	if err := b.forRange(namespace, minKey, maxKey, func(k, v []byte) error {
		if !cond(k, v) {
			return nil
		}
		keys = append(keys, k)
		values = append(values, v)
		return nil
	}); err != nil {
		return nil, nil, err
	}
	if len(keys) == 0 {
		return nil, nil, errors.Wrap(ErrNotExist, "filter returns no match")
	}
	return keys, values, nil
}

// ForEach iterates over all <k, v> pairs in a bucket in lexical key order
func (b *SQLite3KVStore) ForEach(namespace string, fn func(k, v []byte) error) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	return b.forRange(namespace, nil, nil, fn)
}

func (b *SQLite3KVStore) forRange(namespace string, minKey, maxKey []byte, fn func(k, v []byte) error) error {
	table, err := b.lookupTable(namespace)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("SELECT k, v FROM %s", table)
	args := make([]interface{}, 0, 2)
	switch {
	case len(minKey) > 0 && len(maxKey) > 0:
		query += " WHERE k >= ? AND k <= ?"
		args = append(args, minKey, maxKey)
	case len(minKey) > 0:
		query += " WHERE k >= ?"
		args = append(args, minKey)
	case len(maxKey) > 0:
		query += " WHERE k <= ?"
		args = append(args, maxKey)
	}
	// BLOB comparison in sqlite is bytewise, so ORDER BY k is lexical key order
	query += " ORDER BY k"
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	defer func() {
		if e := rows.Close(); e != nil {
			log.L().Error("Failed to close rows", zap.Error(e))
		}
	}()
	for rows.Next() {
		var k, v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return errors.Wrap(ErrIO, err.Error())
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// transact wraps the transaction
func (b *SQLite3KVStore) transact(txFunc func(*sql.Tx) error) (err error) {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			if e := tx.Rollback(); e != nil {
				log.L().Error("Failed to roll back.", zap.Error(e))
			}
			panic(p)
		} else if err != nil {
			// err is non-nil, don't change it
			if e := tx.Rollback(); e != nil {
				log.L().Error("Failed to roll back.", zap.Error(e))
			}
		} else {
			err = tx.Commit()
		}
	}()
	err = txFunc(tx)
	return err
}

func (b *SQLite3KVStore) createTableIfNotExists(table string) error {
	if _, ok := b.tables.Load(table); ok {
		return nil
	}
	if _, err := b.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (k BLOB PRIMARY KEY, v BLOB NOT NULL)", table)); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	b.tables.Store(table, struct{}{})
	return nil
}

// lookupTable resolves the table of the namespace, and checks it exists
func (b *SQLite3KVStore) lookupTable(namespace string) (string, error) {
	table := nsToTable(namespace)
	if _, ok := b.tables.Load(table); ok {
		return table, nil
	}
	var name string
	err := b.db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return "", errors.Wrapf(ErrBucketNotExist, "namespace = %x doesn't exist", []byte(namespace))
	} else if err != nil {
		return "", errors.Wrap(ErrIO, err.Error())
	}
	b.tables.Store(table, struct{}{})
	return table, nil
}

func nsToTable(ns string) string {
	return fmt.Sprintf("kv_%016x", xxhash.Sum64String(ns))
}
