// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/statekv/statekv/db/batch"
	"github.com/statekv/statekv/pkg/lifecycle"
)

var (
	// ErrBucketNotExist indicates certain bucket does not exist in db
	ErrBucketNotExist = errors.New("bucket not exist in DB")
	// ErrNotExist indicates certain item does not exist in db
	ErrNotExist = errors.New("not exist in DB")
	// ErrAlreadyDeleted indicates the key has been deleted
	ErrAlreadyDeleted = errors.New("already deleted from DB")
	// ErrAlreadyExist indicates certain item already exists in db
	ErrAlreadyExist = errors.New("already exist in DB")
	// ErrIO indicates the generic error of DB I/O operation
	ErrIO = errors.New("DB I/O operation error")
	// ErrDBNotStarted represents the database has not been started
	ErrDBNotStarted = errors.New("DB is not started")
	// ErrInvalid indicates an invalid input
	ErrInvalid = errors.New("invalid input")
)

type (
	// Condition is the condition applied to a <k, v> pair during Filter
	Condition func(k, v []byte) bool

	// KVStoreBasic is the interface of basic KV store.
	KVStoreBasic interface {
		lifecycle.StartStopper

		// Put insert or update a record identified by (namespace, key)
		Put(string, []byte, []byte) error
		// Get gets a record by (namespace, key)
		Get(string, []byte) ([]byte, error)
		// Delete deletes a record by (namespace, key)
		Delete(string, []byte) error
	}

	// KVStore is the interface of KV store.
	KVStore interface {
		KVStoreBasic
		// WriteBatch commits a batch atomically
		WriteBatch(batch.KVStoreBatch) error
		// Filter returns <k, v> pair in a bucket that meet the condition
		Filter(string, Condition, []byte, []byte) ([][]byte, [][]byte, error)
	}

	// KVStoreForEach is KVStore that supports iterating over all <k, v> pairs in a bucket
	KVStoreForEach interface {
		KVStore
		// ForEach iterates over all <k, v> pairs in a bucket in lexical key order
		ForEach(string, func(k, v []byte) error) error
	}
)

const (
	keyDelimiter = "."
)

// memKVStore is the in-memory implementation of KVStore for testing purpose
type memKVStore struct {
	data   *sync.Map
	bucket *sync.Map
}

// NewMemKVStore instantiates an in-memory KV store
func NewMemKVStore() KVStoreForEach {
	return &memKVStore{
		bucket: &sync.Map{},
		data:   &sync.Map{},
	}
}

func (m *memKVStore) Start(_ context.Context) error { return nil }

func (m *memKVStore) Stop(_ context.Context) error { return nil }

// Put inserts a <key, value> record
func (m *memKVStore) Put(namespace string, key, value []byte) error {
	_, _ = m.bucket.LoadOrStore(namespace, struct{}{})
	m.data.Store(namespace+keyDelimiter+string(key), value)
	return nil
}

// Get retrieves a record
func (m *memKVStore) Get(namespace string, key []byte) ([]byte, error) {
	if _, ok := m.bucket.Load(namespace); !ok {
		return nil, errors.Wrapf(ErrNotExist, "namespace = %x doesn't exist", []byte(namespace))
	}
	value, _ := m.data.Load(namespace + keyDelimiter + string(key))
	if value != nil {
		return value.([]byte), nil
	}
	return nil, errors.Wrapf(ErrNotExist, "key = %x doesn't exist", key)
}

// Delete deletes a record
func (m *memKVStore) Delete(namespace string, key []byte) error {
	m.data.Delete(namespace + keyDelimiter + string(key))
	return nil
}

// WriteBatch commits a batch
func (m *memKVStore) WriteBatch(b batch.KVStoreBatch) (e error) {
	succeed := false
	b.Lock()
	defer func() {
		if succeed {
			// clear the batch if commit succeeds
			b.ClearAndUnlock()
		} else {
			b.Unlock()
		}
	}()
	for i := 0; i < b.Size(); i++ {
		write, err := b.Entry(i)
		if err != nil {
			return err
		}
		switch write.WriteType() {
		case batch.Put:
			if err := m.Put(write.Namespace(), write.Key(), write.Value()); err != nil {
				e = err
			}
		case batch.Delete:
			if err := m.Delete(write.Namespace(), write.Key()); err != nil {
				e = err
			}
		}
		if e != nil {
			break
		}
	}
	if e == nil {
		succeed = true
	}

	return e
}

// Filter returns <k, v> pair in a bucket that meet the condition
func (m *memKVStore) Filter(namespace string, cond Condition, minKey, maxKey []byte) ([][]byte, [][]byte, error) {
	if _, ok := m.bucket.Load(namespace); !ok {
		return nil, nil, errors.Wrapf(ErrBucketNotExist, "namespace = %x doesn't exist", []byte(namespace))
	}
	var keys, values [][]byte
	if err := m.forRange(namespace, minKey, maxKey, func(k, v []byte) error {
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
func (m *memKVStore) ForEach(namespace string, fn func(k, v []byte) error) error {
	if _, ok := m.bucket.Load(namespace); !ok {
		return errors.Wrapf(ErrBucketNotExist, "namespace = %x doesn't exist", []byte(namespace))
	}
	return m.forRange(namespace, nil, nil, fn)
}

// forRange walks the bucket in lexical key order within [minKey, maxKey]
func (m *memKVStore) forRange(namespace string, minKey, maxKey []byte, fn func(k, v []byte) error) error {
	prefix := namespace + keyDelimiter

	type kv struct {
		k []byte
		v []byte
	}
	var pairs []kv
	m.data.Range(func(key, value interface{}) bool {
		ks, ok := key.(string)
		if !ok || !strings.HasPrefix(ks, prefix) {
			return true
		}
		k := []byte(ks[len(prefix):])
		if len(minKey) > 0 && bytes.Compare(k, minKey) < 0 {
			return true
		}
		if len(maxKey) > 0 && bytes.Compare(k, maxKey) > 0 {
			return true
		}
		v := value.([]byte)
		key2 := make([]byte, len(k))
		copy(key2, k)
		value2 := make([]byte, len(v))
		copy(value2, v)
		pairs = append(pairs, kv{key2, value2})
		return true
	})
	// sync.Map ranges in random order
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].k, pairs[j].k) < 0 })
	for _, p := range pairs {
		if err := fn(p.k, p.v); err != nil {
			return err
		}
	}
	return nil
}
