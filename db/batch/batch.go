// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package batch

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/statekv/statekv/pkg/log"
)

// batch and cache error definitions
var (
	// ErrNotExist indicates the key does not exist
	ErrNotExist = errors.New("key does not exist")
	// ErrAlreadyDeleted indicates the key has been deleted
	ErrAlreadyDeleted = errors.New("already deleted from DB")
	// ErrAlreadyExist indicates the key already exists
	ErrAlreadyExist = errors.New("key already exist")
	// ErrOutOfBound indicates an out of range index
	ErrOutOfBound = errors.New("index out of bound")
	// ErrUnexpectedType indicates an invalid cache implementation
	ErrUnexpectedType = errors.New("unexpected cache type")
)

type (
	// KVStoreBatch defines a batch of Put/Delete operations to be committed atomically.
	// Size, Entry and SerializeQueue do not acquire the batch's lock, the caller is
	// expected to wrap them between Lock/Unlock when draining the queue.
	KVStoreBatch interface {
		// Lock locks the batch
		Lock()
		// Unlock unlocks the batch
		Unlock()
		// ClearAndUnlock clears the write queue and unlocks the batch
		ClearAndUnlock()
		// Put insert or update a record identified by (namespace, key)
		Put(string, []byte, []byte, string)
		// Delete deletes a record by (namespace, key)
		Delete(string, []byte, string)
		// Size returns the size of batch
		Size() int
		// Entry returns the entry at the index
		Entry(int) (*WriteInfo, error)
		// SerializeQueue serializes the write queue, nil uses the default WriteInfo serialization
		SerializeQueue(WriteInfoSerialize) []byte
		// ExcludeEntries returns a new batch with entries of the given write type
		// (in the given namespace, "" for all namespaces) excluded
		ExcludeEntries(string, WriteType) KVStoreBatch
		// Clear clears entries staged in batch
		Clear()
		// CheckFillPercent returns the expected fill percent of a namespace
		CheckFillPercent(string) (float64, bool)
		// AddFillPercent sets the expected fill percent of a namespace
		AddFillPercent(string, float64)
	}

	// CachedBatch is a batch with a read-your-writes cache on top, it supports
	// taking snapshots and reverting to a previous snapshot
	CachedBatch interface {
		KVStoreBatch
		// Get retrieves the latest value written into the batch
		Get(string, []byte) ([]byte, error)
		// Snapshot takes a snapshot of the current batch
		Snapshot() int
		// Revert sets the batch to the state at the given snapshot
		Revert(int) error
		// ResetSnapshots clears all snapshots
		ResetSnapshots()
	}

	baseKVStoreBatch struct {
		mutex       sync.RWMutex
		writeQueue  []*WriteInfo
		fillPercent map[string]float64
	}

	cachedBatch struct {
		lock         sync.RWMutex
		kvStoreBatch *baseKVStoreBatch
		tube         []KVStoreCache
		batchShots   []int // write queue size at each snapshot
	}
)

// NewBatch returns a batch
func NewBatch() KVStoreBatch {
	return newBaseKVStoreBatch()
}

func newBaseKVStoreBatch() *baseKVStoreBatch {
	return &baseKVStoreBatch{
		fillPercent: make(map[string]float64),
	}
}

// Lock locks the batch
func (b *baseKVStoreBatch) Lock() {
	b.mutex.Lock()
}

// Unlock unlocks the batch
func (b *baseKVStoreBatch) Unlock() {
	b.mutex.Unlock()
}

// ClearAndUnlock clears the write queue and unlocks the batch
func (b *baseKVStoreBatch) ClearAndUnlock() {
	defer b.mutex.Unlock()
	b.clear()
}

// Put inserts a <namespace, key, value> record into the batch
func (b *baseKVStoreBatch) Put(namespace string, key, value []byte, errorMessage string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.batch(Put, namespace, key, value, errorMessage)
}

// Delete deletes a record from the batch
func (b *baseKVStoreBatch) Delete(namespace string, key []byte, errorMessage string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.batch(Delete, namespace, key, nil, errorMessage)
}

// Size returns the size of the batch
func (b *baseKVStoreBatch) Size() int {
	return len(b.writeQueue)
}

// Entry returns the entry at the index
func (b *baseKVStoreBatch) Entry(index int) (*WriteInfo, error) {
	if index < 0 || index >= len(b.writeQueue) {
		return nil, errors.Wrapf(ErrOutOfBound, "index = %d out of range", index)
	}
	return b.writeQueue[index], nil
}

// SerializeQueue serializes the write queue
func (b *baseKVStoreBatch) SerializeQueue(serialize WriteInfoSerialize) []byte {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.serializeQueue(serialize)
}

// ExcludeEntries returns a new batch with matching entries excluded
func (b *baseKVStoreBatch) ExcludeEntries(namespace string, op WriteType) KVStoreBatch {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.excludeEntries(namespace, op)
}

// Clear clears the write queue
func (b *baseKVStoreBatch) Clear() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.clear()
}

// CheckFillPercent returns the expected fill percent of a namespace,
// the caller is expected to hold the lock
func (b *baseKVStoreBatch) CheckFillPercent(ns string) (float64, bool) {
	p, ok := b.fillPercent[ns]
	return p, ok
}

// AddFillPercent sets the expected fill percent of a namespace
func (b *baseKVStoreBatch) AddFillPercent(ns string, percent float64) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.fillPercent[ns] = percent
}

// batch appends a write into the write queue, the caller holds the lock
func (b *baseKVStoreBatch) batch(op WriteType, namespace string, key, value []byte, errorMessage string) {
	b.writeQueue = append(b.writeQueue, NewWriteInfo(op, namespace, key, value, errorMessage))
}

func (b *baseKVStoreBatch) clear() {
	b.writeQueue = nil
}

func (b *baseKVStoreBatch) truncate(size int) {
	b.writeQueue = b.writeQueue[:size]
}

func (b *baseKVStoreBatch) serializeQueue(serialize WriteInfoSerialize) []byte {
	bytes := make([]byte, 0)
	for _, wi := range b.writeQueue {
		if serialize != nil {
			bytes = append(bytes, serialize(wi)...)
		} else {
			bytes = append(bytes, wi.Serialize()...)
		}
	}
	return bytes
}

func (b *baseKVStoreBatch) excludeEntries(namespace string, op WriteType) KVStoreBatch {
	c := newBaseKVStoreBatch()
	for k, v := range b.fillPercent {
		c.fillPercent[k] = v
	}
	for _, wi := range b.writeQueue {
		if (namespace == "" || wi.namespace == namespace) && wi.writeType == op {
			continue
		}
		c.writeQueue = append(c.writeQueue, wi)
	}
	return c
}

// NewCachedBatch returns a new cached batch buffer
func NewCachedBatch() CachedBatch {
	cb := &cachedBatch{
		kvStoreBatch: newBaseKVStoreBatch(),
	}
	cb.clearSnapshots()
	return cb
}

// Lock locks the batch
func (cb *cachedBatch) Lock() {
	cb.lock.Lock()
}

// Unlock unlocks the batch
func (cb *cachedBatch) Unlock() {
	cb.lock.Unlock()
}

// ClearAndUnlock clears the write queue and unlocks the batch
func (cb *cachedBatch) ClearAndUnlock() {
	defer cb.lock.Unlock()
	cb.kvStoreBatch.clear()
	cb.clearSnapshots()
}

// Put inserts a <namespace, key, value> record into the batch
func (cb *cachedBatch) Put(namespace string, key, value []byte, errorMessage string) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.currentCache().Write(&kvCacheKey{namespace, string(key)}, value)
	cb.kvStoreBatch.batch(Put, namespace, key, value, errorMessage)
}

// Delete deletes a record from the batch
func (cb *cachedBatch) Delete(namespace string, key []byte, errorMessage string) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.currentCache().Evict(&kvCacheKey{namespace, string(key)})
	cb.kvStoreBatch.batch(Delete, namespace, key, nil, errorMessage)
}

// Get retrieves the latest value written into the batch
func (cb *cachedBatch) Get(namespace string, key []byte) ([]byte, error) {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	k := &kvCacheKey{namespace, string(key)}
	err := ErrNotExist
	for i := len(cb.tube) - 1; i >= 0; i-- {
		v, e := cb.tube[i].Read(k)
		if e == nil {
			return v, nil
		}
		if e == ErrAlreadyDeleted {
			return nil, e
		}
		err = e
	}
	return nil, err
}

// Size returns the size of the batch, the caller is expected to hold the lock
func (cb *cachedBatch) Size() int {
	return cb.kvStoreBatch.Size()
}

// Entry returns the entry at the index, the caller is expected to hold the lock
func (cb *cachedBatch) Entry(index int) (*WriteInfo, error) {
	return cb.kvStoreBatch.Entry(index)
}

// SerializeQueue serializes the write queue
func (cb *cachedBatch) SerializeQueue(serialize WriteInfoSerialize) []byte {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	return cb.kvStoreBatch.serializeQueue(serialize)
}

// ExcludeEntries returns a new batch with matching entries excluded
func (cb *cachedBatch) ExcludeEntries(namespace string, op WriteType) KVStoreBatch {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	return cb.kvStoreBatch.excludeEntries(namespace, op)
}

// Clear clears the write queue and all snapshots
func (cb *cachedBatch) Clear() {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.kvStoreBatch.clear()
	cb.clearSnapshots()
}

// CheckFillPercent returns the expected fill percent of a namespace
func (cb *cachedBatch) CheckFillPercent(ns string) (float64, bool) {
	return cb.kvStoreBatch.CheckFillPercent(ns)
}

// AddFillPercent sets the expected fill percent of a namespace
func (cb *cachedBatch) AddFillPercent(ns string, percent float64) {
	cb.kvStoreBatch.AddFillPercent(ns, percent)
}

// Snapshot takes a snapshot of the current batch
func (cb *cachedBatch) Snapshot() int {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	defer func() {
		cb.tube = append(cb.tube, NewKVCache())
	}()
	cb.batchShots = append(cb.batchShots, cb.kvStoreBatch.Size())
	return len(cb.batchShots) - 1
}

// Revert sets the batch to the state at the given snapshot
func (cb *cachedBatch) Revert(snapshot int) error {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	if snapshot < 0 || snapshot >= len(cb.batchShots) {
		return errors.Wrapf(ErrOutOfBound, "invalid snapshot number = %d", snapshot)
	}
	cb.batchShots = cb.batchShots[:snapshot+1]
	cb.kvStoreBatch.truncate(cb.batchShots[snapshot])
	cb.tube = cb.tube[:snapshot+1]
	cb.tube = append(cb.tube, NewKVCache())
	return nil
}

// ResetSnapshots clears all snapshots, the accumulated writes are kept
func (cb *cachedBatch) ResetSnapshots() {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.batchShots = nil
	if len(cb.tube) > 1 {
		// merge all caches into the first one
		if err := cb.tube[0].Append(cb.tube[1:]...); err != nil {
			log.L().Panic("failed to squash key-value caches", zap.Error(err))
		}
		cb.tube = cb.tube[:1]
	}
}

func (cb *cachedBatch) currentCache() KVStoreCache {
	return cb.tube[len(cb.tube)-1]
}

// clearSnapshots drops all caches and snapshots, the caller holds the lock
func (cb *cachedBatch) clearSnapshots() {
	cb.tube = nil
	cb.tube = append(cb.tube, NewKVCache())
	cb.batchShots = nil
}
