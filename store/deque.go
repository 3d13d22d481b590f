// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package store provides persistent typed collections on top of a db.KVStore.
package store

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/db/batch"
	"github.com/statekv/statekv/pkg/log"
	"github.com/statekv/statekv/pkg/prometheustimer"
	"github.com/statekv/statekv/pkg/util/byteutil"
)

var (
	_dequeMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statekv_deque",
			Help: "statekv deque operations",
		},
		[]string{"type"},
	)
	_timerFactory *prometheustimer.TimerFactory
)

func init() {
	prometheus.MustRegister(_dequeMtc)
	var err error
	_timerFactory, err = prometheustimer.New(
		"statekv_collection_perf",
		"Performance of collection operations",
		[]string{"topic", "name"},
		[]string{"default", "default"},
	)
	if err != nil {
		log.L().Error("Failed to generate prometheus timer factory.", zap.Error(err))
	}
}

var (
	// _positionKey is the key of the head/tail record inside a deque's namespace
	_positionKey = []byte{0}
)

// _slotTag prefixes every element key, keeping slots apart from the position record
const _slotTag = byte('e')

type (
	// Deque is a persistent double-ended queue of T stored under its own
	// namespace in a KVStore. Elements occupy logical slots [head, tail),
	// both indices advance modulo 2^32, so a deque that only ever grows on
	// one end keeps working past index 2^32-1. Every mutation commits the
	// touched slot and the head/tail record in one batch, a reader never
	// sees one without the other and a failed commit leaves both untouched.
	//
	// A deque holds at most 2^32-1 elements. The limit is not checked,
	// pushing past it silently corrupts the deque, callers that need
	// graceful degradation must enforce their own ceiling below it.
	Deque[T any] struct {
		kv    db.KVStore
		name  string
		codec Codec[T]
	}

	// Iterator walks a deque from front to back lazily, one element is read
	// and decoded per Next call. Bounds are captured when the iterator is
	// created, elements pushed afterwards are not visited.
	Iterator[T any] struct {
		deque *Deque[T]
		head  uint32
		tail  uint32
		next  uint32
	}

	// DequeStat is a snapshot of a deque's position record
	DequeStat struct {
		Head   uint32
		Tail   uint32
		Length uint32
	}
)

// NewDeque creates a deque named name on top of kv. Creation is pure, nothing
// is written until the first push. The name scopes every key the deque uses
// and must not be shared with another collection on the same store.
func NewDeque[T any](kv db.KVStore, name string, opts ...Option[T]) (*Deque[T], error) {
	if kv == nil {
		return nil, errors.Wrap(db.ErrInvalid, "KVStore object is nil")
	}
	if len(name) == 0 {
		return nil, errors.Wrap(db.ErrInvalid, "deque name is empty")
	}
	o := options[T]{}
	for _, opt := range opts {
		opt(&o)
	}
	codec, err := o.buildCodec()
	if err != nil {
		return nil, err
	}
	return &Deque[T]{
		kv:    kv,
		name:  name,
		codec: codec,
	}, nil
}

// Name returns the name the deque was created with
func (d *Deque[T]) Name() string {
	return d.name
}

// PushBack appends value at the back of the deque
func (d *Deque[T]) PushBack(value T) error {
	timer := _timerFactory.NewTimer("push_back", d.name)
	defer timer.End()
	_dequeMtc.WithLabelValues("push_back").Inc()

	head, tail, err := d.position()
	if err != nil {
		return err
	}
	data, err := d.codec.Marshal(value)
	if err != nil {
		return err
	}
	b := batch.NewBatch()
	b.Put(d.name, slotKey(tail), data, fmt.Sprintf("failed to write slot %d", tail))
	d.stagePosition(b, head, tail+1)
	return d.kv.WriteBatch(b)
}

// PushFront prepends value at the front of the deque
func (d *Deque[T]) PushFront(value T) error {
	timer := _timerFactory.NewTimer("push_front", d.name)
	defer timer.End()
	_dequeMtc.WithLabelValues("push_front").Inc()

	head, tail, err := d.position()
	if err != nil {
		return err
	}
	data, err := d.codec.Marshal(value)
	if err != nil {
		return err
	}
	// decrementing at 0 wraps to 2^32-1
	head--
	b := batch.NewBatch()
	b.Put(d.name, slotKey(head), data, fmt.Sprintf("failed to write slot %d", head))
	d.stagePosition(b, head, tail)
	return d.kv.WriteBatch(b)
}

// PopBack removes and returns the element at the back, it returns false
// without touching storage when the deque is empty
func (d *Deque[T]) PopBack() (T, bool, error) {
	timer := _timerFactory.NewTimer("pop_back", d.name)
	defer timer.End()
	_dequeMtc.WithLabelValues("pop_back").Inc()

	var zero T
	head, tail, err := d.position()
	if err != nil {
		return zero, false, err
	}
	if head == tail {
		return zero, false, nil
	}
	tail--
	value, err := d.readSlot(tail)
	if err != nil {
		return zero, false, err
	}
	b := batch.NewBatch()
	b.Delete(d.name, slotKey(tail), fmt.Sprintf("failed to remove slot %d", tail))
	d.stagePosition(b, head, tail)
	if err := d.kv.WriteBatch(b); err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// PopFront removes and returns the element at the front, it returns false
// without touching storage when the deque is empty
func (d *Deque[T]) PopFront() (T, bool, error) {
	timer := _timerFactory.NewTimer("pop_front", d.name)
	defer timer.End()
	_dequeMtc.WithLabelValues("pop_front").Inc()

	var zero T
	head, tail, err := d.position()
	if err != nil {
		return zero, false, err
	}
	if head == tail {
		return zero, false, nil
	}
	value, err := d.readSlot(head)
	if err != nil {
		return zero, false, err
	}
	b := batch.NewBatch()
	b.Delete(d.name, slotKey(head), fmt.Sprintf("failed to remove slot %d", head))
	d.stagePosition(b, head+1, tail)
	if err := d.kv.WriteBatch(b); err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Front returns the element at the front without removing it, false when empty
func (d *Deque[T]) Front() (T, bool, error) {
	_dequeMtc.WithLabelValues("front").Inc()

	var zero T
	head, tail, err := d.position()
	if err != nil || head == tail {
		return zero, false, err
	}
	value, err := d.readSlot(head)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Back returns the element at the back without removing it, false when empty
func (d *Deque[T]) Back() (T, bool, error) {
	_dequeMtc.WithLabelValues("back").Inc()

	var zero T
	head, tail, err := d.position()
	if err != nil || head == tail {
		return zero, false, err
	}
	value, err := d.readSlot(tail - 1)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Len returns the number of elements in the deque
func (d *Deque[T]) Len() (uint32, error) {
	head, tail, err := d.position()
	if err != nil {
		return 0, err
	}
	// exact in uint32 arithmetic even after the indices wrapped
	return tail - head, nil
}

// IsEmpty returns true when the deque holds no elements
func (d *Deque[T]) IsEmpty() (bool, error) {
	length, err := d.Len()
	return length == 0, err
}

// Stat returns the raw head and tail indices together with the length,
// mainly for inspection tools
func (d *Deque[T]) Stat() (DequeStat, error) {
	head, tail, err := d.position()
	if err != nil {
		return DequeStat{}, err
	}
	return DequeStat{Head: head, Tail: tail, Length: tail - head}, nil
}

// Get returns the element at 0-based offset index from the front, false when
// index is at or beyond the end
func (d *Deque[T]) Get(index uint32) (T, bool, error) {
	_dequeMtc.WithLabelValues("get").Inc()

	var zero T
	head, tail, err := d.position()
	if err != nil {
		return zero, false, err
	}
	if index >= tail-head {
		return zero, false, nil
	}
	value, err := d.readSlot(head + index)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Iter returns a lazy iterator over the deque from front to back
func (d *Deque[T]) Iter() (*Iterator[T], error) {
	_dequeMtc.WithLabelValues("iter").Inc()

	head, tail, err := d.position()
	if err != nil {
		return nil, err
	}
	return &Iterator[T]{
		deque: d,
		head:  head,
		tail:  tail,
		next:  head,
	}, nil
}

// Next returns the next element, false once the iterator is exhausted
func (it *Iterator[T]) Next() (T, bool, error) {
	var zero T
	if it.next == it.tail {
		return zero, false, nil
	}
	value, err := it.deque.readSlot(it.next)
	if err != nil {
		return zero, false, err
	}
	it.next++
	return value, true, nil
}

// Reset rewinds the iterator to the front it was created at
func (it *Iterator[T]) Reset() {
	it.next = it.head
}

// position returns the current head and tail indices, a missing record means
// the deque has never been written and both are zero
func (d *Deque[T]) position() (uint32, uint32, error) {
	v, err := d.kv.Get(d.name, _positionKey)
	if err != nil {
		if c := errors.Cause(err); c == db.ErrNotExist || c == db.ErrBucketNotExist {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	if len(v) != 8 {
		return 0, 0, errors.Wrapf(ErrDeserialize, "position record has %d bytes, want 8", len(v))
	}
	return byteutil.BytesToUint32BigEndian(v[:4]), byteutil.BytesToUint32BigEndian(v[4:]), nil
}

// stagePosition queues the head/tail record into the same batch as the slot
// write, the engine commits them in one transaction
func (d *Deque[T]) stagePosition(b batch.KVStoreBatch, head, tail uint32) {
	record := append(byteutil.Uint32ToBytesBigEndian(head), byteutil.Uint32ToBytesBigEndian(tail)...)
	b.Put(d.name, _positionKey, record, "failed to update deque position")
}

// readSlot fetches and decodes the element at logical index idx
func (d *Deque[T]) readSlot(idx uint32) (T, error) {
	var zero T
	data, err := d.kv.Get(d.name, slotKey(idx))
	if err != nil {
		return zero, err
	}
	return d.codec.Unmarshal(data)
}

// slotKey derives the storage key of the slot at logical index idx
func slotKey(idx uint32) []byte {
	return append([]byte{_slotTag}, byteutil.Uint32ToBytesBigEndian(idx)...)
}
