// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package store

import (
	"github.com/pkg/errors"

	"github.com/statekv/statekv/db"
)

// Item is a single persistent value of type T stored under one key
type Item[T any] struct {
	kv    db.KVStore
	ns    string
	key   []byte
	codec Codec[T]
}

// NewItem creates an item stored at (ns, key) on top of kv. Creation is pure,
// nothing is written until the first Save.
func NewItem[T any](kv db.KVStore, ns, key string, opts ...Option[T]) (*Item[T], error) {
	if kv == nil {
		return nil, errors.Wrap(db.ErrInvalid, "KVStore object is nil")
	}
	if len(ns) == 0 || len(key) == 0 {
		return nil, errors.Wrap(db.ErrInvalid, "namespace or key is empty")
	}
	o := options[T]{}
	for _, opt := range opts {
		opt(&o)
	}
	codec, err := o.buildCodec()
	if err != nil {
		return nil, err
	}
	return &Item[T]{
		kv:    kv,
		ns:    ns,
		key:   []byte(key),
		codec: codec,
	}, nil
}

// Save stores the value, replacing any previous one
func (i *Item[T]) Save(value T) error {
	data, err := i.codec.Marshal(value)
	if err != nil {
		return err
	}
	return i.kv.Put(i.ns, i.key, data)
}

// Load returns the stored value, false when none has been saved
func (i *Item[T]) Load() (T, bool, error) {
	var zero T
	data, err := i.kv.Get(i.ns, i.key)
	if err != nil {
		if c := errors.Cause(err); c == db.ErrNotExist || c == db.ErrBucketNotExist {
			return zero, false, nil
		}
		return zero, false, err
	}
	value, err := i.codec.Unmarshal(data)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Exists returns true when a value has been saved
func (i *Item[T]) Exists() (bool, error) {
	if _, err := i.kv.Get(i.ns, i.key); err != nil {
		if c := errors.Cause(err); c == db.ErrNotExist || c == db.ErrBucketNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the stored value, removing a missing value is a no-op
func (i *Item[T]) Delete() error {
	return i.kv.Delete(i.ns, i.key)
}
