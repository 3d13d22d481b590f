// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/statekv/statekv/db/batch"
	"github.com/statekv/statekv/pkg/lifecycle"
)

const _scanCount = 1000

// RedisKVStore is KVStore implementation based on a remote redis server,
// each namespace is stored as one redis hash
type RedisKVStore struct {
	lifecycle.Readiness
	client *redis.Client
	config Config
}

// NewRedisKVStore creates a new RedisKVStore instance
func NewRedisKVStore(cfg Config) *RedisKVStore {
	return &RedisKVStore{
		config: cfg,
	}
}

// Start connects to the redis server
func (b *RedisKVStore) Start(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     b.config.RedisAddr,
		Password: b.config.RedisPassword,
		DB:       b.config.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	b.client = client
	return b.TurnOn()
}

// Stop closes the connection
func (b *RedisKVStore) Stop(_ context.Context) error {
	if err := b.TurnOff(); err != nil {
		return err
	}
	if err := b.client.Close(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Put inserts a <key, value> record
func (b *RedisKVStore) Put(namespace string, key, value []byte) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	if err := b.client.HSet(context.Background(), namespace, string(key), value).Err(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Get retrieves a record
func (b *RedisKVStore) Get(namespace string, key []byte) ([]byte, error) {
	if !b.IsReady() {
		return nil, ErrDBNotStarted
	}
	v, err := b.client.HGet(context.Background(), namespace, string(key)).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrapf(ErrNotExist, "ns %s key = %x doesn't exist", namespace, key)
	} else if err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}
	return v, nil
}

// Delete deletes a record
func (b *RedisKVStore) Delete(namespace string, key []byte) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	if err := b.client.HDel(context.Background(), namespace, string(key)).Err(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// WriteBatch commits a batch atomically in one transactional pipeline
func (b *RedisKVStore) WriteBatch(kvsb batch.KVStoreBatch) error {
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
	_, err = b.client.TxPipelined(context.Background(), func(pipe redis.Pipeliner) error {
		ctx := context.Background()
		for i := len(uniqEntries) - 1; i >= 0; i-- {
			write := uniqEntries[i]
			switch write.WriteType() {
			case batch.Put:
				pipe.HSet(ctx, write.Namespace(), string(write.Key()), write.Value())
			case batch.Delete:
				pipe.HDel(ctx, write.Namespace(), string(write.Key()))
			}
		}
		return nil
	})
	if err != nil {
		succeed = false
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Filter returns <k, v> pair in a bucket that meet the condition
func (b *RedisKVStore) Filter(namespace string, cond Condition, minKey, maxKey []byte) ([][]byte, [][]byte, error) {
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
func (b *RedisKVStore) ForEach(namespace string, fn func(k, v []byte) error) error {
	if !b.IsReady() {
		return ErrDBNotStarted
	}
	return b.forRange(namespace, nil, nil, fn)
}

// forRange walks the hash of the namespace in lexical key order within [minKey, maxKey]
func (b *RedisKVStore) forRange(namespace string, minKey, maxKey []byte, fn func(k, v []byte) error) error {
	ctx := context.Background()
	n, err := b.client.Exists(ctx, namespace).Result()
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	if n == 0 {
		return errors.Wrapf(ErrBucketNotExist, "namespace = %x doesn't exist", []byte(namespace))
	}

	type kv struct {
		k []byte
		v []byte
	}
	var (
		pairs  []kv
		cursor uint64
	)
	for {
		// HScan returns alternating field, value items
		items, next, err := b.client.HScan(ctx, namespace, cursor, "", _scanCount).Result()
		if err != nil {
			return errors.Wrap(ErrIO, err.Error())
		}
		for i := 0; i+1 < len(items); i += 2 {
			k := []byte(items[i])
			if len(minKey) > 0 && bytes.Compare(k, minKey) < 0 {
				continue
			}
			if len(maxKey) > 0 && bytes.Compare(k, maxKey) > 0 {
				continue
			}
			pairs = append(pairs, kv{k, []byte(items[i+1])})
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	// HScan pages in no particular order
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].k, pairs[j].k) < 0 })
	for _, p := range pairs {
		if err := fn(p.k, p.v); err != nil {
			return err
		}
	}
	return nil
}
