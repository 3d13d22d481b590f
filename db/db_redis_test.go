// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/statekv/statekv/db/batch"
)

func TestRedisKVStoreStartFail(t *testing.T) {
	r := require.New(t)

	cfg := DefaultConfig
	cfg.RedisAddr = "127.0.0.1:1"
	db := NewRedisKVStore(cfg)
	r.Error(db.Start(context.Background()))
	r.False(db.IsReady())
}

func TestRedisKVStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	r := require.New(t)

	cfg := DefaultConfig
	cfg.RedisAddr = addr
	db := NewRedisKVStore(cfg)
	ctx := context.Background()
	r.NoError(db.Start(ctx))
	defer func() {
		r.NoError(db.Stop(ctx))
	}()

	// unique namespace per run, leftovers of previous runs stay out of the way
	ns := fmt.Sprintf("test_ns_%d", time.Now().UnixNano())

	// nonexistent key
	v, err := db.Get(ns, _k1)
	r.Error(err)
	r.Nil(v)

	// put, get, overwrite
	r.NoError(db.Put(ns, _k1, _v1))
	v, err = db.Get(ns, _k1)
	r.NoError(err)
	r.Equal(_v1, v)
	r.NoError(db.Put(ns, _k1, _v2))
	v, err = db.Get(ns, _k1)
	r.NoError(err)
	r.Equal(_v2, v)

	// delete
	r.NoError(db.Delete(ns, _k1))
	_, err = db.Get(ns, _k1)
	r.Error(err)

	// batch commit
	b := batch.NewBatch()
	b.Put(ns, _k1, _v1, "")
	b.Put(ns, _k2, _v2, "")
	b.Put(ns, _k3, _v2, "")
	b.Put(ns, _k3, _v3, "")
	r.NoError(db.WriteBatch(b))
	r.Equal(0, b.Size())
	for _, e := range []struct{ k, v []byte }{
		{_k1, _v1},
		{_k2, _v2},
		{_k3, _v3},
	} {
		v, err = db.Get(ns, e.k)
		r.NoError(err)
		r.Equal(e.v, v)
	}

	// filter and iterate in lexical key order
	keys, values, err := db.Filter(ns, func(k, v []byte) bool { return true }, nil, nil)
	r.NoError(err)
	r.Equal([][]byte{_k1, _k2, _k3}, keys)
	r.Equal([][]byte{_v1, _v2, _v3}, values)

	keys = keys[:0]
	r.NoError(db.ForEach(ns, func(k, v []byte) error {
		keys = append(keys, k)
		return nil
	}))
	r.Equal([][]byte{_k1, _k2, _k3}, keys)

	// drop the hash of this run
	r.NoError(db.client.Del(ctx, ns).Err())
}
