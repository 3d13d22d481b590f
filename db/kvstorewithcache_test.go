// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/statekv/statekv/db/batch"
)

func readCacheCounter(t *testing.T, result string) float64 {
	m := dto.Metric{}
	require.NoError(t, _cacheMtc.WithLabelValues(result).Write(&m))
	return m.Counter.GetValue()
}

func TestKvStoreWithCache(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	kv := NewKvStoreWithCache(NewMemKVStore(), 2)
	require.NoError(kv.Start(ctx))
	defer func() {
		require.NoError(kv.Stop(ctx))
	}()

	require.NoError(kv.Put(bucket1, testK1[0], testV1[0]))
	missBefore := readCacheCounter(t, "miss")
	hitBefore := readCacheCounter(t, "hit")

	// first read misses the cache and fills it
	v, err := kv.Get(bucket1, testK1[0])
	require.NoError(err)
	require.Equal(testV1[0], v)
	require.Equal(missBefore+1, readCacheCounter(t, "miss"))
	require.Equal(hitBefore, readCacheCounter(t, "hit"))

	// second read hits
	v, err = kv.Get(bucket1, testK1[0])
	require.NoError(err)
	require.Equal(testV1[0], v)
	require.Equal(hitBefore+1, readCacheCounter(t, "hit"))

	// put through the wrapper refreshes the cached value
	require.NoError(kv.Put(bucket1, testK1[0], testV1[1]))
	v, err = kv.Get(bucket1, testK1[0])
	require.NoError(err)
	require.Equal(testV1[1], v)

	// batched writes refresh the cached value as well
	b := batch.NewBatch()
	b.Put(bucket1, testK1[0], testV1[2], "")
	b.Put(bucket1, testK1[1], testV1[1], "")
	require.NoError(kv.WriteBatch(b))

	v, err = kv.Get(bucket1, testK1[0])
	require.NoError(err)
	require.Equal(testV1[2], v)
	v, err = kv.Get(bucket1, testK1[1])
	require.NoError(err)
	require.Equal(testV1[1], v)

	// delete drops both the record and the cached value
	require.NoError(kv.Delete(bucket1, testK1[0]))
	_, err = kv.Get(bucket1, testK1[0])
	require.Error(err)

	// filter passes through to the underlying store
	keys, _, err := kv.Filter(bucket1, func(k, v []byte) bool { return true }, nil, nil)
	require.NoError(err)
	require.Equal([][]byte{testK1[1]}, keys)
}

func TestKvStoreWithCacheConcurrentGet(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	kv := NewKvStoreWithCache(NewMemKVStore(), 16)
	require.NoError(kv.Start(ctx))
	defer func() {
		require.NoError(kv.Stop(ctx))
	}()

	for i := 0; i < 3; i++ {
		require.NoError(kv.Put(bucket1, testK1[i], testV1[i]))
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := kv.Get(bucket1, testK1[i%3])
			require.NoError(err)
			require.Equal(testV1[i%3], v)
		}(i)
	}
	wg.Wait()
}
