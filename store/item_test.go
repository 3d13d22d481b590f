// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/pkg/compress"
)

func TestNewItem(t *testing.T) {
	require := require.New(t)
	kv := db.NewMemKVStore()

	_, err := NewItem[int](nil, "ns", "k")
	require.Equal(db.ErrInvalid, errors.Cause(err))
	_, err = NewItem[int](kv, "", "k")
	require.Equal(db.ErrInvalid, errors.Cause(err))
	_, err = NewItem[int](kv, "ns", "")
	require.Equal(db.ErrInvalid, errors.Cause(err))
	_, err = NewItem[int](kv, "ns", "k", WithCompressor[int]("xz"))
	require.Equal(db.ErrInvalid, errors.Cause(err))
}

func TestItem(t *testing.T) {
	require := require.New(t)
	kv := db.NewMemKVStore()
	item, err := NewItem[record](kv, "meta", "owner")
	require.NoError(err)

	// nothing saved yet
	ok, err := item.Exists()
	require.NoError(err)
	require.False(ok)
	_, ok, err = item.Load()
	require.NoError(err)
	require.False(ok)
	// deleting a missing value is a no-op
	require.NoError(item.Delete())

	want := record{ID: 42, Tags: []string{"x"}}
	require.NoError(item.Save(want))
	ok, err = item.Exists()
	require.NoError(err)
	require.True(ok)
	got, ok, err := item.Load()
	require.NoError(err)
	require.True(ok)
	require.Equal(want, got)

	// save replaces the previous value
	want.ID = 43
	require.NoError(item.Save(want))
	got, ok, err = item.Load()
	require.NoError(err)
	require.True(ok)
	require.Equal(uint64(43), got.ID)

	require.NoError(item.Delete())
	ok, err = item.Exists()
	require.NoError(err)
	require.False(ok)
}

func TestItemCorruption(t *testing.T) {
	require := require.New(t)
	kv := db.NewMemKVStore()
	item, err := NewItem[record](kv, "meta", "owner")
	require.NoError(err)
	require.NoError(item.Save(record{ID: 1}))

	require.NoError(kv.Put("meta", []byte("owner"), []byte("{")))
	_, _, err = item.Load()
	require.Equal(ErrDeserialize, errors.Cause(err))
	// existence does not decode the value
	ok, err := item.Exists()
	require.NoError(err)
	require.True(ok)
}

func TestItemCompressed(t *testing.T) {
	require := require.New(t)
	kv := db.NewMemKVStore()
	item, err := NewItem[string](kv, "meta", "blob", WithCompressor[string](compress.Snappy))
	require.NoError(err)

	want := "a value long enough for the compressor to have something to chew on"
	require.NoError(item.Save(want))
	got, ok, err := item.Load()
	require.NoError(err)
	require.True(ok)
	require.Equal(want, got)
}
