// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/statekv/statekv/pkg/compress"
)

func TestJSONCodec(t *testing.T) {
	require := require.New(t)
	c := JSONCodec[record]{}

	want := record{ID: 9, Tags: []string{"t"}}
	data, err := c.Marshal(want)
	require.NoError(err)
	got, err := c.Unmarshal(data)
	require.NoError(err)
	require.Equal(want, got)

	_, err = c.Unmarshal([]byte("not json"))
	require.Equal(ErrDeserialize, errors.Cause(err))

	// channels have no JSON representation
	_, err = JSONCodec[chan int]{}.Marshal(make(chan int))
	require.Equal(ErrSerialize, errors.Cause(err))
}

func TestGobCodec(t *testing.T) {
	require := require.New(t)
	c := GobCodec[record]{}

	want := record{ID: 9, Tags: []string{"t"}}
	data, err := c.Marshal(want)
	require.NoError(err)
	got, err := c.Unmarshal(data)
	require.NoError(err)
	require.Equal(want, got)

	_, err = c.Unmarshal([]byte("not gob"))
	require.Equal(ErrDeserialize, errors.Cause(err))

	_, err = GobCodec[chan int]{}.Marshal(make(chan int))
	require.Equal(ErrSerialize, errors.Cause(err))
}

func TestProtoCodec(t *testing.T) {
	require := require.New(t)
	c := ProtoCodec[*wrapperspb.UInt64Value]{}

	data, err := c.Marshal(wrapperspb.UInt64(12345))
	require.NoError(err)
	got, err := c.Unmarshal(data)
	require.NoError(err)
	require.Equal(uint64(12345), got.GetValue())

	_, err = c.Unmarshal([]byte{0xff, 0xff, 0xff})
	require.Equal(ErrDeserialize, errors.Cause(err))
}

func TestBytesCodec(t *testing.T) {
	require := require.New(t)
	c := BytesCodec{}

	data, err := c.Marshal([]byte{1, 2, 3})
	require.NoError(err)
	require.Equal([]byte{1, 2, 3}, data)
	got, err := c.Unmarshal(data)
	require.NoError(err)
	require.Equal([]byte{1, 2, 3}, got)
}

func TestCompressedCodec(t *testing.T) {
	for _, compressor := range []string{compress.Gzip, compress.Snappy} {
		t.Run(compressor, func(t *testing.T) {
			require := require.New(t)
			c := newCompressedCodec[record](JSONCodec[record]{}, compressor)

			want := record{ID: 9, Tags: []string{"alpha", "beta", "gamma"}}
			data, err := c.Marshal(want)
			require.NoError(err)
			got, err := c.Unmarshal(data)
			require.NoError(err)
			require.Equal(want, got)

			// bytes that are not valid compressed data
			_, err = c.Unmarshal([]byte("garbage"))
			require.Equal(ErrDeserialize, errors.Cause(err))
		})
	}

	// inner codec failures keep their own error kind
	require := require.New(t)
	_, err := newCompressedCodec[chan int](JSONCodec[chan int]{}, compress.Gzip).Marshal(make(chan int))
	require.Equal(ErrSerialize, errors.Cause(err))
}
