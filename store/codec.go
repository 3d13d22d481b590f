// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package store

import (
	"bytes"
	"encoding/gob"
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"

	"github.com/statekv/statekv/pkg/compress"
)

var (
	// ErrSerialize indicates the value could not be encoded for storage
	ErrSerialize = errors.New("failed to serialize value")
	// ErrDeserialize indicates the stored bytes could not be decoded back into a value
	ErrDeserialize = errors.New("failed to deserialize stored value")
)

type (
	// Codec encodes values of type T to bytes and back. Marshal failures wrap
	// ErrSerialize and Unmarshal failures wrap ErrDeserialize, so callers can
	// tell a bad value or corrupt record apart from a storage failure.
	Codec[T any] interface {
		Marshal(T) ([]byte, error)
		Unmarshal([]byte) (T, error)
	}

	// JSONCodec encodes values with encoding/json
	JSONCodec[T any] struct{}

	// GobCodec encodes values with encoding/gob
	GobCodec[T any] struct{}

	// ProtoCodec encodes protobuf messages
	ProtoCodec[M proto.Message] struct{}

	// BytesCodec passes raw bytes through unchanged
	BytesCodec struct{}

	// compressedCodec compresses the encoded output of an inner codec
	compressedCodec[T any] struct {
		codec      Codec[T]
		compressor string
	}
)

// Marshal encodes a value to JSON
func (JSONCodec[T]) Marshal(v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(ErrSerialize, err.Error())
	}
	return data, nil
}

// Unmarshal decodes a value from JSON
func (JSONCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Wrap(ErrDeserialize, err.Error())
	}
	return v, nil
}

// Marshal encodes a value with gob
func (GobCodec[T]) Marshal(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errors.Wrap(ErrSerialize, err.Error())
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a value with gob
func (GobCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return v, errors.Wrap(ErrDeserialize, err.Error())
	}
	return v, nil
}

// Marshal encodes a protobuf message
func (ProtoCodec[M]) Marshal(m M) ([]byte, error) {
	data, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(ErrSerialize, err.Error())
	}
	return data, nil
}

// Unmarshal decodes a protobuf message
func (ProtoCodec[M]) Unmarshal(data []byte) (M, error) {
	// M is a nil pointer here, a fresh message is allocated via its type descriptor
	var zero M
	m := zero.ProtoReflect().New().Interface().(M)
	if err := proto.Unmarshal(data, m); err != nil {
		return zero, errors.Wrap(ErrDeserialize, err.Error())
	}
	return m, nil
}

// Marshal returns the bytes unchanged
func (BytesCodec) Marshal(v []byte) ([]byte, error) { return v, nil }

// Unmarshal returns the bytes unchanged
func (BytesCodec) Unmarshal(data []byte) ([]byte, error) { return data, nil }

func newCompressedCodec[T any](c Codec[T], compressor string) Codec[T] {
	return &compressedCodec[T]{codec: c, compressor: compressor}
}

func (c *compressedCodec[T]) Marshal(v T) ([]byte, error) {
	data, err := c.codec.Marshal(v)
	if err != nil {
		return nil, err
	}
	compressed, err := compress.Compress(data, c.compressor)
	if err != nil {
		return nil, errors.Wrap(ErrSerialize, err.Error())
	}
	return compressed, nil
}

func (c *compressedCodec[T]) Unmarshal(data []byte) (T, error) {
	decompressed, err := compress.Decompress(data, c.compressor)
	if err != nil {
		var zero T
		return zero, errors.Wrap(ErrDeserialize, err.Error())
	}
	return c.codec.Unmarshal(decompressed)
}
