// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package store

import (
	"github.com/pkg/errors"

	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/pkg/compress"
)

type (
	options[T any] struct {
		codec      Codec[T]
		compressor string
	}

	// Option sets a customized setting on a collection
	Option[T any] func(*options[T])
)

// WithCodec sets the codec used to encode and decode values, JSONCodec by default
func WithCodec[T any](c Codec[T]) Option[T] {
	return func(o *options[T]) {
		o.codec = c
	}
}

// WithCompressor compresses encoded values with the named compressor,
// compress.Gzip or compress.Snappy
func WithCompressor[T any](compressor string) Option[T] {
	return func(o *options[T]) {
		o.compressor = compressor
	}
}

// buildCodec resolves the effective codec from the options
func (o *options[T]) buildCodec() (Codec[T], error) {
	c := o.codec
	if c == nil {
		c = JSONCodec[T]{}
	}
	switch o.compressor {
	case "":
		return c, nil
	case compress.Gzip, compress.Snappy:
		return newCompressedCodec(c, o.compressor), nil
	default:
		return nil, errors.Wrapf(db.ErrInvalid, "unsupported compressor %s", o.compressor)
	}
}
