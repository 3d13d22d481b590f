// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package compress

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

const (
	// Gzip is the name of gzip compressor
	Gzip = "Gzip"
	// Snappy is the name of snappy compressor
	Snappy = "Snappy"
)

var (
	// ErrInputEmpty indicates the input is empty
	ErrInputEmpty = errors.New("input cannot be empty")
)

// Compress compresses the input bytes with the given compressor
func Compress(value []byte, compressor string) ([]byte, error) {
	if value == nil {
		return nil, ErrInputEmpty
	}
	switch compressor {
	case Gzip:
		return gzipCompress(value)
	case Snappy:
		return snappy.Encode(nil, value), nil
	default:
		panic("unsupported compressor: " + compressor)
	}
}

// Decompress decompresses the input bytes with the given compressor
func Decompress(value []byte, compressor string) ([]byte, error) {
	switch compressor {
	case Gzip:
		return gzipDecompress(value)
	case Snappy:
		return snappy.Decode(nil, value)
	default:
		panic("unsupported compressor: " + compressor)
	}
}

func gzipCompress(value []byte) ([]byte, error) {
	var bb bytes.Buffer
	w, err := gzip.NewWriterLevel(&bb, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(value); err != nil {
		w.Close()
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

func gzipDecompress(value []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewBuffer(value))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
