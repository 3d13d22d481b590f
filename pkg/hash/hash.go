// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package hash

import (
	"golang.org/x/crypto/blake2b"
)

var (
	// ZeroHash256 is 32-bytes of all zero
	ZeroHash256 = Hash256{}
	// ZeroHash160 is 20-bytes of all zero
	ZeroHash160 = Hash160{}
)

type (
	// Hash256 is 32-byte hash
	Hash256 [32]byte
	// Hash160 is 20-byte hash
	Hash160 [20]byte
)

// Hash256b returns the 32-byte blake2b hash of a byte stream
func Hash256b(input []byte) Hash256 {
	return Hash256(blake2b.Sum256(input))
}

// Hash160b returns the first 20 bytes of the 32-byte blake2b hash
func Hash160b(input []byte) Hash160 {
	var h Hash160
	h256 := blake2b.Sum256(input)
	copy(h[:], h256[:20])
	return h
}
