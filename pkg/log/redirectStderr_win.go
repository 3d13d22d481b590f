// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

//go:build windows
// +build windows

package log

import (
	"os"
)

// stderr redirect is not supported on windows
func redirectStderr(_ *os.File) error {
	return nil
}
