// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

//go:build arm || arm64
// +build arm arm64

package log

import (
	stdlog "log"
	"os"
	"syscall"
)

// redirectStderr to the file passed in
func redirectStderr(f *os.File) error {
	err := syscall.Dup3(int(f.Fd()), 2, 0)
	if err != nil {
		stdlog.Fatalf("Failed to redirect stderr to file: %v", err)
		return err
	}
	return nil
}
