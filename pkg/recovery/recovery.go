// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package recovery is a tool to dump heap and system state when the process crashes.
package recovery

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/statekv/statekv/pkg/log"
)

var _crashlogDir = os.TempDir()

// SetCrashlogDir sets the directory to write crash logs and heap dumps
func SetCrashlogDir(dir string) error {
	if err := os.MkdirAll(dir, 0744); err != nil {
		log.L().Error("Failed to create crashlog directory.", zap.Error(err))
		return err
	}
	_crashlogDir = dir
	return nil
}

// Recover catches a crashing goroutine, writes the crash log, then crashes again
func Recover() {
	if r := recover(); r != nil {
		CrashLog(r, _crashlogDir)
		panic(r)
	}
}

// CrashLog logs the crash cause together with runtime and system state, and dumps the heap
func CrashLog(r interface{}, heapdumpDir string) {
	log.S().Errorf("crashed: %v", r)
	log.S().Infof("goroutines: %d, cgo calls: %d, GOMAXPROCS: %d",
		runtime.NumGoroutine(), runtime.NumCgoCall(), runtime.GOMAXPROCS(0))
	printInfo("host", func() (interface{}, error) { return host.Info() })
	printInfo("memory", func() (interface{}, error) { return mem.VirtualMemory() })
	printInfo("cpu", func() (interface{}, error) { return cpu.Info() })
	printInfo("load", func() (interface{}, error) { return load.Avg() })
	printInfo("disk", func() (interface{}, error) { return disk.Usage(heapdumpDir) })
	heapdump(heapdumpDir)
}

func printInfo(name string, f func() (interface{}, error)) {
	v, err := f()
	if err != nil {
		log.S().Errorf("failed to get %s info: %v", name, err)
		return
	}
	log.S().Infof("%s: %+v", name, v)
}

func heapdump(dir string) {
	f, err := os.Create(filepath.Join(dir, "heapdump_"+time.Now().UTC().Format("20060102150405")+".out"))
	if err != nil {
		log.S().Errorf("failed to create heap dump file: %v", err)
		return
	}
	defer f.Close()
	if err := pprof.Lookup("heap").WriteTo(f, 1); err != nil {
		log.S().Errorf("failed to dump heap: %v", err)
	}
}
