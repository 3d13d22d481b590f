package recovery

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrashLog(t *testing.T) {
	require := require.New(t)
	heapdumpDir, err := os.MkdirTemp(os.TempDir(), "heapdump")
	require.NoError(err)
	defer os.RemoveAll(heapdumpDir)

	t.Run("index out of range", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				CrashLog(r, heapdumpDir)
			}
		}()
		strs := make([]string, 2)
		strs[0] = "a"
		strs[1] = "b"
		strs[2] = "c"
	})
	t.Run("invalid memory address or nil pointer", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				CrashLog(r, heapdumpDir)
			}
		}()
		var i *int
		*i = 1
	})
	t.Run("divide by zero", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				CrashLog(r, heapdumpDir)
			}
		}()
		a, b := 10, 0
		a = a / b
	})
}

func TestPrintInfo(t *testing.T) {
	printInfo("test", func() (interface{}, error) {
		return nil, errors.New("make error")
	})
}

func TestSetCrashlogDir(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	require.NoError(SetCrashlogDir(dir))
	require.Equal(dir, _crashlogDir)
}
