package tarsnap

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c4rlo/tarsnap-prune/internal/core/logger"
	"github.com/c4rlo/tarsnap-prune/pkg/errs"
)

// stubBinary writes an executable shell script standing in for tarsnap.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries are POSIX shell scripts")
	}
	path := filepath.Join(t.TempDir(), "tarsnap")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.Init("error", "text", "", "", false)
	require.NoError(t, err)
	return log
}

func TestListArchives(t *testing.T) {
	t.Run("returns stdout", func(t *testing.T) {
		bin := stubBinary(t, `printf 'home-1\t2000-01-01 00:00:00\n'`)
		c := New(bin, "", testLogger(t))

		out, err := c.ListArchives(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "home-1\t2000-01-01 00:00:00\n", out)
	})

	t.Run("passes keyfile and flags", func(t *testing.T) {
		argsFile := filepath.Join(t.TempDir(), "args")
		bin := stubBinary(t, `echo "$@" > `+argsFile)
		c := New(bin, "/etc/tarsnap.key", testLogger(t))

		_, err := c.ListArchives(context.Background())
		require.NoError(t, err)

		args, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		assert.Equal(t, "--keyfile /etc/tarsnap.key --list-archives -v",
			strings.TrimSpace(string(args)))
	})

	t.Run("forces UTC", func(t *testing.T) {
		bin := stubBinary(t, `printf '%s\n' "$TZ"`)
		c := New(bin, "", testLogger(t))

		out, err := c.ListArchives(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "UTC\n", out)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		bin := stubBinary(t, `exit 1`)
		c := New(bin, "", testLogger(t))

		_, err := c.ListArchives(context.Background())
		require.Error(t, err)
		assert.True(t, errs.IsCode(err, errs.ErrTarsnapList))
	})
}

func TestDelete(t *testing.T) {
	t.Run("one -f per archive", func(t *testing.T) {
		argsFile := filepath.Join(t.TempDir(), "args")
		bin := stubBinary(t, `echo "$@" > `+argsFile)
		c := New(bin, "", testLogger(t))

		err := c.Delete(context.Background(), []string{"a", "b"})
		require.NoError(t, err)

		args, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		assert.Equal(t, "-d -f a -f b", strings.TrimSpace(string(args)))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		bin := stubBinary(t, `exit 2`)
		c := New(bin, "", testLogger(t))

		err := c.Delete(context.Background(), []string{"a"})
		require.Error(t, err)
		assert.True(t, errs.IsCode(err, errs.ErrTarsnapDelete))
	})
}
