package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StoreOpenFailure(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "converter.log")
	t.Setenv("LOG_FILE", logFile)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "missing", "dir", "rates.db"))

	code := run(context.Background())

	assert.Equal(t, 1, code)
	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ошибка открытия хранилища")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")

	assert.Equal(t, 1, run(context.Background()))
}
