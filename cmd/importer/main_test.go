package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"spotfinder/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "locations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "spotfinder.db")
	t.Setenv("DB_PATH", dbPath)
	csvPath := writeCSV(t, dir, "address,latitude,longitude\nCasa Loma,43.6780,-79.4094\nAjax,0,0\n")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), csvPath, dir, &out))

	assert.Contains(t, out.String(), "Parsed 2 records")
	assert.Contains(t, out.String(), "Skipped existing address: Ajax")
	assert.Contains(t, out.String(), "Successfully imported 1 records (1 skipped), store now holds 101 locations")

	// The last connection closing checkpoints and removes the WAL file.
	assert.NoFileExists(t, dbPath+"-wal")

	repo, err := repository.Open(context.Background(), repository.Options{Path: dbPath})
	require.NoError(t, err)
	defer repo.Close()

	loc, err := repo.FindByAddress(context.Background(), "casa loma")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 43.678, loc.Latitude)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "spotfinder.db"))

	tests := []struct {
		name     string
		csv      string
		contains string
	}{
		{
			name:     "non-finite coordinate",
			csv:      "address,latitude,longitude\nNowhere,NaN,1\n",
			contains: "parsing CSV",
		},
		{
			name:     "empty file",
			csv:      "",
			contains: "parsing CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csvPath := writeCSV(t, t.TempDir(), tt.csv)

			err := run(context.Background(), csvPath, dir, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		err := run(context.Background(), filepath.Join(dir, "absent.csv"), dir, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening CSV")
	})

	t.Run("store cannot be opened", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		t.Setenv("DB_PATH", filepath.Join(blocker, "spotfinder.db"))
		csvPath := writeCSV(t, t.TempDir(), "address,latitude,longitude\nCasa Loma,43.6780,-79.4094\n")

		err := run(context.Background(), csvPath, dir, &bytes.Buffer{})
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrStorage)
	})
}
