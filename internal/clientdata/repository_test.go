package clientdata

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtahawi/esg-navigator/internal/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path: filepath.Join(t.TempDir(), "client_data.db"),
		Name: "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db.Conn())
	require.NoError(t, repo.InitSchema())
	return repo
}

type testPayload struct {
	Value string `json:"value"`
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_esg", "AAA", testPayload{Value: "scores"}, time.Hour))

	data, err := repo.GetIfFresh("yahoo_esg", "AAA")
	require.NoError(t, err)
	require.NotNil(t, data)

	var payload testPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "scores", payload.Value)
}

func TestGetIfFreshMiss(t *testing.T) {
	repo := newTestRepository(t)

	data, err := repo.GetIfFresh("yahoo_esg", "MISSING")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestGetIfFreshExpired(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_esg", "AAA", testPayload{Value: "stale"}, -time.Hour))

	data, err := repo.GetIfFresh("yahoo_esg", "AAA")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Get ignores expiration: stale data is still retrievable as a fallback.
	data, err = repo.Get("yahoo_esg", "AAA")
	require.NoError(t, err)
	require.NotNil(t, data)
}

func TestStoreUpsert(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_profile", "AAA", testPayload{Value: "first"}, time.Hour))
	require.NoError(t, repo.Store("yahoo_profile", "AAA", testPayload{Value: "second"}, time.Hour))

	data, err := repo.GetIfFresh("yahoo_profile", "AAA")
	require.NoError(t, err)

	var payload testPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "second", payload.Value)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_universe", "Technology|3", testPayload{Value: "list"}, time.Hour))
	require.NoError(t, repo.Delete("yahoo_universe", "Technology|3"))

	data, err := repo.Get("yahoo_universe", "Technology|3")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDeleteExpired(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_esg", "FRESH", testPayload{Value: "keep"}, time.Hour))
	require.NoError(t, repo.Store("yahoo_esg", "STALE", testPayload{Value: "drop"}, -time.Hour))

	deleted, err := repo.DeleteExpired("yahoo_esg")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	data, err := repo.GetIfFresh("yahoo_esg", "FRESH")
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestDeleteAllExpired(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_esg", "STALE", testPayload{Value: "drop"}, -time.Hour))
	require.NoError(t, repo.Store("yahoo_profile", "STALE", testPayload{Value: "drop"}, -time.Hour))
	require.NoError(t, repo.Store("yahoo_universe", "q", testPayload{Value: "keep"}, time.Hour))

	results, err := repo.DeleteAllExpired()
	require.NoError(t, err)

	assert.Equal(t, int64(1), results["yahoo_esg"])
	assert.Equal(t, int64(1), results["yahoo_profile"])
	assert.Equal(t, int64(0), results["yahoo_universe"])
}

func TestInvalidTableRejected(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Store("users; DROP TABLE yahoo_esg", "key", testPayload{}, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")

	_, err = repo.GetIfFresh("unknown_table", "key")
	assert.Error(t, err)
}

func TestCleanupJobRun(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store("yahoo_esg", "STALE", testPayload{Value: "drop"}, -time.Hour))

	job := NewCleanupJob(repo, zerolog.Nop())
	job.Run()

	data, err := repo.Get("yahoo_esg", "STALE")
	require.NoError(t, err)
	assert.Nil(t, data)
}
