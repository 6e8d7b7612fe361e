package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/frizzly/api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestOpen_Memory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = DriverMemory

	store, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = "firestore"

	store, err := Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestOpen_MongoWithoutCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = DriverMongo
	cfg.MongoDB.URI = ""
	cfg.MongoDB.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")

	store, err := Open(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.Nil(t, store)
}
