package cas_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/adapters/cas"
	"go.trai.ch/morph/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	record := domain.ResultRecord{
		Transformer: "Unzip@abc",
		InputFile:   "/in/lib.zip",
		InputHash:   "0011223344556677",
		Outputs:     []string{"/ws/lib"},
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put("Unzip@abc|0011223344556677", record))

	got, err := store.Get("Unzip@abc|0011223344556677")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, *got)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")

	first, err := cas.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put("key", domain.ResultRecord{Transformer: "Copy@1", Outputs: []string{"a"}}))

	second, err := cas.NewStore(dir)
	require.NoError(t, err)
	got, err := second.Get("key")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"a"}, got.Outputs)
}

func TestStore_FileLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put("key", domain.ResultRecord{Transformer: "Copy@1"}))

	sum := sha256.Sum256([]byte("key"))
	_, err = os.Stat(filepath.Join(dir, hex.EncodeToString(sum[:])+".json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestStore_Overwrite(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("key", domain.ResultRecord{Outputs: []string{"old"}}))
	require.NoError(t, store.Put("key", domain.ResultRecord{Outputs: []string{"new"}}))

	got, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, got.Outputs)
}

func TestStore_GetCorrupted(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("key"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, hex.EncodeToString(sum[:])+".json"), []byte("{"), 0o600))

	_, err = store.Get("key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStoreUnmarshalFailed.Error())
}
