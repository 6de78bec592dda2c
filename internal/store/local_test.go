package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Adrixx117/Investments/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBackend_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFileKeyValue(dir)
	require.NoError(t, err)
	c := NewCoordinator(NewLocalBackend(kv, ""), quietLogger())
	inv, err := c.Add(ctx, draftOf("etf", "VOO", "", "400", "2"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, DefaultLocalKey+".json"))
	require.NoError(t, err)

	kv2, err := NewFileKeyValue(dir)
	require.NoError(t, err)
	c2 := NewCoordinator(NewLocalBackend(kv2, ""), quietLogger())
	require.NoError(t, c2.Load(ctx))

	list := c2.List(models.TypeETF)
	require.Len(t, list, 1)
	assert.True(t, list[0].Equal(inv))
}

func TestLocalBackend_WritesWholeListAsJSONNumbers(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValue()
	c := NewCoordinator(NewLocalBackend(kv, "inv"), quietLogger())

	_, err := c.Add(ctx, draftOf("etf", "VOO", "", "400", "2"))
	require.NoError(t, err)
	_, err = c.Add(ctx, draftOf("stock", "AAPL", "0.5", "190", "1"))
	require.NoError(t, err)

	data, ok, err := kv.Get(ctx, "inv")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(data), `"price":400`)
	assert.Contains(t, string(data), `"dividend":null`)
	assert.Contains(t, string(data), `"name":"AAPL"`)
}

func TestLocalBackend_AssignsIDsToLegacyEntries(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValue()
	legacy := `[{"type":"etf","name":"VOO","dividend":null,"price":400,"quantity":2},` +
		`{"type":"accion","name":"AAPL","dividend":0.2,"price":190,"quantity":1}]`
	require.NoError(t, kv.Set(ctx, DefaultLocalKey, []byte(legacy)))

	b := NewLocalBackend(kv, "")
	etfs, err := b.List(ctx, models.TypeETF)
	require.NoError(t, err)
	require.Len(t, etfs, 1)
	assert.NotEmpty(t, etfs[0].ID)

	stocks, err := b.List(ctx, models.TypeStock)
	require.NoError(t, err)
	require.Len(t, stocks, 1)

	// ids are stable across reads
	again, err := b.List(ctx, models.TypeETF)
	require.NoError(t, err)
	assert.Equal(t, etfs[0].ID, again[0].ID)
}

func TestLocalBackend_DeleteAndUpdateMissing(t *testing.T) {
	ctx := context.Background()
	b := NewLocalBackend(NewMemoryKeyValue(), "")

	assert.NoError(t, b.Delete(ctx, models.TypeETF, "nope"))
	assert.ErrorIs(t, b.Update(ctx, models.Investment{ID: "nope", Type: models.TypeETF}), ErrDocumentNotFound)
}

func TestEncryptedKeyValue(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryKeyValue()
	kv := NewEncryptedKeyValue(inner, "secret")
	c := NewCoordinator(NewLocalBackend(kv, ""), quietLogger())

	_, err := c.Add(ctx, draftOf("etf", "VOO", "", "400", "2"))
	require.NoError(t, err)

	sealed, ok, err := inner.Get(ctx, DefaultLocalKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, bytes.Contains(sealed, []byte("VOO")))

	c2 := NewCoordinator(NewLocalBackend(kv, ""), quietLogger())
	require.NoError(t, c2.Load(ctx))
	assert.Len(t, c2.List(models.TypeETF), 1)

	wrong := NewLocalBackend(NewEncryptedKeyValue(inner, "other"), "")
	_, err = wrong.List(ctx, models.TypeETF)
	assert.Error(t, err)
}

func TestFileKeyValue_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKeyValue(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, kv.Set(context.Background(), "../escape", []byte("x")))

	_, ok, err := kv.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}
