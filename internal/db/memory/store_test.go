package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/finrag/internal/db"
)

func TestStore_GetMissing(t *testing.T) {
	_, err := NewStore().Get(context.Background(), "nope")
	require.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestStore_SetGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	val := []byte("vector")
	require.NoError(t, s.SetWithTTL(ctx, "k", val, 0))
	val[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "vector", string(got))

	got[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "vector", string(again))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.SetWithTTL(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestStore_Ping(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Ping(context.Background()))
	s.Close()
}
