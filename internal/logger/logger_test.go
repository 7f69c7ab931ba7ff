package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{EnvLocal, EnvProd} {
		l, err := New(Options{Env: env})
		require.NoError(t, err, env)
		assert.NotNil(t, l)
	}

	_, err := New(Options{Env: "staging"})
	require.Error(t, err)

	_, err = New(Options{Env: EnvLocal, Level: "loud"})
	require.Error(t, err)

	l, err := New(Options{Env: EnvProd, Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
}

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finrag.log")

	l, err := New(Options{Env: EnvProd, Level: "info", File: FileOptions{Path: path, MaxSizeMB: 1}})
	require.NoError(t, err)
	l.Info("indices built", zap.Int("documents", 3))
	l.Debug("dropped")
	_ = l.Sync() // stderr sync may fail on some platforms

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"indices built"`)
	assert.Contains(t, string(data), `"documents":3`)
	assert.NotContains(t, string(data), "dropped")
}

func TestWithFile_EmptyPath(t *testing.T) {
	l := zap.NewNop()
	assert.Same(t, l, withFile(l, FileOptions{}, zap.InfoLevel))
}

func TestContextLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	core, logs := observer.New(zap.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))
	FromContext(ctx).Info("hello")
	assert.Equal(t, 1, logs.Len())
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ctx = WithFields(ctx, zap.String("retrieval_mode", "hybrid"))
	FromContext(ctx).Info("retrieval done")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hybrid", logs.All()[0].ContextMap()["retrieval_mode"])

	bare := context.Background()
	assert.Equal(t, bare, WithFields(bare, zap.String("k", "v")))
}
