package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini_casino/internal/repository"
)

func TestRoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "casino.db")

	r, cleanup, err := NewKVRepository(ctx, path)
	require.NoError(t, err)

	_, err = r.Get(ctx, "coins")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, r.Set(ctx, "coins", "200"))
	require.NoError(t, r.Set(ctx, "coins", "245"))
	cleanup()

	r, cleanup, err = NewKVRepository(ctx, path)
	require.NoError(t, err)
	defer cleanup()

	v, err := r.Get(ctx, "coins")
	require.NoError(t, err)
	assert.Equal(t, "245", v)
}

func TestEmptyPath(t *testing.T) {
	_, _, err := NewKVRepository(context.Background(), " ")
	assert.Error(t, err)
}
