package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matst80/slask-storefront/pkg/storage"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSourceWithoutSnapshot(t *testing.T) {
	src := NewStaticSource(storage.NewDiskStorage("se", t.TempDir()), nil)
	products, err := src.Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrNoSnapshot), "Expected ErrNoSnapshot, got %v", err)
	assert.Nil(t, products)
}

func TestStaticSourceServesSnapshot(t *testing.T) {
	ds := storage.NewDiskStorage("se", t.TempDir())
	require.NoError(t, ds.SaveProducts([]types.Product{{Id: 1, Price: 5}, {Id: 2, Price: 7}}))

	src := NewStaticSource(ds, nil)
	products, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.ProductId{1, 2}, types.Ids(products))
}

func TestStaticSourceKeepsPreviousSnapshotOnBadReload(t *testing.T) {
	ds := storage.NewDiskStorage("se", t.TempDir())
	require.NoError(t, ds.SaveProducts([]types.Product{{Id: 1}}))
	src := NewStaticSource(ds, nil)

	require.NoError(t, ds.SaveProducts([]types.Product{{Id: 3, Price: -1}}))
	err := src.Reload()
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	products, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.ProductId{1}, types.Ids(products))
}

func TestStaticSourceWatchReloads(t *testing.T) {
	ds := storage.NewDiskStorage("se", t.TempDir())
	require.NoError(t, ds.SaveProducts([]types.Product{{Id: 1}}))
	src := NewStaticSource(ds, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Watch(ctx))

	require.NoError(t, ds.SaveProducts([]types.Product{{Id: 1}, {Id: 2}}))

	assert.Eventually(t, func() bool {
		products, err := src.Fetch(context.Background())
		return err == nil && len(products) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStaticSourceWatchMissingFolder(t *testing.T) {
	src := NewStaticSource(storage.NewDiskStorage("se", t.TempDir()+"/missing"), nil)
	assert.Error(t, src.Watch(context.Background()))
}
