package mirror

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:mirror_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Product{}))
	return NewStore(db)
}

func TestSeedPreloadsCatalog(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Seed(DefaultCatalog))

	products, err := store.List()
	require.NoError(t, err)
	assert.Len(t, products, len(DefaultCatalog))
	for _, p := range products {
		assert.Zero(t, p.Stock)
	}
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create(&Product{Name: "iPhone 13", Stock: 4}))
	require.NoError(t, store.Seed(DefaultCatalog))

	products, err := store.List()
	require.NoError(t, err)
	assert.Len(t, products, 1, "seeding must not touch a store that already has rows")
}

func TestEditInPlace(t *testing.T) {
	store := newTestStore(t)

	p := &Product{Name: "iPhone 14", SalePrice: 900, Stock: 3}
	require.NoError(t, store.Create(p))

	updated, err := store.Edit(p.ID, "iPhone 14 Pro", 1100, 5)
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "iPhone 14 Pro", updated.Name)
	assert.Equal(t, 1100.0, updated.SalePrice)
	assert.Equal(t, 5, updated.Stock)
}

func TestEditMergesOnNameCollision(t *testing.T) {
	store := newTestStore(t)

	existing := &Product{Name: "iPhone 15", SalePrice: 1000, Stock: 3}
	edited := &Product{Name: "iphone 15 (old label)", SalePrice: 950, Stock: 2}
	require.NoError(t, store.Create(existing))
	require.NoError(t, store.Create(edited))

	// Renaming onto an existing line, case-insensitively, folds the edited
	// row into it.
	merged, err := store.Edit(edited.ID, "IPHONE 15", 1050, 2)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, 5, merged.Stock, "stock must be the sum of both lines")
	assert.Equal(t, 1050.0, merged.SalePrice)

	_, err = store.FindByID(edited.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "edited row must be absorbed")

	products, err := store.List()
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestEditMergeKeepsOldPriceWhenZero(t *testing.T) {
	store := newTestStore(t)

	existing := &Product{Name: "iPhone 16", SalePrice: 1200, Stock: 1}
	edited := &Product{Name: "iPhone 16 dup", Stock: 1}
	require.NoError(t, store.Create(existing))
	require.NoError(t, store.Create(edited))

	merged, err := store.Edit(edited.ID, "iPhone 16", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, merged.SalePrice, "zero price must not overwrite the match")
	assert.Equal(t, 2, merged.Stock)
}

func TestEditRejectsEmptyName(t *testing.T) {
	store := newTestStore(t)

	p := &Product{Name: "iPhone 12", Stock: 1}
	require.NoError(t, store.Create(p))

	_, err := store.Edit(p.ID, "   ", 500, 1)
	assert.ErrorIs(t, err, gorm.ErrInvalidData)
}

func TestEditMissingRow(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Edit(999, "iPhone 12", 500, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	p := &Product{Name: "iPhone 13 Pro", Stock: 2}
	require.NoError(t, store.Create(p))

	require.NoError(t, store.Delete(p.ID))
	assert.ErrorIs(t, store.Delete(p.ID), gorm.ErrRecordNotFound)
}

func TestLowStock(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create(&Product{Name: "iPhone 12", Stock: 0}))
	require.NoError(t, store.Create(&Product{Name: "iPhone 13", Stock: 2}))
	require.NoError(t, store.Create(&Product{Name: "iPhone 14", Stock: 5}))
	require.NoError(t, store.Create(&Product{Name: "iPhone 15", Stock: 9}))

	low, err := store.LowStock(5)
	require.NoError(t, err)
	require.Len(t, low, 2)

	// Ordered by how close each line is to running out.
	assert.Equal(t, "iPhone 13", low[0].Name)
	assert.Equal(t, "iPhone 14", low[1].Name)
}
