package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-phoneshop-pos/internal/model"
)

func seedProduct(t *testing.T, db *gorm.DB, owner uuid.UUID, name, imei string, cost float64) model.Product {
	t.Helper()
	product := model.Product{
		Name:      name,
		IMEI:      imei,
		CostPrice: cost,
		OwnerID:   owner,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestLockByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	owner := uuid.New()
	p := seedProduct(t, db, owner, "iPhone 15", "111111111111111", 800)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.LockByID(tx, owner, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.IMEI, locked.IMEI)

		_, err = repo.LockByID(tx, owner, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestDeleteByIDsRemovesAllListedUnits(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	owner := uuid.New()
	p1 := seedProduct(t, db, owner, "iPhone 15", "111111111111111", 800)
	p2 := seedProduct(t, db, owner, "iPhone 14", "222222222222222", 600)

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.DeleteByIDs(tx, owner, []uuid.UUID{p1.ID, p2.ID})
	})
	require.NoError(t, err)

	products, err := repo.FindAllByOwner(owner)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDeleteByIDsReportsMissingUnits(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	owner := uuid.New()
	p := seedProduct(t, db, owner, "iPhone 15", "111111111111111", 800)

	// One of the listed units is already gone; the short row count must
	// surface as an error so the surrounding transaction rolls back.
	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.DeleteByIDs(tx, owner, []uuid.UUID{p.ID, uuid.New()})
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The rollback must keep the surviving unit.
	products, err := repo.FindAllByOwner(owner)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestDeleteByIDsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	alice, bob := uuid.New(), uuid.New()
	p := seedProduct(t, db, alice, "iPhone 15", "111111111111111", 800)

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.DeleteByIDs(tx, bob, []uuid.UUID{p.ID})
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	products, err := repo.FindAllByOwner(alice)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
