package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-phoneshop-pos/internal/model"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Sale{}))
	return db
}

func seedSale(t *testing.T, db *gorm.DB, owner uuid.UUID, name, imei string, cost, price float64, soldAt time.Time) model.Sale {
	t.Helper()
	sale := model.Sale{
		ProductName: name,
		IMEI:        imei,
		CostPrice:   cost,
		SalePrice:   price,
		Profit:      price - cost,
		SoldAt:      soldAt,
		OwnerID:     owner,
	}
	require.NoError(t, db.Create(&sale).Error)
	return sale
}

func TestSearchMatchesNameCaseInsensitively(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepo(db)
	owner := uuid.New()
	now := time.Now()

	seedSale(t, db, owner, "iPhone 15 Pro", "111111111111111", 800, 1000, now)
	seedSale(t, db, owner, "iPhone 14", "222222222222222", 600, 750, now)

	sales, err := repo.Search(owner, "IPHONE 15")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "iPhone 15 Pro", sales[0].ProductName)
}

func TestSearchMatchesIMEI(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepo(db)
	owner := uuid.New()

	seedSale(t, db, owner, "iPhone 15", "111111111111111", 800, 1000, time.Now())

	sales, err := repo.Search(owner, "111111")
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	sales, err = repo.Search(owner, "999999")
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestGetSalesByDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepo(db)
	owner := uuid.New()

	day1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 16, 0, 0, 0, time.UTC)
	seedSale(t, db, owner, "iPhone 15", "111111111111111", 800, 1000, day1)
	seedSale(t, db, owner, "iPhone 14", "222222222222222", 600, 750, day1.Add(2*time.Hour))
	seedSale(t, db, owner, "iPhone 13", "333333333333333", 400, 500, day2)

	buckets, err := repo.GetSalesByDay(owner, day1.Add(-time.Hour), day2.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, "2024-05-01", buckets[0].Date)
	assert.Equal(t, 1750.0, buckets[0].Sales)
	assert.Equal(t, 350.0, buckets[0].Profit)
	assert.Equal(t, 2, buckets[0].Units)

	assert.Equal(t, "2024-05-02", buckets[1].Date)
	assert.Equal(t, 1, buckets[1].Units)
}

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepo(db)
	owner := uuid.New()

	products := []model.Product{
		{Name: "iPhone 15", IMEI: "111111111111111", CostPrice: 800, OwnerID: owner},
		{Name: "iPhone 14", IMEI: "222222222222222", CostPrice: 600, OwnerID: owner},
		{Name: "iPhone 13", IMEI: "", CostPrice: 0, OwnerID: owner}, // placeholder
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	seedSale(t, db, owner, "iPhone 12", "444444444444444", 300, 450, time.Now())

	stats, err := repo.GetDashboardStats(owner)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.DevicesInStock, "placeholder rows are not stock")
	assert.Equal(t, 1400.0, stats.StockValuation)
	assert.Equal(t, 450.0, stats.TotalSales)
	assert.Equal(t, 150.0, stats.TotalProfit)
}

func TestLockByIDSeesTransactionState(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepo(db)
	owner := uuid.New()
	sale := seedSale(t, db, owner, "iPhone 15", "111111111111111", 800, 1000, time.Now())

	// The locked read runs on the transaction handle, so it observes the
	// transaction's own deletes instead of the committed state.
	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.LockByID(tx, owner, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, sale.IMEI, locked.IMEI)

		require.NoError(t, repo.Delete(tx, owner, sale.ID))

		_, err = repo.LockByID(tx, owner, sale.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestSalesAreScopedPerOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepo(db)
	alice, bob := uuid.New(), uuid.New()

	seedSale(t, db, alice, "iPhone 15", "111111111111111", 800, 1000, time.Now())

	sales, err := repo.FindAllByOwner(bob)
	require.NoError(t, err)
	assert.Empty(t, sales)

	_, err = repo.FindByID(bob, uuid.Nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
