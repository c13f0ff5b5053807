package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/repository"
)

func price(v float64) *float64 { return &v }

func newInventoryService(t *testing.T) InventoryService {
	t.Helper()
	db := newTestDB(t)
	return NewInventoryService(repository.NewProductRepo(db), newTestHub())
}

func TestStockInAndRetrieve(t *testing.T) {
	svc := newInventoryService(t)
	owner := uuid.New()

	product, err := svc.StockIn(owner, "tester", &IntakeRequest{
		Name:      "iPhone 15 Pro",
		IMEI:      "356789012345678",
		CostPrice: price(850),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)

	products, err := svc.GetProducts(owner)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "iPhone 15 Pro", products[0].Name)
	assert.Equal(t, "356789012345678", products[0].IMEI)
	assert.Equal(t, 850.0, products[0].CostPrice)
}

func TestStockInRejectsShortIMEI(t *testing.T) {
	svc := newInventoryService(t)
	owner := uuid.New()

	_, err := svc.StockIn(owner, "tester", &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "12345678901234", // 14 digits
		CostPrice: price(800),
	})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "imei", verr.Field)

	// Nothing must be written on a rejected intake.
	products, err := svc.GetProducts(owner)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStockInRejectsNonDigitIMEI(t *testing.T) {
	svc := newInventoryService(t)

	_, err := svc.StockIn(uuid.New(), "tester", &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "35678901234567a",
		CostPrice: price(800),
	})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "imei", verr.Field)
}

func TestStockInRejectsMissingFields(t *testing.T) {
	svc := newInventoryService(t)

	_, err := svc.StockIn(uuid.New(), "tester", &IntakeRequest{
		IMEI:      "356789012345678",
		CostPrice: price(800),
	})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestStockInRejectsNegativePrice(t *testing.T) {
	svc := newInventoryService(t)

	_, err := svc.StockIn(uuid.New(), "tester", &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "356789012345678",
		CostPrice: price(-1),
	})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cost_price", verr.Field)
}

func TestStockInRejectsDuplicateIMEI(t *testing.T) {
	svc := newInventoryService(t)
	owner := uuid.New()

	req := &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "356789012345678",
		CostPrice: price(800),
	}
	_, err := svc.StockIn(owner, "tester", req)
	require.NoError(t, err)

	_, err = svc.StockIn(owner, "tester", req)
	var cerr *model.ConflictError
	require.ErrorAs(t, err, &cerr)

	products, err := svc.GetProducts(owner)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestStockInRequiresAuth(t *testing.T) {
	svc := newInventoryService(t)

	_, err := svc.StockIn(uuid.Nil, "", &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "356789012345678",
		CostPrice: price(800),
	})
	assert.ErrorIs(t, err, model.ErrAuthRequired)
}

func TestGetGroupedStock(t *testing.T) {
	svc := newInventoryService(t)
	owner := uuid.New()

	for _, imei := range []string{"111111111111111", "222222222222222"} {
		_, err := svc.StockIn(owner, "tester", &IntakeRequest{
			Name:      "iPhone 14",
			IMEI:      imei,
			CostPrice: price(700),
		})
		require.NoError(t, err)
	}
	_, err := svc.StockIn(owner, "tester", &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "333333333333333",
		CostPrice: price(900),
	})
	require.NoError(t, err)

	groups, err := svc.GetGroupedStock(owner)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "iPhone 14", groups[0].Name)
	assert.Equal(t, 2, groups[0].Count)
	assert.Len(t, groups[0].Units, 2)
	assert.Equal(t, "iPhone 15", groups[1].Name)
	assert.Equal(t, 1, groups[1].Count)
}

func TestDeleteProduct(t *testing.T) {
	svc := newInventoryService(t)
	owner := uuid.New()

	product, err := svc.StockIn(owner, "tester", &IntakeRequest{
		Name:      "iPhone 13",
		IMEI:      "444444444444444",
		CostPrice: price(500),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(owner, "tester", product.ID))

	products, err := svc.GetProducts(owner)
	require.NoError(t, err)
	assert.Empty(t, products)

	assert.ErrorIs(t, svc.DeleteProduct(owner, "tester", product.ID), model.ErrNotFound)
}

func TestProductsAreScopedPerOwner(t *testing.T) {
	svc := newInventoryService(t)
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.StockIn(alice, "alice", &IntakeRequest{
		Name:      "iPhone 15",
		IMEI:      "555555555555555",
		CostPrice: price(800),
	})
	require.NoError(t, err)

	products, err := svc.GetProducts(bob)
	require.NoError(t, err)
	assert.Empty(t, products)
}
