package repository

import (
	"time"

	"go-phoneshop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	CreateAll(tx *gorm.DB, sales []model.Sale) error
	FindAllByOwner(ownerID uuid.UUID) ([]model.Sale, error)
	FindByID(ownerID, id uuid.UUID) (*model.Sale, error)
	LockByID(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Sale, error)
	Search(ownerID uuid.UUID, query string) ([]model.Sale, error)
	Delete(tx *gorm.DB, ownerID, id uuid.UUID) error
	GetSalesByDay(ownerID uuid.UUID, startDate, endDate time.Time) ([]DailySalesData, error)
	GetDashboardStats(ownerID uuid.UUID) (*DashboardStats, error)
	GetSalesSummary(ownerID uuid.UUID, startDate, endDate time.Time) (float64, float64, error)
}

// DailySalesData is one chart bucket: per-day sale and profit sums.
type DailySalesData struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	Units  int     `json:"units"`
}

// DashboardStats is the overview block for the analytics page.
type DashboardStats struct {
	DevicesInStock int64   `json:"devices_in_stock"`
	StockValuation float64 `json:"stock_valuation"`
	TotalSales     float64 `json:"total_sales"`
	TotalProfit    float64 `json:"total_profit"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// CreateAll inserts the sale rows inside tx so the insert commits or rolls
// back together with the matching inventory delete.
func (r *saleRepo) CreateAll(tx *gorm.DB, sales []model.Sale) error {
	return tx.Create(&sales).Error
}

func (r *saleRepo) FindAllByOwner(ownerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("owner_id = ?", ownerID).
		Order("sold_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ownerID, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.First(&sale, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// LockByID fetches a sale inside tx with a row lock so a void sees a
// stable record until commit. Dialects without row locking drop the
// clause.
func (r *saleRepo) LockByID(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sale, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) Search(ownerID uuid.UUID, query string) ([]model.Sale, error) {
	var sales []model.Sale
	pattern := "%" + query + "%"
	err := r.db.Where("owner_id = ?", ownerID).
		Where("LOWER(product_name) LIKE LOWER(?) OR imei LIKE ?", pattern, pattern).
		Order("sold_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Delete(tx *gorm.DB, ownerID, id uuid.UUID) error {
	result := tx.Where("owner_id = ?", ownerID).Delete(&model.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) GetSalesByDay(ownerID uuid.UUID, startDate, endDate time.Time) ([]DailySalesData, error) {
	var results []DailySalesData

	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			DATE(sold_at) as date,
			COALESCE(SUM(sale_price), 0) as sales,
			COALESCE(SUM(profit), 0) as profit,
			COUNT(*) as units
		`).
		Where("owner_id = ? AND sold_at BETWEEN ? AND ?", ownerID, startDate, endDate).
		Group("DATE(sold_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySalesData
		if err := rows.Scan(&data.Date, &data.Sales, &data.Profit, &data.Units); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *saleRepo) GetDashboardStats(ownerID uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats

	// Placeholder catalog rows (empty IMEI) are not sellable stock.
	r.db.Model(&model.Product{}).
		Where("owner_id = ? AND imei <> ''", ownerID).
		Count(&stats.DevicesInStock)

	r.db.Model(&model.Product{}).
		Where("owner_id = ? AND imei <> ''", ownerID).
		Select("COALESCE(SUM(cost_price), 0)").
		Scan(&stats.StockValuation)

	r.db.Model(&model.Sale{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(sale_price), 0)").
		Scan(&stats.TotalSales)

	r.db.Model(&model.Sale{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&stats.TotalProfit)

	return &stats, nil
}

func (r *saleRepo) GetSalesSummary(ownerID uuid.UUID, startDate, endDate time.Time) (float64, float64, error) {
	var sales float64
	var profit float64

	err := r.db.Model(&model.Sale{}).
		Where("owner_id = ? AND sold_at BETWEEN ? AND ?", ownerID, startDate, endDate).
		Select("COALESCE(SUM(sale_price), 0)").
		Scan(&sales).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&model.Sale{}).
		Where("owner_id = ? AND sold_at BETWEEN ? AND ?", ownerID, startDate, endDate).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&profit).Error
	if err != nil {
		return 0, 0, err
	}

	return sales, profit, nil
}
