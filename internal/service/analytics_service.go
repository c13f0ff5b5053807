package service

import (
	"time"

	"go-phoneshop-pos/internal/analytics"
	"go-phoneshop-pos/internal/export"
	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/repository"

	"github.com/google/uuid"
)

type AnalyticsService interface {
	GetSales(ownerID uuid.UUID, query string) ([]model.Sale, error)
	GetTotals(ownerID uuid.UUID) (analytics.Totals, error)
	GetDailySales(ownerID uuid.UUID, day string) ([]model.Sale, analytics.Totals, error)
	GetSalesByDay(ownerID uuid.UUID) ([]analytics.DayBucket, error)
	GetSalesChart(ownerID uuid.UUID, days int) ([]repository.DailySalesData, error)
	GetDashboardStats(ownerID uuid.UUID) (*repository.DashboardStats, error)
	ExportCSV(ownerID uuid.UUID) ([]byte, error)
	ExportXLSX(ownerID uuid.UUID) ([]byte, error)
}

type analyticsService struct {
	saleRepo repository.SaleRepository
}

func NewAnalyticsService(saleRepo repository.SaleRepository) AnalyticsService {
	return &analyticsService{saleRepo: saleRepo}
}

func (s *analyticsService) GetSales(ownerID uuid.UUID, query string) ([]model.Sale, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}
	var (
		sales []model.Sale
		err   error
	)
	if query != "" {
		sales, err = s.saleRepo.Search(ownerID, query)
	} else {
		sales, err = s.saleRepo.FindAllByOwner(ownerID)
	}
	if err != nil {
		return nil, model.NewStoreError("list sales", err)
	}
	return sales, nil
}

func (s *analyticsService) GetTotals(ownerID uuid.UUID) (analytics.Totals, error) {
	sales, err := s.GetSales(ownerID, "")
	if err != nil {
		return analytics.Totals{}, err
	}
	return analytics.CalcTotals(sales), nil
}

// GetDailySales returns the sales of one calendar day plus their totals.
// An empty day means today.
func (s *analyticsService) GetDailySales(ownerID uuid.UUID, day string) ([]model.Sale, analytics.Totals, error) {
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}

	sales, err := s.GetSales(ownerID, "")
	if err != nil {
		return nil, analytics.Totals{}, err
	}

	daily := analytics.FilterDay(sales, day)
	return daily, analytics.CalcTotals(daily), nil
}

func (s *analyticsService) GetSalesByDay(ownerID uuid.UUID) ([]analytics.DayBucket, error) {
	sales, err := s.GetSales(ownerID, "")
	if err != nil {
		return nil, err
	}
	return analytics.GroupByDay(sales), nil
}

func (s *analyticsService) GetSalesChart(ownerID uuid.UUID, days int) ([]repository.DailySalesData, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	data, err := s.saleRepo.GetSalesByDay(ownerID, startDate, endDate)
	if err != nil {
		return nil, model.NewStoreError("sales chart", err)
	}
	return data, nil
}

func (s *analyticsService) GetDashboardStats(ownerID uuid.UUID) (*repository.DashboardStats, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}
	stats, err := s.saleRepo.GetDashboardStats(ownerID)
	if err != nil {
		return nil, model.NewStoreError("dashboard stats", err)
	}
	return stats, nil
}

func (s *analyticsService) ExportCSV(ownerID uuid.UUID) ([]byte, error) {
	sales, err := s.GetSales(ownerID, "")
	if err != nil {
		return nil, err
	}
	return export.CSV(sales)
}

func (s *analyticsService) ExportXLSX(ownerID uuid.UUID) ([]byte, error) {
	sales, err := s.GetSales(ownerID, "")
	if err != nil {
		return nil, err
	}
	return export.XLSX(sales)
}
