// Package mirror is the embedded, offline inventory view. Unlike the
// remote store it has no per-user scoping and models stock as an aggregate
// count per model name; the remote unit-per-row inventory stays canonical.
package mirror

import (
	"errors"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Product is one model line in the offline catalog. Stock is the aggregate
// unit count; placeholder rows preloaded by Seed start at zero.
type Product struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"type:varchar(255);not null;index" json:"name"`
	IMEI      string  `gorm:"column:imei;type:varchar(15)" json:"imei"`
	CostPrice float64 `json:"cost_price"`
	SalePrice float64 `json:"sale_price"`
	Stock     int     `json:"stock"`
}

func (Product) TableName() string {
	return "mirror_products"
}

// DefaultCatalog is the model lineup preloaded into an empty mirror.
var DefaultCatalog = []string{
	"iPhone 12", "iPhone 12 Pro", "iPhone 12 Pro Max",
	"iPhone 13", "iPhone 13 Pro", "iPhone 13 Pro Max",
	"iPhone 14", "iPhone 14 Pro", "iPhone 14 Pro Max",
	"iPhone 15", "iPhone 15 Pro", "iPhone 15 Pro Max",
	"iPhone 16", "iPhone 16 Pro", "iPhone 16 Pro Max",
	"iPhone 17", "iPhone 17 Pro", "iPhone 17 Pro Max",
}

type Store struct {
	db *gorm.DB
}

// Open connects to the embedded database file and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Product{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection. Used by tests.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Seed preloads placeholder rows for the given model names with zero
// stock. It is a no-op if the table already has any rows.
func (s *Store) Seed(models []string) error {
	var count int64
	if err := s.db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := make([]Product, len(models))
	for i, name := range models {
		rows[i] = Product{Name: name}
	}
	return s.db.Create(&rows).Error
}

func (s *Store) List() ([]Product, error) {
	var products []Product
	err := s.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (s *Store) FindByID(id uint) (*Product, error) {
	var product Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) Create(product *Product) error {
	return s.db.Create(product).Error
}

func (s *Store) Delete(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LowStock lists model lines that are running out: stock above zero but at
// or below the threshold.
func (s *Store) LowStock(threshold int) ([]Product, error) {
	var products []Product
	err := s.db.Where("stock > 0 AND stock <= ?", threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

// Edit applies a user edit to a model line, merging into another line when
// the new name collides case-insensitively with it. The merge absorbs the
// edited row: the match gains its stock, takes the new price when one was
// given, and the edited row is deleted. Runs as one transaction so no
// stock is lost or duplicated halfway.
func (s *Store) Edit(id uint, name string, salePrice float64, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, gorm.ErrInvalidData
	}

	var result Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var edited Product
		if err := tx.First(&edited, id).Error; err != nil {
			return err
		}

		var match Product
		err := tx.Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
			First(&match).Error
		switch {
		case err == nil:
			// Collision: fold the edited row into the match.
			match.Stock += stock
			if salePrice > 0 {
				match.SalePrice = salePrice
			}
			if err := tx.Save(&match).Error; err != nil {
				return err
			}
			if err := tx.Delete(&Product{}, id).Error; err != nil {
				return err
			}
			result = match
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			edited.Name = name
			edited.SalePrice = salePrice
			edited.Stock = stock
			if err := tx.Save(&edited).Error; err != nil {
				return err
			}
			result = edited
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
