package repository

import (
	"go-phoneshop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAllByOwner(ownerID uuid.UUID) ([]model.Product, error)
	FindByID(ownerID, id uuid.UUID) (*model.Product, error)
	FindByIMEI(ownerID uuid.UUID, imei string) (*model.Product, error)
	LockByID(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Product, error)
	DeleteByIDs(tx *gorm.DB, ownerID uuid.UUID, ids []uuid.UUID) error
	Delete(ownerID, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAllByOwner(ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ownerID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIMEI(ownerID uuid.UUID, imei string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "imei = ? AND owner_id = ?", imei, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// LockByID fetches a product inside tx with a row lock so the checkout
// transaction sees a stable unit until commit. Dialects without row
// locking drop the clause.
func (r *productRepo) LockByID(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteByIDs removes the given units inside tx (in-list delete). Hard
// delete; a soft-deleted unit would keep its IMEI in the unique index and
// block the same device from ever being stocked again. A row count short
// of len(ids) means some unit was already sold or removed, and the caller
// must not commit.
func (r *productRepo) DeleteByIDs(tx *gorm.DB, ownerID uuid.UUID, ids []uuid.UUID) error {
	result := tx.Unscoped().
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Delete(ownerID, id uuid.UUID) error {
	result := r.db.Unscoped().Where("owner_id = ?", ownerID).Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
