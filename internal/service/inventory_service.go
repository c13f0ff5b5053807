package service

import (
	"errors"
	"sort"
	"strings"

	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/repository"
	"go-phoneshop-pos/internal/ws"
	"go-phoneshop-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntakeRequest is a proposed new device for stock.
type IntakeRequest struct {
	Name      string   `json:"name" validate:"required"`
	IMEI      string   `json:"imei" validate:"required,imei15"`
	CostPrice *float64 `json:"cost_price" validate:"required,gte=0"`
}

type InventoryService interface {
	StockIn(ownerID uuid.UUID, ownerName string, req *IntakeRequest) (*model.Product, error)
	GetProducts(ownerID uuid.UUID) ([]model.Product, error)
	GetGroupedStock(ownerID uuid.UUID) ([]model.GroupedStock, error)
	DeleteProduct(ownerID uuid.UUID, ownerName string, id uuid.UUID) error
}

type inventoryService struct {
	productRepo repository.ProductRepository
	hub         *ws.Hub
}

func NewInventoryService(productRepo repository.ProductRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		hub:         hub,
	}
}

// intakeValidationError maps the first failed validator tag onto the error
// taxonomy: missing field vs malformed IMEI vs bad price.
func intakeValidationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	field := strings.ToLower(first.FailedField)
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch first.Tag {
	case "required":
		return model.NewValidationError(field, "is required")
	case "imei15":
		return model.NewValidationError(field, "must be exactly 15 digits")
	case "gte":
		return model.NewValidationError(field, "must not be negative")
	default:
		return model.NewValidationError(field, "failed on '"+first.Tag+"'")
	}
}

// isDuplicateKey recognizes a unique-constraint violation from either
// backing store. The owner+imei index is the authority on duplicates; the
// read-before-write check only exists for a friendlier message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (s *inventoryService) StockIn(ownerID uuid.UUID, ownerName string, req *IntakeRequest) (*model.Product, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, intakeValidationError(errs)
	}

	// Friendly duplicate check; the unique index closes the race.
	if existing, err := s.productRepo.FindByIMEI(ownerID, req.IMEI); err == nil && existing.ID != uuid.Nil {
		return nil, model.NewConflictError("IMEI already exists in your stock")
	}

	product := &model.Product{
		Name:      strings.TrimSpace(req.Name),
		IMEI:      req.IMEI,
		CostPrice: *req.CostPrice,
		OwnerID:   ownerID,
	}
	product.CreatedBy = ownerID.String()
	product.UpdatedBy = ownerID.String()

	if err := s.productRepo.Create(product); err != nil {
		if isDuplicateKey(err) {
			return nil, model.NewConflictError("IMEI already exists in your stock")
		}
		return nil, model.NewStoreError("stock intake", err)
	}

	go s.hub.Publish(ws.StockEvent("device_stocked", map[string]interface{}{
		"id":         product.ID,
		"name":       product.Name,
		"imei":       product.IMEI,
		"cost_price": product.CostPrice,
	}, ownerName))

	return product, nil
}

func (s *inventoryService) GetProducts(ownerID uuid.UUID) ([]model.Product, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}
	products, err := s.productRepo.FindAllByOwner(ownerID)
	if err != nil {
		return nil, model.NewStoreError("list products", err)
	}
	return products, nil
}

// GetGroupedStock projects the unit-per-row inventory onto the aggregate
// view: one entry per model name, stock = unit count.
func (s *inventoryService) GetGroupedStock(ownerID uuid.UUID) ([]model.GroupedStock, error) {
	products, err := s.GetProducts(ownerID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]model.Product)
	for _, p := range products {
		if p.IMEI == "" {
			continue // placeholder rows carry no stock
		}
		byName[p.Name] = append(byName[p.Name], p)
	}

	groups := make([]model.GroupedStock, 0, len(byName))
	for name, units := range byName {
		groups = append(groups, model.GroupedStock{
			Name:  name,
			Count: len(units),
			Units: units,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (s *inventoryService) DeleteProduct(ownerID uuid.UUID, ownerName string, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return model.ErrAuthRequired
	}

	if err := s.productRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		return model.NewStoreError("delete product", err)
	}

	go s.hub.Publish(ws.StockEvent("device_removed", map[string]interface{}{
		"id": id,
	}, ownerName))

	return nil
}
