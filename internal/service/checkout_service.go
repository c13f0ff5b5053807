package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/receipt"
	"go-phoneshop-pos/internal/repository"
	"go-phoneshop-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutResult reports what a committed checkout produced.
type CheckoutResult struct {
	Sales       []model.Sale `json:"sales"`
	TotalSale   float64      `json:"total_sale"`
	TotalProfit float64      `json:"total_profit"`
	ReceiptHTML string       `json:"receipt_html,omitempty"`
}

// CartView is the API shape of a cashier's cart.
type CartView struct {
	Lines       []model.CartLine `json:"lines"`
	TotalSale   float64          `json:"total_sale"`
	TotalProfit float64          `json:"total_profit"`
}

type CheckoutService interface {
	AddToCart(ownerID uuid.UUID, productID uuid.UUID, salePrice float64) (*CartView, error)
	RemoveFromCart(ownerID uuid.UUID, imei string) (*CartView, error)
	GetCart(ownerID uuid.UUID) (*CartView, error)
	Checkout(ownerID uuid.UUID, ownerName string) (*CheckoutResult, error)
	VoidSale(ownerID uuid.UUID, ownerName string, saleID uuid.UUID) error
	VoidSaleAndRestock(ownerID uuid.UUID, ownerName string, saleID uuid.UUID) error
}

type checkoutService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	hub         *ws.Hub
	branch      string

	cartsMu sync.Mutex
	carts   map[uuid.UUID]*model.Cart
}

func NewCheckoutService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub, branch string) CheckoutService {
	return &checkoutService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		db:          db,
		hub:         hub,
		branch:      branch,
		carts:       make(map[uuid.UUID]*model.Cart),
	}
}

// cart returns the session cart for one cashier, creating it on first use.
func (s *checkoutService) cart(ownerID uuid.UUID) *model.Cart {
	s.cartsMu.Lock()
	defer s.cartsMu.Unlock()

	c, ok := s.carts[ownerID]
	if !ok {
		c = &model.Cart{}
		s.carts[ownerID] = c
	}
	return c
}

func (s *checkoutService) view(c *model.Cart) *CartView {
	return &CartView{
		Lines:       c.Lines(),
		TotalSale:   c.TotalSale(),
		TotalProfit: c.TotalProfit(),
	}
}

func (s *checkoutService) AddToCart(ownerID uuid.UUID, productID uuid.UUID, salePrice float64) (*CartView, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}
	if salePrice <= 0 {
		return nil, model.NewValidationError("sale_price", "must be greater than zero")
	}

	product, err := s.productRepo.FindByID(ownerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, model.NewStoreError("add to cart", err)
	}
	if product.IMEI == "" {
		return nil, model.NewValidationError("imei", "placeholder rows cannot be sold")
	}

	c := s.cart(ownerID)
	if err := c.Add(model.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		IMEI:      product.IMEI,
		CostPrice: product.CostPrice,
		SalePrice: salePrice,
	}); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) RemoveFromCart(ownerID uuid.UUID, imei string) (*CartView, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}
	c := s.cart(ownerID)
	c.Remove(imei)
	return s.view(c), nil
}

func (s *checkoutService) GetCart(ownerID uuid.UUID) (*CartView, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}
	return s.view(s.cart(ownerID)), nil
}

// Checkout converts the cart into persisted sale records and removes the
// sold units from inventory as one transaction. The sale insert always
// runs before the product delete so a mid-transaction failure can only
// leave the less lossy partial state, and the surrounding transaction
// rolls even that back.
func (s *checkoutService) Checkout(ownerID uuid.UUID, ownerName string) (*CheckoutResult, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrAuthRequired
	}

	c := s.cart(ownerID)
	lines, err := c.BeginCheckout()
	if err != nil {
		return nil, err
	}
	defer c.EndCheckout()

	if len(lines) == 0 {
		return nil, model.NewValidationError("cart", "cart is empty")
	}
	for _, line := range lines {
		if line.SalePrice <= 0 {
			return nil, model.NewValidationError("sale_price", "must be greater than zero")
		}
	}

	soldAt := time.Now()
	sales := make([]model.Sale, len(lines))
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		sales[i] = model.Sale{
			ProductName: line.Name,
			IMEI:        line.IMEI,
			CostPrice:   line.CostPrice,
			SalePrice:   line.SalePrice,
			Profit:      line.Profit(),
			SoldAt:      soldAt,
			OwnerID:     ownerID,
		}
		sales[i].CreatedBy = ownerID.String()
		sales[i].UpdatedBy = ownerID.String()
		ids[i] = line.ProductID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock every unit first; a missing row means another session
		// sold or removed it since it entered the cart.
		for _, id := range ids {
			if _, err := s.productRepo.LockByID(tx, ownerID, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.NewConflictError("a device in the cart is no longer in stock")
				}
				return err
			}
		}

		if err := s.saleRepo.CreateAll(tx, sales); err != nil {
			return err
		}
		// A short delete count means a unit vanished between the lock
		// and the delete; roll the whole sale back.
		if err := s.productRepo.DeleteByIDs(tx, ownerID, ids); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.NewConflictError("a device in the cart is no longer in stock")
			}
			return err
		}
		return nil
	})
	if err != nil {
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, model.NewStoreError("checkout", err)
	}

	// Committed. The cart is done regardless of what happens below.
	c.Clear()

	result := &CheckoutResult{Sales: sales}
	receiptLines := make([]receipt.Line, len(sales))
	for i, sale := range sales {
		result.TotalSale += sale.SalePrice
		result.TotalProfit += sale.Profit
		receiptLines[i] = receipt.Line{
			Model:     sale.ProductName,
			IMEI:      sale.IMEI,
			SalePrice: sale.SalePrice,
			Date:      sale.SoldAt.Format("2006-01-02 15:04:05"),
		}
	}

	go s.hub.Publish(ws.SaleEvent("checkout_completed", map[string]interface{}{
		"units":        len(sales),
		"total_sale":   result.TotalSale,
		"total_profit": result.TotalProfit,
	}, ownerName))

	// Receipt failures must not surface as checkout failures; the sale
	// has already committed.
	if html, err := receipt.Render(s.branch, receiptLines); err != nil {
		log.Printf("receipt render failed after checkout: %v", err)
	} else {
		result.ReceiptHTML = string(html)
	}

	return result, nil
}

// VoidSale permanently removes a sale record. It does not restore the unit
// to inventory; a void is a bookkeeping correction only.
func (s *checkoutService) VoidSale(ownerID uuid.UUID, ownerName string, saleID uuid.UUID) error {
	return s.voidSale(ownerID, ownerName, saleID, false)
}

// VoidSaleAndRestock removes the sale record and re-creates the inventory
// row from its denormalized fields, in the same transaction.
func (s *checkoutService) VoidSaleAndRestock(ownerID uuid.UUID, ownerName string, saleID uuid.UUID) error {
	return s.voidSale(ownerID, ownerName, saleID, true)
}

func (s *checkoutService) voidSale(ownerID uuid.UUID, ownerName string, saleID uuid.UUID, restock bool) error {
	if ownerID == uuid.Nil {
		return model.ErrAuthRequired
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.LockByID(tx, ownerID, saleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		if err := s.saleRepo.Delete(tx, ownerID, saleID); err != nil {
			// A concurrent void can win between the lock and the
			// delete on stores without row locking.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		if restock {
			product := &model.Product{
				Name:      sale.ProductName,
				IMEI:      sale.IMEI,
				CostPrice: sale.CostPrice,
				OwnerID:   ownerID,
			}
			product.CreatedBy = ownerID.String()
			product.UpdatedBy = ownerID.String()
			if err := tx.Create(product).Error; err != nil {
				if isDuplicateKey(err) {
					return model.NewConflictError("a device with this IMEI is already back in stock")
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			return err
		}
		return model.NewStoreError("void sale", err)
	}

	action := "sale_voided"
	if restock {
		action = "sale_voided_restocked"
	}
	go s.hub.Publish(ws.SaleEvent(action, map[string]interface{}{
		"sale_id": saleID,
	}, ownerName))

	return nil
}
