package service

import (
	"errors"
	"fmt"

	"go-inventory-pos/internal/metrics"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/notify"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUConflict     = errors.New("SKU already exists")
)

// CreateProductRequest is the payload of POST /products and each row of
// the batch import.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required"`
	SKU        string          `json:"sku" validate:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	Quantity   int             `json:"quantity" validate:"gte=0"`
	MinStock   *int            `json:"min_stock"`
}

// UpdateProductRequest is the partial payload of PATCH /products/:id.
// Nil fields are left untouched. Reason hints how a quantity decrease
// should be booked; Note is carried into the audit record.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	SKU        *string          `json:"sku"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Price      *decimal.Decimal `json:"price"`
	CostPrice  *decimal.Decimal `json:"cost_price"`
	Quantity   *int             `json:"quantity" validate:"omitempty,gte=0"`
	MinStock   *int             `json:"min_stock" validate:"omitempty,gte=0"`
	Reason     string           `json:"reason"`
	Note       string           `json:"note"`
}

type InventoryService interface {
	CreateProduct(req *CreateProductRequest, userID uuid.UUID) (*model.Product, error)
	BatchImport(rows []CreateProductRequest, userID uuid.UUID) (int, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, userID uuid.UUID) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(opts repository.ProductListOptions) ([]model.Product, int64, error)
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	audit           AuditLogger
	notifier        notify.Notifier
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	tRepo repository.TransactionRepository,
	db *gorm.DB,
	audit AuditLogger,
	notifier notify.Notifier,
) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		audit:           audit,
		notifier:        notifier,
	}
}

func (s *inventoryService) CreateProduct(req *CreateProductRequest, userID uuid.UUID) (*model.Product, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindBySKU(req.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUConflict
	}

	product := &model.Product{
		Name:       req.Name,
		SKU:        req.SKU,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		CostPrice:  req.CostPrice,
		Quantity:   req.Quantity,
		MinStock:   10,
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	product.Status = product.StockStatus()

	s.audit.LogAction(userID, "CREATE", "PRODUCT", product.ID.String(), map[string]interface{}{
		"name": product.Name,
		"sku":  product.SKU,
	})
	metrics.RecordProductOperation("create")

	return product, nil
}

func (s *inventoryService) BatchImport(rows []CreateProductRequest, userID uuid.UUID) (int, error) {
	imported := 0
	for i := range rows {
		row := rows[i]
		if err := validator.Struct(&row); err != nil {
			continue // skip invalid rows
		}
		existing, err := s.productRepo.FindBySKU(row.SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return imported, err
		}
		if existing != nil {
			continue // skip duplicate SKUs
		}

		product := &model.Product{
			Name:       row.Name,
			SKU:        row.SKU,
			CategoryID: row.CategoryID,
			Price:      row.Price,
			CostPrice:  row.CostPrice,
			Quantity:   row.Quantity,
			MinStock:   10,
		}
		if row.MinStock != nil {
			product.MinStock = *row.MinStock
		}
		if err := s.productRepo.Create(product); err != nil {
			return imported, err
		}
		imported++
	}

	if imported > 0 {
		s.audit.LogAction(userID, "BATCH_CREATE", "PRODUCT", "", map[string]interface{}{
			"count": imported,
		})
		metrics.RecordProductOperation("batch_create")
	}
	return imported, nil
}

// UpdateProduct applies a partial edit and keeps the ledger consistent:
// when the quantity changes, the derived movement row is inserted in the
// same database transaction as the product write, so both persist or
// neither does. Snapshots are taken from the updated row.
func (s *inventoryService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, userID uuid.UUID) (*model.Product, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var updated *model.Product
	var movement Movement
	var moved bool
	changes := map[string]interface{}{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if req.SKU != nil && *req.SKU != existing.SKU {
			taken, err := s.productRepo.SKUTakenByOther(*req.SKU, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrSKUConflict
			}
			changes["sku"] = changePair(existing.SKU, *req.SKU)
			existing.SKU = *req.SKU
		}
		if req.Name != nil && *req.Name != existing.Name {
			changes["name"] = changePair(existing.Name, *req.Name)
			existing.Name = *req.Name
		}
		if req.CategoryID != nil && (existing.CategoryID == nil || *existing.CategoryID != *req.CategoryID) {
			oldID := ""
			if existing.CategoryID != nil {
				oldID = existing.CategoryID.String()
			}
			changes["category_id"] = changePair(oldID, req.CategoryID.String())
			existing.CategoryID = req.CategoryID
			existing.Category = nil
		}
		if req.Price != nil && !req.Price.Equal(existing.Price) {
			changes["price"] = changePair(existing.Price, *req.Price)
			existing.Price = *req.Price
		}
		if req.CostPrice != nil && !req.CostPrice.Equal(existing.CostPrice) {
			changes["cost_price"] = changePair(existing.CostPrice, *req.CostPrice)
			existing.CostPrice = *req.CostPrice
		}
		if req.MinStock != nil && *req.MinStock != existing.MinStock {
			changes["min_stock"] = changePair(existing.MinStock, *req.MinStock)
			existing.MinStock = *req.MinStock
		}
		if req.Quantity != nil {
			movement, moved = DeriveMovement(existing.Quantity, *req.Quantity, req.Reason)
			if moved {
				changes["quantity"] = changePair(existing.Quantity, *req.Quantity)
				existing.Quantity = *req.Quantity
			}
		}

		if err := s.productRepo.Save(tx, &existing); err != nil {
			return err
		}

		if moved {
			// Snapshots come from the updated row so the ledger reflects the
			// prices in effect at the moment of the movement.
			entry := &model.Transaction{
				ProductID:     existing.ID,
				Type:          movement.Type,
				Quantity:      movement.Quantity,
				PriceSnapshot: existing.Price,
				CostSnapshot:  existing.CostPrice,
			}
			// Ledger rows are append-only; a malformed one is a bug, so it
			// aborts the whole transaction rather than persisting.
			if err := validator.Struct(entry); err != nil {
				return err
			}
			if err := s.transactionRepo.CreateTx(tx, entry); err != nil {
				return err
			}
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.Status = updated.StockStatus()

	s.audit.LogAction(userID, "UPDATE", "PRODUCT", id.String(), map[string]interface{}{
		"product_name": updated.Name,
		"updates":      changes,
		"note":         req.Note,
	})
	metrics.RecordProductOperation("update")
	if moved {
		metrics.RecordStockMovement(string(movement.Type))
	}

	// Best effort, off the request path. A dropped alert never fails the
	// update.
	if updated.IsLowStock() {
		metrics.LowStockAlertsTotal.Inc()
		s.notifier.Notify(notify.Alert{
			Kind:        "low_stock",
			ProductID:   updated.ID.String(),
			ProductName: updated.Name,
			SKU:         updated.SKU,
			Quantity:    updated.Quantity,
			MinStock:    updated.MinStock,
			Message: fmt.Sprintf("Low stock: '%s' (%s) is down to %d (min %d)",
				updated.Name, updated.SKU, updated.Quantity, updated.MinStock),
		})
	} else if moved {
		s.notifier.Notify(notify.Alert{
			Kind:        "stock_update",
			ProductID:   updated.ID.String(),
			ProductName: updated.Name,
			SKU:         updated.SKU,
			Quantity:    updated.Quantity,
			MinStock:    updated.MinStock,
			Message: fmt.Sprintf("Stock of '%s' (%s) changed to %d",
				updated.Name, updated.SKU, updated.Quantity),
		})
	}

	return updated, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID, userID uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogAction(userID, "DELETE", "PRODUCT", id.String(), map[string]interface{}{
		"name": product.Name,
		"sku":  product.SKU,
	})
	metrics.RecordProductOperation("delete")
	return nil
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) ListProducts(opts repository.ProductListOptions) ([]model.Product, int64, error) {
	return s.productRepo.List(opts)
}

func changePair(oldValue, newValue interface{}) map[string]interface{} {
	return map[string]interface{}{"old": oldValue, "new": newValue}
}
