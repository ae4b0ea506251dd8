package repository

import (
	"strings"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductListOptions are the query-string filters of GET /products.
type ProductListOptions struct {
	Page      int
	Limit     int
	Search    string
	Category  string // category id
	Status    string // low_stock | out_of_stock
	SortBy    string
	SortOrder string
}

type ProductRepository interface {
	Create(product *model.Product) error
	List(opts ProductListOptions) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	// SKUTakenByOther reports whether sku belongs to a product other than id.
	SKUTakenByOther(sku string, id uuid.UUID) (bool, error)
	// Save persists the full row inside the given transaction handle so the
	// caller can pair it with a ledger insert atomically.
	Save(tx *gorm.DB, product *model.Product) error
	Delete(id uuid.UUID) error

	CountAll() (int64, error)
	SumQuantity() (int64, error)
	CountLowStock() (int64, error)
	CountOutOfStock() (int64, error)
	FindRecent(limit int) ([]model.Product, error)
	FindLowStock(limit int) ([]model.Product, error)
	CountByCategory(categoryID uuid.UUID) (int64, error)
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

// Allowed sort columns. Anything else falls back to created_at.
var productSortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

func (r *productRepo) List(opts ProductListOptions) ([]model.Product, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	query := r.db.Model(&model.Product{})

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if opts.Category != "" {
		query = query.Where("category_id = ?", opts.Category)
	}
	switch opts.Status {
	case model.StatusLowStock:
		query = query.Where("quantity <= min_stock AND quantity > 0")
	case model.StatusOutOfStock:
		query = query.Where("quantity = 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := productSortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		direction = "ASC"
	}

	var products []model.Product
	err := query.
		Preload("Category").
		Order(column + " " + direction).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) SKUTakenByOther(sku string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("sku = ? AND id <> ?", sku, id).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) SumQuantity() (int64, error) {
	var total int64
	err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("quantity <= min_stock AND quantity > 0").
		Count(&count).Error
	return count, err
}

func (r *productRepo) CountOutOfStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("quantity = 0").
		Count(&count).Error
	return count, err
}

func (r *productRepo) FindRecent(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("quantity <= min_stock").
		Order("quantity ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
