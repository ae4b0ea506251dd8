package repository

import (
	"time"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	// CreateTx inserts a ledger row inside the caller's transaction handle.
	CreateTx(tx *gorm.DB, t *model.Transaction) error
	// FindOutInRange returns OUT movements with start <= created_at <= end,
	// optionally restricted to products of one category. Product and its
	// category are preloaded for the aggregation layer.
	FindOutInRange(start, end time.Time, categoryID *uuid.UUID) ([]model.Transaction, error)
	// AllTimeRevenueCost sums price and cost snapshots over every OUT row.
	AllTimeRevenueCost() (revenue, cost decimal.Decimal, err error)
	FindOutSince(since time.Time) ([]model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.Transaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) FindOutInRange(start, end time.Time, categoryID *uuid.UUID) ([]model.Transaction, error) {
	query := r.db.Model(&model.Transaction{}).
		Preload("Product").
		Preload("Product.Category").
		Where("type = ?", model.TxOut).
		Where("created_at >= ? AND created_at <= ?", start, end)

	if categoryID != nil {
		query = query.
			Joins("JOIN products ON products.id = transactions.product_id").
			Where("products.category_id = ?", *categoryID)
	}

	var transactions []model.Transaction
	err := query.Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) AllTimeRevenueCost() (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
		Cost    decimal.Decimal
	}
	err := r.db.Model(&model.Transaction{}).
		Select(`
			COALESCE(SUM(price_snapshot * quantity), 0) as revenue,
			COALESCE(SUM(cost_snapshot * quantity), 0) as cost
		`).
		Where("type = ?", model.TxOut).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Revenue, row.Cost, nil
}

func (r *transactionRepo) FindOutSince(since time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Where("type = ? AND created_at >= ?", model.TxOut, since).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}
