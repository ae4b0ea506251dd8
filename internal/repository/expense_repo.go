package repository

import (
	"time"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseListOptions are the query-string filters of GET /expenses.
type ExpenseListOptions struct {
	Page  int
	Limit int
	Start *time.Time
	End   *time.Time
}

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	List(opts ExpenseListOptions) ([]model.Expense, int64, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	FindInRange(start, end time.Time) ([]model.Expense, error)
	Delete(id uuid.UUID) error
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) List(opts ExpenseListOptions) ([]model.Expense, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	query := r.db.Model(&model.Expense{})
	if opts.Start != nil && opts.End != nil {
		query = query.Where("date >= ? AND date <= ?", *opts.Start, *opts.End)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []model.Expense
	err := query.
		Order("date DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepo) FindInRange(start, end time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.
		Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Expense{}, "id = ?", id).Error
}
