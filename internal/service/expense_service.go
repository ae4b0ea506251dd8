package service

import (
	"errors"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrExpenseNotFound = errors.New("expense not found")

type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        *time.Time      `json:"date"`
}

type ExpenseService interface {
	ListExpenses(opts repository.ExpenseListOptions) ([]model.Expense, int64, error)
	CreateExpense(req *CreateExpenseRequest, userID uuid.UUID) (*model.Expense, error)
	DeleteExpense(id uuid.UUID, userID uuid.UUID) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	audit       AuditLogger
}

func NewExpenseService(repo repository.ExpenseRepository, audit AuditLogger) ExpenseService {
	return &expenseService{expenseRepo: repo, audit: audit}
}

func (s *expenseService) ListExpenses(opts repository.ExpenseListOptions) ([]model.Expense, int64, error) {
	return s.expenseRepo.List(opts)
}

func (s *expenseService) CreateExpense(req *CreateExpenseRequest, userID uuid.UUID) (*model.Expense, error) {
	if err := validator.Struct(req); err != nil {
		return nil, errors.New("description is required")
	}
	if req.Amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	expense := &model.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        time.Now(),
	}
	if expense.Type == "" {
		expense.Type = model.DefaultExpenseType
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.audit.LogAction(userID, "CREATE", "EXPENSE", expense.ID.String(), map[string]interface{}{
		"description": expense.Description,
		"amount":      expense.Amount,
		"type":        expense.Type,
	})
	return expense, nil
}

func (s *expenseService) DeleteExpense(id uuid.UUID, userID uuid.UUID) error {
	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}

	if err := s.expenseRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogAction(userID, "DELETE", "EXPENSE", id.String(), map[string]interface{}{
		"description": expense.Description,
	})
	return nil
}
