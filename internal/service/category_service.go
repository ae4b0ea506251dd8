package service

import (
	"errors"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNameUsed = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("cannot delete category with associated products")
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	CreateCategory(name string, userID uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, name string, userID uuid.UUID) (*model.Category, error)
	DeleteCategory(id uuid.UUID, userID uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	audit        AuditLogger
}

func NewCategoryService(cRepo repository.CategoryRepository, pRepo repository.ProductRepository, audit AuditLogger) CategoryService {
	return &categoryService{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		audit:        audit,
	}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) CreateCategory(name string, userID uuid.UUID) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameUsed
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.audit.LogAction(userID, "CREATE", "CATEGORY", category.ID.String(), map[string]interface{}{
		"name": name,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uuid.UUID, name string, userID uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	existing, err := s.categoryRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrCategoryNameUsed
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	s.audit.LogAction(userID, "UPDATE", "CATEGORY", id.String(), map[string]interface{}{
		"name": name,
	})
	return category, nil
}

// DeleteCategory removes the category only when no product references it.
func (s *categoryService) DeleteCategory(id uuid.UUID, userID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogAction(userID, "DELETE", "CATEGORY", id.String(), map[string]interface{}{
		"name": category.Name,
	})
	return nil
}
