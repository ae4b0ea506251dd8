package service

import (
	"testing"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type categoryFixture struct {
	db      *gorm.DB
	service CategoryService
	user    *model.User
}

func newCategoryFixture(t *testing.T) *categoryFixture {
	t.Helper()

	db := setupTestDB(t)
	audit := NewAuditService(repository.NewAuditLogRepo(db))
	svc := NewCategoryService(
		repository.NewCategoryRepo(db),
		repository.NewProductRepo(db),
		audit,
	)
	return &categoryFixture{
		db:      db,
		service: svc,
		user:    seedTestUser(t, db, model.RoleAdmin),
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	f := newCategoryFixture(t)

	_, err := f.service.CreateCategory("Beverages", f.user.ID)
	require.NoError(t, err)

	_, err = f.service.CreateCategory("Beverages", f.user.ID)
	assert.ErrorIs(t, err, ErrCategoryNameUsed)
}

func TestUpdateCategory(t *testing.T) {
	f := newCategoryFixture(t)

	category, err := f.service.CreateCategory("Beverages", f.user.ID)
	require.NoError(t, err)
	_, err = f.service.CreateCategory("Snacks", f.user.ID)
	require.NoError(t, err)

	// Renaming onto another category's name is refused.
	_, err = f.service.UpdateCategory(category.ID, "Snacks", f.user.ID)
	assert.ErrorIs(t, err, ErrCategoryNameUsed)

	// Saving a category under its own name is a no-op rename.
	updated, err := f.service.UpdateCategory(category.ID, "Beverages", f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", updated.Name)

	updated, err = f.service.UpdateCategory(category.ID, "Drinks", f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", updated.Name)

	_, err = f.service.UpdateCategory(uuid.New(), "Ghost", f.user.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	f := newCategoryFixture(t)

	category, err := f.service.CreateCategory("Beverages", f.user.ID)
	require.NoError(t, err)

	product := &model.Product{
		Name:       "Cola",
		SKU:        "COLA-1",
		CategoryID: &category.ID,
		Price:      decimal.NewFromInt(5),
		CostPrice:  decimal.NewFromInt(2),
		Quantity:   10,
		MinStock:   5,
	}
	require.NoError(t, f.db.Create(product).Error)

	err = f.service.DeleteCategory(category.ID, f.user.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	require.NoError(t, f.db.Delete(product).Error)
	require.NoError(t, f.service.DeleteCategory(category.ID, f.user.ID))

	err = f.service.DeleteCategory(category.ID, f.user.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListCategoriesIncludesProductCount(t *testing.T) {
	f := newCategoryFixture(t)

	category, err := f.service.CreateCategory("Beverages", f.user.ID)
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&model.Product{
		Name: "Cola", SKU: "COLA-1", CategoryID: &category.ID,
	}).Error)
	require.NoError(t, f.db.Create(&model.Product{
		Name: "Soda", SKU: "SODA-1", CategoryID: &category.ID,
	}).Error)

	categories, err := f.service.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(2), categories[0].ProductCount)
}
