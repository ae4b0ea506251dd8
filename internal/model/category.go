package model

// Category groups products for filtering and reporting. Deleting a
// category is blocked while any product still references it.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`

	Products []Product `json:"products,omitempty"`

	// Filled by list queries, not persisted.
	ProductCount int64 `gorm:"-" json:"product_count"`
}
