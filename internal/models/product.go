package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// LowStockThreshold is the quantity below which a product counts as low
// stock, both in analytics and in published inventory events.
const LowStockThreshold = 10

// ErrSchemaValidation is returned by the BeforeSave hook when a product
// violates a storage-level constraint. Application-level validation should
// catch these first; the hook is the safety net at the storage boundary.
var ErrSchemaValidation = errors.New("product schema validation failed")

// Product represents an inventory record owned by the user who created it.
type Product struct {
	ID          string    `json:"product_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;index" validate:"required,max=100"`
	Type        string    `json:"type" gorm:"type:varchar(50);not null;index" validate:"required,max=50"`
	SKU         string    `json:"sku" gorm:"uniqueIndex;type:varchar(20);not null" validate:"required,max=20"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(1000)" validate:"omitempty,startswith=http"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Quantity    int       `json:"quantity" gorm:"not null;check:quantity >= 0" validate:"gte=0"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0" validate:"gte=0"`
	CreatedBy   string    `json:"createdBy" gorm:"type:varchar(36);not null;index"` // User.ID, immutable after creation
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeSave normalizes the SKU and re-checks the schema constraints that the
// store itself cannot fully express. Mirrors the application validators so a
// record that slips past them still cannot be persisted in a bad state.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))

	switch {
	case p.Name == "" || len(p.Name) > 100:
		return fmt.Errorf("%w: name must be 1-100 characters", ErrSchemaValidation)
	case p.Type == "" || len(p.Type) > 50:
		return fmt.Errorf("%w: type must be 1-50 characters", ErrSchemaValidation)
	case p.SKU == "" || len(p.SKU) > 20:
		return fmt.Errorf("%w: sku must be 1-20 characters", ErrSchemaValidation)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", ErrSchemaValidation)
	case p.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrSchemaValidation)
	case len(p.Description) > 500:
		return fmt.Errorf("%w: description cannot exceed 500 characters", ErrSchemaValidation)
	case p.ImageURL != "" && !strings.HasPrefix(p.ImageURL, "http://") && !strings.HasPrefix(p.ImageURL, "https://"):
		return fmt.Errorf("%w: image_url must be an http(s) URL", ErrSchemaValidation)
	case p.CreatedBy == "":
		return fmt.Errorf("%w: createdBy is required", ErrSchemaValidation)
	}
	return nil
}

// ProductSummary is the projection returned by the analytics endpoint for the
// most recently created products.
type ProductSummary struct {
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// TypeStats aggregates products sharing a type.
type TypeStats struct {
	Type          string  `json:"type"`
	Count         int64   `json:"count"`
	TotalQuantity int64   `json:"totalQuantity"`
	AvgPrice      float64 `json:"avgPrice"`
}

// Analytics is the aggregate inventory report.
type Analytics struct {
	TotalProducts      int64            `json:"totalProducts"`
	LowStockProducts   int64            `json:"lowStockProducts"`
	MostRecentProducts []ProductSummary `json:"mostRecentProducts"`
	ProductsByType     []TypeStats      `json:"productsByType"`
}
