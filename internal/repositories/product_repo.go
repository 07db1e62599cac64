package repositories

import "inventori/internal/models"

// SortOrder direction for product listings.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListOptions captures filtering, sorting and paging for product listings.
// Page and Limit are assumed pre-clamped by the validation layer.
type ListOptions struct {
	Search    string // case-insensitive substring over name, sku, description
	Type      string // exact match
	SortBy    string // one of the allow-listed API field names
	SortOrder string // "asc" or anything else for descending
	Page      int
	Limit     int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	List(opts ListOptions) ([]models.Product, int64, error)
	Update(product *models.Product) error
	UpdateQuantity(id string, quantity int) (*models.Product, error)
	Delete(id string) error
	Analytics() (*models.Analytics, error)
}
