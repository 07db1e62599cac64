package services

import (
	"log"

	"inventori/internal/models"
	"inventori/internal/repositories"
	"inventori/internal/validation"
	"inventori/pkg/rabbitmq"
)

// ProductUpdate is the partial-field update accepted by UpdateProduct. Nil
// fields are left untouched. Identity, ownership and the creation timestamp
// are not represented here, so they cannot be mutated through this path.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	SKU         *string  `json:"sku"`
	ImageURL    *string  `json:"image_url"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client // nil disables event publishing
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// publishEvent sends an inventory event, best effort. Publishing failures are
// logged and never fail the request.
func (s *ProductService) publishEvent(eventType string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	event := map[string]interface{}{
		"event":      eventType,
		"product_id": product.ID,
		"sku":        product.SKU,
		"quantity":   product.Quantity,
		"low_stock":  product.Quantity < models.LowStockThreshold,
	}
	if err := s.mqClient.Publish(event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", eventType, product.ID, err)
	}
}

// CreateProduct persists a new product. SKU uniqueness is decided by the
// storage constraint; a losing concurrent insert surfaces as
// repositories.ErrSKUTaken.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent("product.created", product)
	return nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListProducts returns a page of products plus the total count under the same
// filter.
func (s *ProductService) ListProducts(opts repositories.ListOptions) ([]models.Product, int64, error) {
	return s.repo.List(opts)
}

// UpdateProduct applies a partial update to an existing product. String
// fields are sanitized here; the storage-level hook re-validates the final
// record and the unique constraint guards the SKU.
func (s *ProductService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = validation.SanitizeInput(*update.Name)
	}
	if update.Type != nil {
		product.Type = validation.SanitizeInput(*update.Type)
	}
	if update.SKU != nil {
		product.SKU = validation.SanitizeInput(*update.SKU)
	}
	if update.ImageURL != nil {
		product.ImageURL = validation.SanitizeInput(*update.ImageURL)
	}
	if update.Description != nil {
		product.Description = validation.SanitizeInput(*update.Description)
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.Price != nil {
		product.Price = *update.Price
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", product)
	return product, nil
}

// UpdateProductQuantity sets the quantity of a product and returns the
// updated record.
func (s *ProductService) UpdateProductQuantity(id string, quantity int) (*models.Product, error) {
	product, err := s.repo.UpdateQuantity(id, quantity)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.quantity_updated", product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", product)
	return nil
}

// GetAnalytics returns the aggregate inventory report.
func (s *ProductService) GetAnalytics() (*models.Analytics, error) {
	return s.repo.Analytics()
}
