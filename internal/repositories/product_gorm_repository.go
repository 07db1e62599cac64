package repositories

import (
	"errors"
	"fmt"
	"strings"

	"inventori/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedSortFields maps API sort field names onto columns. Anything outside
// this map falls back to created_at.
var allowedSortFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"quantity":  "quantity",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// likeEscaper neutralizes LIKE metacharacters so a search term such as "100%"
// matches the literal text instead of acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product. The unique index on sku makes concurrent
// duplicate inserts lose with ErrSKUTaken; the BeforeSave hook on the model
// keeps schema-invalid records out even when application validation missed.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("sku %q: %w", product.SKU, ErrSKUTaken)
		}
		if errors.Is(err, models.ErrSchemaValidation) {
			return err
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("id %q: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %q: %w", id, err)
	}
	return &product, nil
}

// filtered returns a fresh query with the list filter applied. Count and the
// page read run this separately, so they may observe different snapshots
// under concurrent writes; that relaxation is accepted.
func (r *GORMProductRepository) filtered(opts ListOptions) *gorm.DB {
	q := r.db.Model(&models.Product{})
	if opts.Search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(opts.Search)) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like, like)
	}
	if opts.Type != "" {
		q = q.Where("type = ?", opts.Type)
	}
	return q
}

// List returns one page of products plus the total count under the same
// filter.
func (r *GORMProductRepository) List(opts ListOptions) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(opts).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	column, ok := allowedSortFields[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if opts.SortOrder == SortAsc {
		direction = "ASC"
	}

	products := []models.Product{}
	err := r.filtered(opts).
		Order(column + " " + direction).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// Update persists a modified product. Save writes all fields, so callers must
// load the record first and only change what the API allows.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("sku %q: %w", product.SKU, ErrSKUTaken)
		}
		if errors.Is(res.Error, models.ErrSchemaValidation) {
			return res.Error
		}
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("id %q: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// UpdateQuantity sets the quantity of a product and returns the updated
// record.
func (r *GORMProductRepository) UpdateQuantity(id string, quantity int) (*models.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Quantity = quantity
	if err := r.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("id %q: %w", id, ErrProductNotFound)
	}
	return nil
}

// Analytics aggregates the inventory: totals, low-stock count, the five most
// recent products and per-type statistics ordered by product count.
func (r *GORMProductRepository) Analytics() (*models.Analytics, error) {
	analytics := &models.Analytics{
		MostRecentProducts: []models.ProductSummary{},
		ProductsByType:     []models.TypeStats{},
	}

	if err := r.db.Model(&models.Product{}).Count(&analytics.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := r.db.Model(&models.Product{}).
		Where("quantity < ?", models.LowStockThreshold).
		Count(&analytics.LowStockProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}
	if err := r.db.Model(&models.Product{}).
		Select("name, sku, quantity, created_at").
		Order("created_at DESC").
		Limit(5).
		Scan(&analytics.MostRecentProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent products: %w", err)
	}
	if err := r.db.Model(&models.Product{}).
		Select("type, COUNT(*) AS count, SUM(quantity) AS total_quantity, AVG(price) AS avg_price").
		Group("type").
		Order("count DESC").
		Scan(&analytics.ProductsByType).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate products by type: %w", err)
	}
	return analytics, nil
}
