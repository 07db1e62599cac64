package handlers

import (
	"errors"
	"log"
	"math"

	"inventori/internal/middleware"
	"inventori/internal/models"
	"inventori/internal/repositories"
	"inventori/internal/services"
	"inventori/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes behind the auth middleware.
// /analytics must be registered before /:id so it is not swallowed by the
// parameter route.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products", authRequired)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/analytics", h.HandleAnalytics)
	productRoutes.Get("/:id", h.HandleGetByID)
	productRoutes.Put("/:id/quantity", h.HandleUpdateQuantity)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// isValidID reports whether the path id is a well-formed product key.
func isValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// CreateProductRequest represents the request body for creating a product.
// Quantity and price are pointers so that an absent field is reported as
// missing instead of defaulting to zero.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	SKU         string   `json:"sku"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

// HandleCreate adds a new product owned by the authenticated user.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	data := validation.ProductData{
		Name:        validation.SanitizeInput(req.Name),
		Type:        validation.SanitizeInput(req.Type),
		SKU:         validation.SanitizeInput(req.SKU),
		ImageURL:    validation.SanitizeInput(req.ImageURL),
		Description: validation.SanitizeInput(req.Description),
		Quantity:    req.Quantity,
		Price:       req.Price,
	}

	if result := validation.ValidateProductData(data); !result.IsValid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  result.Errors,
		})
	}

	user := middleware.CurrentUser(c)
	product := &models.Product{
		Name:        data.Name,
		Type:        data.Type,
		SKU:         data.SKU,
		ImageURL:    data.ImageURL,
		Description: data.Description,
		Quantity:    *data.Quantity,
		Price:       *data.Price,
		CreatedBy:   user.ID,
	}

	if err := h.service.CreateProduct(product); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSKUTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "SKU already exists",
			})
		case errors.Is(err, models.ErrSchemaValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  []string{err.Error()},
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while adding product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Product added successfully",
		"product_id": product.ID,
		"product":    product,
	})
}

// HandleList returns a filtered, sorted page of products plus pagination
// metadata computed from a count under the same filter.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, limit := validation.ValidatePaginationParams(c.Query("page"), c.Query("limit"))

	opts := repositories.ListOptions{
		Search:    validation.SanitizeInput(c.Query("search")),
		Type:      validation.SanitizeInput(c.Query("type")),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	products, total, err := h.service.ListProducts(opts)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while fetching products",
		})
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": products,
		"pagination": fiber.Map{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalItems":   total,
			"itemsPerPage": limit,
			"hasNextPage":  page < totalPages,
			"hasPrevPage":  page > 1,
		},
	})
}

// HandleAnalytics returns the aggregate inventory report.
func (h *ProductHandler) HandleAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.GetAnalytics()
	if err != nil {
		log.Printf("Error fetching analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while fetching analytics",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"analytics": analytics,
	})
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isValidID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID format",
		})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while fetching product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// QuantityUpdateRequest represents the request body for a quantity update.
type QuantityUpdateRequest struct {
	Quantity *int `json:"quantity"`
}

// HandleUpdateQuantity sets the quantity of a product.
func (h *ProductHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isValidID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID format",
		})
	}

	var req QuantityUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if ok, msg := validation.ValidateQuantityUpdate(req.Quantity); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": msg,
		})
	}

	product, err := h.service.UpdateProductQuantity(id, *req.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		log.Printf("Error updating quantity for product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while updating quantity",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Product quantity updated successfully",
		"product": fiber.Map{
			"id":        product.ID,
			"name":      product.Name,
			"sku":       product.SKU,
			"quantity":  product.Quantity,
			"updatedAt": product.UpdatedAt,
		},
	})
}

// HandleUpdate applies a partial update to a product. Identity, ownership and
// creation timestamp are not part of the update type, so they cannot change.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isValidID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID format",
		})
	}

	var update services.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	product, err := h.service.UpdateProduct(id, update)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		case errors.Is(err, repositories.ErrSKUTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "SKU already exists",
			})
		case errors.Is(err, models.ErrSchemaValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  []string{err.Error()},
			})
		}
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while updating product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isValidID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID format",
		})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error while deleting product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
