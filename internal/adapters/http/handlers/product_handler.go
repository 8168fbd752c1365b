package handlers

import (
	"errors"

	"shoplite-catalog/internal/adapters/http/middleware"
	"shoplite-catalog/internal/core/domain"
	"shoplite-catalog/internal/core/services"
	"shoplite-catalog/internal/pkg/pagination"
	"shoplite-catalog/internal/pkg/response"
	"shoplite-catalog/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts lists active, in-stock products
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/all_products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.productService.ListActive(c.Context(), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.NotFound(c, "There are no products")
		}
		return response.InternalServerError(c, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully",
		pagination.NewResponse(result.Products, params, result.Total))
}

// ProductsByCategory lists products of a category and its subcategories
// @Summary Products by category
// @Tags Products
// @Produce json
// @Param category_slug path string true "Category slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/category/{category_slug} [get]
func (h *ProductHandler) ProductsByCategory(c *fiber.Ctx) error {
	categorySlug := c.Params("category_slug")

	products, err := h.productService.ListByCategorySlug(c.Context(), categorySlug)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully", fiber.Map{
		"products": products,
	})
}

// ProductDetail gets an active product by slug
// @Summary Product detail
// @Tags Products
// @Produce json
// @Param product_slug path string true "Product slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/detail/{product_slug} [get]
func (h *ProductHandler) ProductDetail(c *fiber.Ctx) error {
	productSlug := c.Params("product_slug")

	product, err := h.productService.GetBySlug(c.Context(), productSlug)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.NotFound(c, "There is no product found")
		}
		return response.InternalServerError(c, "Failed to get product")
	}

	return response.Success(c, "Product retrieved successfully", fiber.Map{
		"product": product,
	})
}

// CreateProduct creates a product (admin or supplier)
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProductInput true "Product data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /products/create_product [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Could not validate user")
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	product, err := h.productService.Create(c.Context(), principal, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You are not authorized to use this method")
		case errors.Is(err, domain.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		default:
			return response.InternalServerError(c, "Failed to create product")
		}
	}

	return response.Created(c, "Product created successfully", fiber.Map{
		"product": product,
	})
}

// UpdateProduct updates a product (admin or owning supplier)
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product_slug path string true "Product slug"
// @Param body body services.ProductInput true "Product data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/detail_update/{product_slug} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Could not validate user")
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	product, err := h.productService.Update(c.Context(), principal, c.Params("product_slug"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You are not authorized to use this method")
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "There is no product found")
		default:
			return response.InternalServerError(c, "Failed to update product")
		}
	}

	return response.Success(c, "Product update is successful", fiber.Map{
		"product": product,
	})
}

// DeleteProduct deletes a product (admin or owning supplier)
// @Summary Delete product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param product_id query int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/delete_product [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Could not validate user")
	}

	id := c.QueryInt("product_id")
	if id < 1 {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(c.Context(), principal, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You are not authorized to use this method")
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "There is no product found")
		default:
			return response.InternalServerError(c, "Failed to delete product")
		}
	}

	return response.Success(c, "Product delete is successful", nil)
}
