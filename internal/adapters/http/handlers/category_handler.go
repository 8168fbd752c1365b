package handlers

import (
	"errors"

	"shoplite-catalog/internal/core/domain"
	"shoplite-catalog/internal/core/services"
	"shoplite-catalog/internal/pkg/response"
	"shoplite-catalog/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories lists all active categories
// @Summary List categories
// @Tags Category
// @Produce json
// @Success 200 {object} response.Response
// @Router /category/categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully", fiber.Map{
		"categories": categories,
	})
}

// GetCategory gets a category by ID
// @Summary Get category
// @Tags Category
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /category/category/{id} [get]
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid category ID")
	}

	category, err := h.categoryService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to get category")
	}

	return response.Success(c, "Category retrieved successfully", fiber.Map{
		"category": category,
	})
}

// CreateCategory creates a category (admin only)
// @Summary Create category
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CategoryInput true "Category data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /category/create_category [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	category, err := h.categoryService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Parent category not found")
		}
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, "Category created successfully", fiber.Map{
		"category": category,
	})
}

// UpdateCategory updates a category (admin only)
// @Summary Update category
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category_id query int true "Category ID"
// @Param body body services.CategoryInput true "Category data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /category/update_category [put]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id := c.QueryInt("category_id")
	if id < 1 {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	category, err := h.categoryService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to update category")
	}

	return response.Success(c, "Category update is successful", fiber.Map{
		"category": category,
	})
}

// DeleteCategory deletes a category (admin only)
// @Summary Delete category
// @Tags Category
// @Produce json
// @Security BearerAuth
// @Param category_id query int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /category/delete_category [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.QueryInt("category_id")
	if id < 1 {
		return response.BadRequest(c, "Invalid category ID")
	}

	if err := h.categoryService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to delete category")
	}

	return response.Success(c, "Category delete is successful", nil)
}
