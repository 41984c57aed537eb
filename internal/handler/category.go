package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CategoryInput true "Category name and type"
// @Success 201 {object} model.Category
// @Failure 400 {object} model.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var input model.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeValidationError(c, err)
		return
	}

	category, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// CreateMany godoc
// @Summary Bulk-create categories, skipping duplicates
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []model.CategoryInput true "Categories"
// @Success 201 {object} model.BulkCategoriesResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/categories/createCategories [post]
func (h *CategoryHandler) CreateMany(c *gin.Context) {
	var inputs []model.CategoryInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		writeValidationError(c, err)
		return
	}

	inserted, err := h.svc.CreateMany(c.Request.Context(), inputs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.BulkCategoriesResponse{Status: "created", Inserted: inserted})
}

// List godoc
// @Summary List all categories ordered by name
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}

	c.JSON(http.StatusOK, categories)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category id"
// @Param request body model.CategoryUpdate true "Fields to change"
// @Success 200 {object} model.StatusResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		writeValidationError(c, err)
		return
	}

	var update model.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		writeValidationError(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, update)
	if err != nil {
		writeError(c, err)
		return
	}
	if updated == 0 {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "category not found"})
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "updated"})
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category id"
// @Success 200 {object} model.StatusResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		writeValidationError(c, err)
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "category not found"})
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}

func parseIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
