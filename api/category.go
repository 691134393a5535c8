package api

import (
	"strconv"
	"strings"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler manages board post categories.
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type CategoryCreateRequest struct {
	BoardID uint   `json:"board_id" binding:"required"`
	Name    string `json:"name" binding:"required,min=1,max=50"`
	Sort    int    `json:"sort"`
}

type CategoryUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=50"`
	Sort *int    `json:"sort"`
}

// List returns categories, optionally for one board.
// @Summary List categories
// @Tags categories
// @Produce json
// @Param board_id query int false "board filter"
// @Success 200 {object} Response{data=[]models.Category}
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Category{})
	if b := c.Query("board_id"); b != "" {
		if id, err := strconv.Atoi(b); err == nil {
			query = query.Where("board_id = ?", id)
		}
	}
	var list []models.Category
	if err := query.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load categories"))
		return
	}
	Success(c, list)
}

// Create adds a category to a board.
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryCreateRequest true "category"
// @Success 201 {object} Response{data=models.Category}
// @Failure 400 {object} Response
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name is required")
		return
	}

	var board models.Board
	if err := database.DB.First(&board, req.BoardID).Error; err != nil {
		BadRequest(c, "board does not exist")
		return
	}

	var existing models.Category
	err := database.DB.Where("board_id = ? AND name = ?", req.BoardID, req.Name).First(&existing).Error
	switch {
	case err == nil:
		Conflict(c, "category already exists on this board")
		return
	case err != gorm.ErrRecordNotFound:
		InternalError(c, SafeErrorMessage(err, "failed to query categories"))
		return
	}

	cat := models.Category{BoardID: req.BoardID, Name: req.Name, Sort: req.Sort}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create category"))
		return
	}
	Created(c, cat)
}

// Update edits a category.
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Param request body CategoryUpdateRequest true "fields"
// @Success 200 {object} Response{data=models.Category}
// @Failure 404 {object} Response
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var cat models.Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		NotFound(c, "category not found")
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update category"))
			return
		}
	}
	database.DB.First(&cat, cat.ID)
	SuccessWithMessage(c, "category updated", cat)
}

// Delete removes a category; posts keep their rows with a dangling label
// cleared.
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		NotFound(c, "category not found")
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete category"))
		return
	}
	_ = database.DB.Model(&models.Post{}).Where("category_id = ?", id).Update("category_id", nil).Error
	SuccessWithMessage(c, "category deleted", nil)
}
