package api

import (
	"strconv"
	"strings"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageHandler manages static content pages.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type PageCreateRequest struct {
	Slug    string `json:"slug" binding:"required,min=1,max=100"`
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content"`
}

type PageUpdateRequest struct {
	Slug    *string `json:"slug" binding:"omitempty,min=1,max=100"`
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
}

// List returns all pages without their content bodies.
// @Summary List pages
// @Tags pages
// @Produce json
// @Success 200 {object} Response
// @Router /api/pages [get]
func (h *PageHandler) List(c *gin.Context) {
	type pageMeta struct {
		ID    uint   `json:"id"`
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	var pages []pageMeta
	if err := database.DB.Model(&models.Page{}).
		Select("id, slug, title").
		Order("id ASC").
		Scan(&pages).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load pages"))
		return
	}
	Success(c, pages)
}

// GetBySlug returns one page for the public site.
// @Summary Get page by slug
// @Tags pages
// @Produce json
// @Param slug path string true "page slug"
// @Success 200 {object} Response{data=models.Page}
// @Failure 404 {object} Response
// @Router /api/pages/{slug} [get]
func (h *PageHandler) GetBySlug(c *gin.Context) {
	var page models.Page
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&page).Error; err != nil {
		NotFound(c, "page not found")
		return
	}
	Success(c, page)
}

// Create adds a page.
// @Summary Create page
// @Tags pages
// @Accept json
// @Produce json
// @Param request body PageCreateRequest true "page"
// @Success 201 {object} Response{data=models.Page}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/pages [post]
func (h *PageHandler) Create(c *gin.Context) {
	var req PageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	req.Slug = strings.TrimSpace(req.Slug)

	var existing models.Page
	err := database.DB.Where("slug = ?", req.Slug).First(&existing).Error
	switch {
	case err == nil:
		Conflict(c, "page slug already exists")
		return
	case err != gorm.ErrRecordNotFound:
		InternalError(c, SafeErrorMessage(err, "failed to query pages"))
		return
	}

	page := models.Page{Slug: req.Slug, Title: req.Title, Content: req.Content}
	if err := database.DB.Create(&page).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create page"))
		return
	}
	Created(c, page)
}

// Update edits a page.
// @Summary Update page
// @Tags pages
// @Accept json
// @Produce json
// @Param id path int true "page id"
// @Param request body PageUpdateRequest true "fields"
// @Success 200 {object} Response{data=models.Page}
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/pages/{id} [put]
func (h *PageHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req PageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		NotFound(c, "page not found")
		return
	}

	if req.Slug != nil && *req.Slug != page.Slug {
		var existing models.Page
		err := database.DB.Where("slug = ? AND id <> ?", *req.Slug, id).First(&existing).Error
		switch {
		case err == nil:
			Conflict(c, "page slug already exists")
			return
		case err != gorm.ErrRecordNotFound:
			InternalError(c, SafeErrorMessage(err, "failed to query pages"))
			return
		}
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		updates["slug"] = strings.TrimSpace(*req.Slug)
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&page).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update page"))
			return
		}
	}
	database.DB.First(&page, page.ID)
	SuccessWithMessage(c, "page updated", page)
}

// Delete removes a page that no menu references.
// @Summary Delete page
// @Tags pages
// @Produce json
// @Param id path int true "page id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/pages/{id} [delete]
func (h *PageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		NotFound(c, "page not found")
		return
	}

	var refs int64
	database.DB.Model(&models.Menu{}).Where("page_id = ?", id).Count(&refs)
	if refs > 0 {
		Conflict(c, "page is referenced by a menu")
		return
	}

	if err := database.DB.Delete(&page).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete page"))
		return
	}
	SuccessWithMessage(c, "page deleted", nil)
}
