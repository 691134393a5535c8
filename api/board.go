package api

import (
	"strconv"
	"strings"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BoardHandler manages posting boards.
type BoardHandler struct{}

func NewBoardHandler() *BoardHandler {
	return &BoardHandler{}
}

type BoardCreateRequest struct {
	Slug        string `json:"slug" binding:"required,min=1,max=100"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

type BoardUpdateRequest struct {
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=100"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// List returns all boards.
// @Summary List boards
// @Tags boards
// @Produce json
// @Success 200 {object} Response{data=[]models.Board}
// @Router /api/boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	var boards []models.Board
	if err := database.DB.Order("id ASC").Find(&boards).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load boards"))
		return
	}
	Success(c, boards)
}

// GetBySlug returns one board for the public site.
// @Summary Get board by slug
// @Tags boards
// @Produce json
// @Param slug path string true "board slug"
// @Success 200 {object} Response{data=models.Board}
// @Failure 404 {object} Response
// @Router /api/boards/{slug} [get]
func (h *BoardHandler) GetBySlug(c *gin.Context) {
	var board models.Board
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&board).Error; err != nil {
		NotFound(c, "board not found")
		return
	}
	Success(c, board)
}

// Posts returns a page of the board's posts, newest first.
// @Summary List board posts
// @Tags boards
// @Produce json
// @Param slug path string true "board slug"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Post}}
// @Failure 404 {object} Response
// @Router /api/boards/{slug}/posts [get]
func (h *BoardHandler) Posts(c *gin.Context) {
	var board models.Board
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&board).Error; err != nil {
		NotFound(c, "board not found")
		return
	}

	page, limit := pagination(c, 10)

	query := database.DB.Model(&models.Post{}).Where("board_id = ?", board.ID)
	if cat := c.Query("category_id"); cat != "" {
		if id, err := strconv.Atoi(cat); err == nil {
			query = query.Where("category_id = ?", id)
		}
	}

	var total int64
	query.Count(&total)

	var posts []models.Post
	err := query.Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load posts"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, Limit: limit, List: posts})
}

// Create adds a board. The slug must be unique.
// @Summary Create board
// @Tags boards
// @Accept json
// @Produce json
// @Param request body BoardCreateRequest true "board"
// @Success 201 {object} Response{data=models.Board}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req BoardCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	req.Slug = strings.TrimSpace(req.Slug)

	var existing models.Board
	err := database.DB.Where("slug = ?", req.Slug).First(&existing).Error
	switch {
	case err == nil:
		Conflict(c, "board slug already exists")
		return
	case err != gorm.ErrRecordNotFound:
		InternalError(c, SafeErrorMessage(err, "failed to query boards"))
		return
	}

	board := models.Board{Slug: req.Slug, Name: req.Name, Description: req.Description}
	if err := database.DB.Create(&board).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create board"))
		return
	}
	Created(c, board)
}

// Update edits a board.
// @Summary Update board
// @Tags boards
// @Accept json
// @Produce json
// @Param id path int true "board id"
// @Param request body BoardUpdateRequest true "fields"
// @Success 200 {object} Response{data=models.Board}
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req BoardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var board models.Board
	if err := database.DB.First(&board, id).Error; err != nil {
		NotFound(c, "board not found")
		return
	}

	if req.Slug != nil && *req.Slug != board.Slug {
		var existing models.Board
		err := database.DB.Where("slug = ? AND id <> ?", *req.Slug, id).First(&existing).Error
		switch {
		case err == nil:
			Conflict(c, "board slug already exists")
			return
		case err != gorm.ErrRecordNotFound:
			InternalError(c, SafeErrorMessage(err, "failed to query boards"))
			return
		}
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		updates["slug"] = strings.TrimSpace(*req.Slug)
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&board).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update board"))
			return
		}
	}
	database.DB.First(&board, board.ID)
	SuccessWithMessage(c, "board updated", board)
}

// Delete removes a board that has no posts left.
// @Summary Delete board
// @Tags boards
// @Produce json
// @Param id path int true "board id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var board models.Board
	if err := database.DB.First(&board, id).Error; err != nil {
		NotFound(c, "board not found")
		return
	}

	var posts int64
	database.DB.Model(&models.Post{}).Where("board_id = ?", id).Count(&posts)
	if posts > 0 {
		Conflict(c, "board still has posts")
		return
	}

	if err := database.DB.Delete(&board).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete board"))
		return
	}
	SuccessWithMessage(c, "board deleted", nil)
}
