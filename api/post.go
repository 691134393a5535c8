package api

import (
	"strconv"

	"greencampus/database"
	"greencampus/middleware"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostHandler manages board posts.
type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type PostCreateRequest struct {
	BoardID    uint   `json:"board_id" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Title      string `json:"title" binding:"required,min=1,max=200"`
	Content    string `json:"content"`
}

type PostUpdateRequest struct {
	CategoryID *uint   `json:"category_id"`
	Title      *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content    *string `json:"content"`
}

// Get returns one post for the public site and counts the view.
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} Response{data=models.Post}
// @Failure 404 {object} Response
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		NotFound(c, "post not found")
		return
	}

	database.DB.Model(&post).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	post.ViewCount++

	Success(c, post)
}

// Create adds a post to a board.
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostCreateRequest true "post"
// @Success 201 {object} Response{data=models.Post}
// @Failure 400 {object} Response
// @Router /api/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var board models.Board
	if err := database.DB.First(&board, req.BoardID).Error; err != nil {
		BadRequest(c, "board does not exist")
		return
	}

	post := models.Post{
		BoardID:    req.BoardID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		Author:     middleware.GetCurrentUsername(c),
	}
	if err := database.DB.Create(&post).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create post"))
		return
	}
	Created(c, post)
}

// Update edits a post.
// @Summary Update post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Param request body PostUpdateRequest true "fields"
// @Success 200 {object} Response{data=models.Post}
// @Failure 404 {object} Response
// @Router /api/posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		NotFound(c, "post not found")
		return
	}

	updates := make(map[string]interface{})
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update post"))
			return
		}
	}
	database.DB.First(&post, post.ID)
	SuccessWithMessage(c, "post updated", post)
}

// Delete removes a post.
// @Summary Delete post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		NotFound(c, "post not found")
		return
	}
	if err := database.DB.Delete(&post).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete post"))
		return
	}
	SuccessWithMessage(c, "post deleted", nil)
}
