package api

import (
	"strconv"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
)

// HeroSlideHandler manages landing-page hero slides.
type HeroSlideHandler struct{}

func NewHeroSlideHandler() *HeroSlideHandler {
	return &HeroSlideHandler{}
}

type HeroSlideRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=200"`
	Subtitle      string `json:"subtitle" binding:"omitempty,max=255"`
	LinkURL       string `json:"link_url" binding:"omitempty,max=255"`
	ImagePath     string `json:"image_path" binding:"omitempty,max=255"`
	GradientStart string `json:"gradient_start" binding:"omitempty,max=20"`
	GradientEnd   string `json:"gradient_end" binding:"omitempty,max=20"`
	GradientAngle *int   `json:"gradient_angle"`
	OrderIndex    *int   `json:"order_index"`
	IsActive      *bool  `json:"is_active"`
}

// List returns every slide for the admin editor.
// @Summary List hero slides (admin)
// @Tags hero-slides
// @Produce json
// @Success 200 {object} Response{data=[]models.HeroSlide}
// @Router /api/hero-slides [get]
func (h *HeroSlideHandler) List(c *gin.Context) {
	var slides []models.HeroSlide
	if err := database.DB.Order("order_index ASC, id ASC").Find(&slides).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load slides"))
		return
	}
	Success(c, slides)
}

// PublicList returns active slides in display order.
// @Summary Public hero slides
// @Tags hero-slides
// @Produce json
// @Success 200 {object} Response{data=[]models.HeroSlide}
// @Router /api/hero-slides/public [get]
func (h *HeroSlideHandler) PublicList(c *gin.Context) {
	var slides []models.HeroSlide
	if err := database.DB.Where("is_active = ?", true).
		Order("order_index ASC, id ASC").
		Find(&slides).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load slides"))
		return
	}
	Success(c, slides)
}

// Create adds a slide.
// @Summary Create hero slide
// @Tags hero-slides
// @Accept json
// @Produce json
// @Param request body HeroSlideRequest true "slide"
// @Success 201 {object} Response{data=models.HeroSlide}
// @Failure 400 {object} Response
// @Router /api/hero-slides [post]
func (h *HeroSlideHandler) Create(c *gin.Context) {
	var req HeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	slide := models.HeroSlide{
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		LinkURL:       req.LinkURL,
		ImagePath:     req.ImagePath,
		GradientStart: req.GradientStart,
		GradientEnd:   req.GradientEnd,
		GradientAngle: 135,
		IsActive:      true,
	}
	if req.GradientAngle != nil {
		slide.GradientAngle = *req.GradientAngle
	}
	if req.OrderIndex != nil {
		slide.OrderIndex = *req.OrderIndex
	} else {
		var count int64
		database.DB.Model(&models.HeroSlide{}).Count(&count)
		slide.OrderIndex = int(count)
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&slide).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create slide"))
		return
	}
	Created(c, slide)
}

// Update edits a slide.
// @Summary Update hero slide
// @Tags hero-slides
// @Accept json
// @Produce json
// @Param id path int true "slide id"
// @Param request body HeroSlideRequest true "slide"
// @Success 200 {object} Response{data=models.HeroSlide}
// @Failure 404 {object} Response
// @Router /api/hero-slides/{id} [put]
func (h *HeroSlideHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req HeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var slide models.HeroSlide
	if err := database.DB.First(&slide, id).Error; err != nil {
		NotFound(c, "slide not found")
		return
	}

	updates := map[string]interface{}{
		"title":          req.Title,
		"subtitle":       req.Subtitle,
		"link_url":       req.LinkURL,
		"image_path":     req.ImagePath,
		"gradient_start": req.GradientStart,
		"gradient_end":   req.GradientEnd,
	}
	if req.GradientAngle != nil {
		updates["gradient_angle"] = *req.GradientAngle
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&slide).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update slide"))
		return
	}
	database.DB.First(&slide, slide.ID)
	SuccessWithMessage(c, "slide updated", slide)
}

// Delete removes a slide.
// @Summary Delete hero slide
// @Tags hero-slides
// @Produce json
// @Param id path int true "slide id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/hero-slides/{id} [delete]
func (h *HeroSlideHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var slide models.HeroSlide
	if err := database.DB.First(&slide, id).Error; err != nil {
		NotFound(c, "slide not found")
		return
	}
	if err := database.DB.Delete(&slide).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete slide"))
		return
	}
	SuccessWithMessage(c, "slide deleted", nil)
}
