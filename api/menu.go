package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"greencampus/database"
	"greencampus/models"
	"greencampus/service"

	"github.com/gin-gonic/gin"
)

// MenuHandler manages the site navigation.
type MenuHandler struct{}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

// MenuWithRefs is a menu row with the display names of its backing records.
type MenuWithRefs struct {
	models.Menu
	PageTitle string `json:"page_title"`
	BoardName string `json:"board_name"`
}

// List returns the flat admin menu list with joined page/board names.
// @Summary List menus (admin)
// @Tags menus
// @Produce json
// @Success 200 {object} Response{data=[]MenuWithRefs}
// @Router /api/menus [get]
func (h *MenuHandler) List(c *gin.Context) {
	var menus []MenuWithRefs
	err := database.DB.Model(&models.Menu{}).
		Select("menus.*, pages.title AS page_title, boards.name AS board_name").
		Joins("LEFT JOIN pages ON menus.page_id = pages.id").
		Joins("LEFT JOIN boards ON menus.board_id = boards.id").
		Order("menus.sort_order ASC, menus.id ASC").
		Scan(&menus).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load menus"))
		return
	}
	Success(c, menus)
}

// Tree returns the full navigation forest for the admin editor, inactive
// entries included.
// @Summary Menu tree (admin)
// @Tags menus
// @Produce json
// @Success 200 {object} Response
// @Router /api/menus/tree [get]
func (h *MenuHandler) Tree(c *gin.Context) {
	menus, err := h.loadFlat()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load menus"))
		return
	}
	Success(c, service.BuildTree(menus, false))
}

// PublicList returns the flat list of active menus for the public site.
// @Summary Public menu list
// @Tags menus
// @Produce json
// @Success 200 {object} Response{data=[]models.Menu}
// @Router /api/menus/public [get]
func (h *MenuHandler) PublicList(c *gin.Context) {
	var menus []models.Menu
	if err := database.DB.Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&menus).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load menus"))
		return
	}
	Success(c, menus)
}

// PublicTree returns the active-only navigation forest. Children of an
// inactive parent are excluded with it.
// @Summary Public menu tree
// @Tags menus
// @Produce json
// @Success 200 {object} Response
// @Router /api/menus/public/tree [get]
func (h *MenuHandler) PublicTree(c *gin.Context) {
	menus, err := h.loadFlat()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load menus"))
		return
	}
	Success(c, service.BuildTree(menus, true))
}

func (h *MenuHandler) loadFlat() ([]models.Menu, error) {
	var menus []models.Menu
	err := database.DB.Order("sort_order ASC, id ASC").Find(&menus).Error
	return menus, err
}

type MenuCreateRequest struct {
	ParentID  uint   `json:"parent_id"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	URL       string `json:"url" binding:"omitempty,max=255"`
	Kind      string `json:"kind" binding:"required"`
	PageID    *uint  `json:"page_id"`
	BoardID   *uint  `json:"board_id"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
	Content   string `json:"content"` // inline HTML for an auto-provisioned page
}

type MenuUpdateRequest struct {
	ParentID  *uint   `json:"parent_id"`
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	URL       *string `json:"url" binding:"omitempty,max=255"`
	Kind      *string `json:"kind"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// Create adds a menu. For page/board kinds without an explicit reference a
// backing record is provisioned so the editor can start filling it in.
// @Summary Create menu
// @Tags menus
// @Accept json
// @Produce json
// @Param request body MenuCreateRequest true "menu"
// @Success 201 {object} Response{data=models.Menu}
// @Failure 400 {object} Response
// @Router /api/menus [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req MenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name is required")
		return
	}
	if !models.ValidKind(req.Kind) {
		BadRequest(c, "kind must be page, board or link")
		return
	}

	if req.ParentID > 0 {
		var parent models.Menu
		if err := database.DB.First(&parent, req.ParentID).Error; err != nil {
			BadRequest(c, "parent menu does not exist")
			return
		}
	}

	menu := models.Menu{
		ParentID: req.ParentID,
		Name:     req.Name,
		URL:      req.URL,
		Kind:     req.Kind,
		PageID:   req.PageID,
		BoardID:  req.BoardID,
		IsActive: true,
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if req.SortOrder != nil {
		menu.SortOrder = *req.SortOrder
	} else {
		// append at the end of the sibling list
		var siblings int64
		database.DB.Model(&models.Menu{}).Where("parent_id = ?", req.ParentID).Count(&siblings)
		menu.SortOrder = int(siblings)
	}

	// provision the backing record the kind requires
	switch req.Kind {
	case models.MenuKindPage:
		if menu.PageID == nil {
			page := models.Page{
				Slug:    slugify(req.Name, req.URL),
				Title:   req.Name,
				Content: req.Content,
			}
			if err := database.DB.Create(&page).Error; err != nil {
				InternalError(c, SafeErrorMessage(err, "failed to provision page"))
				return
			}
			menu.PageID = &page.ID
			if menu.URL == "" {
				menu.URL = "/pages/" + page.Slug
			}
		}
		menu.BoardID = nil
	case models.MenuKindBoard:
		if menu.BoardID == nil {
			board := models.Board{
				Slug: slugify(req.Name, req.URL),
				Name: req.Name,
			}
			if err := database.DB.Create(&board).Error; err != nil {
				InternalError(c, SafeErrorMessage(err, "failed to provision board"))
				return
			}
			menu.BoardID = &board.ID
			if menu.URL == "" {
				menu.URL = "/boards/" + board.Slug
			}
		}
		menu.PageID = nil
	case models.MenuKindLink:
		menu.PageID = nil
		menu.BoardID = nil
	}

	if err := database.DB.Create(&menu).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create menu"))
		return
	}
	Created(c, menu)
}

// Update edits menu fields. Reparenting through this endpoint runs the same
// cycle guard as drag-and-drop.
// @Summary Update menu
// @Tags menus
// @Accept json
// @Produce json
// @Param id path int true "menu id"
// @Param request body MenuUpdateRequest true "fields"
// @Success 200 {object} Response{data=models.Menu}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/menus/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req MenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var menu models.Menu
	if err := database.DB.First(&menu, id).Error; err != nil {
		NotFound(c, "menu not found")
		return
	}

	if req.Kind != nil && !models.ValidKind(*req.Kind) {
		BadRequest(c, "kind must be page, board or link")
		return
	}

	if req.ParentID != nil {
		pid := *req.ParentID
		if pid > 0 {
			if pid == uint(id) {
				BadRequest(c, "menu cannot be its own parent")
				return
			}
			var parent models.Menu
			if err := database.DB.First(&parent, pid).Error; err != nil {
				BadRequest(c, "parent menu does not exist")
				return
			}
			var all []models.Menu
			database.DB.Find(&all)
			if service.DescendantIDs(all, uint(id))[pid] {
				BadRequest(c, "menu cannot be moved under its own descendant")
				return
			}
		}
	}

	updates := make(map[string]interface{})
	if req.ParentID != nil {
		updates["parent_id"] = *req.ParentID
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Kind != nil {
		updates["kind"] = *req.Kind
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&menu).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update menu"))
			return
		}
	}
	database.DB.First(&menu, menu.ID)
	SuccessWithMessage(c, "menu updated", menu)
}

type MenuMoveRequest struct {
	TargetID uint   `json:"target_id" binding:"required"`
	Position string `json:"position" binding:"required"` // before / after / inside
}

// Move handles a drag-and-drop reorder. The plan is computed over the
// authoritative flat list and persisted as sequential row updates; when a
// write fails partway the client must re-fetch the list instead of trusting
// its local state.
// @Summary Move menu (drag and drop)
// @Tags menus
// @Accept json
// @Produce json
// @Param id path int true "dragged menu id"
// @Param request body MenuMoveRequest true "target and position"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/menus/{id}/move [put]
func (h *MenuHandler) Move(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req MenuMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	menus, err := h.loadFlat()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load menus"))
		return
	}

	changes, err := service.PlanMove(menus, uint(id), req.TargetID, req.Position)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuNotFound):
			NotFound(c, "menu not found")
		case errors.Is(err, service.ErrMenuCycle):
			BadRequest(c, "menu cannot be moved under its own descendant")
		default:
			BadRequest(c, "position must be before, after or inside")
		}
		return
	}

	for _, ch := range changes {
		err := database.DB.Model(&models.Menu{}).
			Where("id = ?", ch.ID).
			Updates(map[string]interface{}{
				"parent_id":  ch.ParentID,
				"sort_order": ch.SortOrder,
			}).Error
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to persist move, reload the menu list"))
			return
		}
	}
	SuccessWithMessage(c, "menu moved", gin.H{"updated": len(changes)})
}

// Delete removes a childless menu. A menu with children is a 409 until the
// children are removed or reparented.
// @Summary Delete menu
// @Tags menus
// @Produce json
// @Param id path int true "menu id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var menu models.Menu
	if err := database.DB.First(&menu, id).Error; err != nil {
		NotFound(c, "menu not found")
		return
	}

	var children int64
	if err := database.DB.Model(&models.Menu{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to check children"))
		return
	}
	if children > 0 {
		Conflict(c, "menu has children, remove or reparent them first")
		return
	}

	if err := database.DB.Delete(&menu).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete menu"))
		return
	}
	SuccessWithMessage(c, "menu deleted", nil)
}

// slugify derives a URL slug from an explicit URL path or a display name.
func slugify(name, url string) string {
	src := url
	if idx := strings.LastIndex(src, "/"); idx >= 0 {
		src = src[idx+1:]
	}
	if src == "" {
		src = name
	}
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(src) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = fmt.Sprintf("menu-%d", time.Now().UnixMilli())
	}
	return slug
}
