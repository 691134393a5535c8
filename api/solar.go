package api

import (
	"strconv"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SolarDataHandler manages monthly photovoltaic generation rows.
type SolarDataHandler struct{}

func NewSolarDataHandler() *SolarDataHandler {
	return &SolarDataHandler{}
}

type SolarDataRequest struct {
	BuildingName string   `json:"building_name" binding:"required,min=1,max=100"`
	Year         int      `json:"year" binding:"required"`
	Month        int      `json:"month" binding:"required"`
	Generation   *float64 `json:"generation"`
	Capacity     *float64 `json:"capacity"`
}

// List returns solar rows filtered by building and/or year.
// @Summary List solar data
// @Tags solar-data
// @Produce json
// @Param building_name query string false "building filter"
// @Param year query int false "year filter"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} Response{data=PageResponse{list=[]models.SolarData}}
// @Router /api/solar-data [get]
func (h *SolarDataHandler) List(c *gin.Context) {
	page, limit := pagination(c, 20)

	query := database.DB.Model(&models.SolarData{})
	if b := c.Query("building_name"); b != "" {
		query = query.Where("building_name = ?", b)
	}
	if y := c.Query("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			query = query.Where("year = ?", year)
		}
	}

	var total int64
	query.Count(&total)

	var rows []models.SolarData
	err := query.Order("year DESC, month DESC, building_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load solar data"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, Limit: limit, List: rows})
}

// Create upserts a row by its natural key, same last-write-wins semantics
// as energy data.
// @Summary Create or replace solar data
// @Tags solar-data
// @Accept json
// @Produce json
// @Param request body SolarDataRequest true "row"
// @Success 200 {object} Response{data=models.SolarData} "existing key replaced"
// @Success 201 {object} Response{data=models.SolarData} "new key created"
// @Failure 400 {object} Response
// @Router /api/solar-data [post]
func (h *SolarDataHandler) Create(c *gin.Context) {
	var req SolarDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if msg := validateEnergyKey(req.BuildingName, req.Year, req.Month, req.Generation, req.Capacity); msg != "" {
		BadRequest(c, msg)
		return
	}

	var existing models.SolarData
	err := database.DB.Where("building_name = ? AND year = ? AND month = ?",
		req.BuildingName, req.Year, req.Month).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"generation": deref(req.Generation),
			"capacity":   deref(req.Capacity),
		}
		if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update solar data"))
			return
		}
		database.DB.First(&existing, existing.ID)
		SuccessWithMessage(c, "solar data replaced", existing)
	case err == gorm.ErrRecordNotFound:
		row := models.SolarData{
			BuildingName: req.BuildingName,
			Year:         req.Year,
			Month:        req.Month,
			Generation:   deref(req.Generation),
			Capacity:     deref(req.Capacity),
		}
		if err := database.DB.Create(&row).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to create solar data"))
			return
		}
		Created(c, row)
	default:
		InternalError(c, SafeErrorMessage(err, "failed to query solar data"))
	}
}

// Update edits a row by id.
// @Summary Update solar data
// @Tags solar-data
// @Accept json
// @Produce json
// @Param id path int true "row id"
// @Param request body SolarDataRequest true "row"
// @Success 200 {object} Response{data=models.SolarData}
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/solar-data/{id} [put]
func (h *SolarDataHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req SolarDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if msg := validateEnergyKey(req.BuildingName, req.Year, req.Month, req.Generation, req.Capacity); msg != "" {
		BadRequest(c, msg)
		return
	}

	var row models.SolarData
	if err := database.DB.First(&row, id).Error; err != nil {
		NotFound(c, "solar data not found")
		return
	}

	var dup models.SolarData
	err = database.DB.Where("building_name = ? AND year = ? AND month = ? AND id <> ?",
		req.BuildingName, req.Year, req.Month, id).First(&dup).Error
	switch {
	case err == nil:
		Conflict(c, "another row already uses this building/year/month")
		return
	case err != gorm.ErrRecordNotFound:
		InternalError(c, SafeErrorMessage(err, "failed to query solar data"))
		return
	}

	updates := map[string]interface{}{
		"building_name": req.BuildingName,
		"year":          req.Year,
		"month":         req.Month,
		"generation":    deref(req.Generation),
		"capacity":      deref(req.Capacity),
	}
	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update solar data"))
		return
	}
	database.DB.First(&row, row.ID)
	SuccessWithMessage(c, "solar data updated", row)
}

// Delete removes a row by id.
// @Summary Delete solar data
// @Tags solar-data
// @Produce json
// @Param id path int true "row id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/solar-data/{id} [delete]
func (h *SolarDataHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var row models.SolarData
	if err := database.DB.First(&row, id).Error; err != nil {
		NotFound(c, "solar data not found")
		return
	}
	if err := database.DB.Delete(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete solar data"))
		return
	}
	SuccessWithMessage(c, "solar data deleted", nil)
}
