package api

import (
	"strconv"
	"strings"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EnergyDataHandler manages monthly consumption rows.
type EnergyDataHandler struct{}

func NewEnergyDataHandler() *EnergyDataHandler {
	return &EnergyDataHandler{}
}

type EnergyDataRequest struct {
	BuildingName string   `json:"building_name" binding:"required,min=1,max=100"`
	Year         int      `json:"year" binding:"required"`
	Month        int      `json:"month" binding:"required"`
	Electricity  *float64 `json:"electricity"`
	Gas          *float64 `json:"gas"`
	Water        *float64 `json:"water"`
}

// validateEnergyKey checks the natural-key fields and measure signs shared
// by energy and solar writes. Returns a message for the offending field, or
// an empty string.
func validateEnergyKey(building string, year, month int, measures ...*float64) string {
	if strings.TrimSpace(building) == "" {
		return "building_name is required"
	}
	if year < 2000 || year > 2100 {
		return "year must be a four-digit year between 2000 and 2100"
	}
	if month < 1 || month > 12 {
		return "month must be between 1 and 12"
	}
	for _, m := range measures {
		if m != nil && *m < 0 {
			return "measures must not be negative"
		}
	}
	return ""
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// List returns energy rows filtered by building and/or year.
// @Summary List energy data
// @Tags energy-data
// @Produce json
// @Param building_name query string false "building filter"
// @Param year query int false "year filter"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} Response{data=PageResponse{list=[]models.EnergyData}}
// @Router /api/energy-data [get]
func (h *EnergyDataHandler) List(c *gin.Context) {
	page, limit := pagination(c, 20)

	query := database.DB.Model(&models.EnergyData{})
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

	var rows []models.EnergyData
	err := query.Order("year DESC, month DESC, building_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load energy data"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, Limit: limit, List: rows})
}

// Create upserts a row by its (building, year, month) natural key: an
// existing key gets its measures replaced, last write wins.
// @Summary Create or replace energy data
// @Tags energy-data
// @Accept json
// @Produce json
// @Param request body EnergyDataRequest true "row"
// @Success 200 {object} Response{data=models.EnergyData} "existing key replaced"
// @Success 201 {object} Response{data=models.EnergyData} "new key created"
// @Failure 400 {object} Response
// @Router /api/energy-data [post]
func (h *EnergyDataHandler) Create(c *gin.Context) {
	var req EnergyDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if msg := validateEnergyKey(req.BuildingName, req.Year, req.Month, req.Electricity, req.Gas, req.Water); msg != "" {
		BadRequest(c, msg)
		return
	}

	var existing models.EnergyData
	err := database.DB.Where("building_name = ? AND year = ? AND month = ?",
		req.BuildingName, req.Year, req.Month).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"electricity": deref(req.Electricity),
			"gas":         deref(req.Gas),
			"water":       deref(req.Water),
		}
		if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update energy data"))
			return
		}
		database.DB.First(&existing, existing.ID)
		SuccessWithMessage(c, "energy data replaced", existing)
	case err == gorm.ErrRecordNotFound:
		row := models.EnergyData{
			BuildingName: req.BuildingName,
			Year:         req.Year,
			Month:        req.Month,
			Electricity:  deref(req.Electricity),
			Gas:          deref(req.Gas),
			Water:        deref(req.Water),
		}
		if err := database.DB.Create(&row).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to create energy data"))
			return
		}
		Created(c, row)
	default:
		InternalError(c, SafeErrorMessage(err, "failed to query energy data"))
	}
}

// Update edits a row by id. Changing the natural key onto an existing
// combination is a 409.
// @Summary Update energy data
// @Tags energy-data
// @Accept json
// @Produce json
// @Param id path int true "row id"
// @Param request body EnergyDataRequest true "row"
// @Success 200 {object} Response{data=models.EnergyData}
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/energy-data/{id} [put]
func (h *EnergyDataHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var req EnergyDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if msg := validateEnergyKey(req.BuildingName, req.Year, req.Month, req.Electricity, req.Gas, req.Water); msg != "" {
		BadRequest(c, msg)
		return
	}

	var row models.EnergyData
	if err := database.DB.First(&row, id).Error; err != nil {
		NotFound(c, "energy data not found")
		return
	}

	var dup models.EnergyData
	err = database.DB.Where("building_name = ? AND year = ? AND month = ? AND id <> ?",
		req.BuildingName, req.Year, req.Month, id).First(&dup).Error
	switch {
	case err == nil:
		Conflict(c, "another row already uses this building/year/month")
		return
	case err != gorm.ErrRecordNotFound:
		InternalError(c, SafeErrorMessage(err, "failed to query energy data"))
		return
	}

	updates := map[string]interface{}{
		"building_name": req.BuildingName,
		"year":          req.Year,
		"month":         req.Month,
		"electricity":   deref(req.Electricity),
		"gas":           deref(req.Gas),
		"water":         deref(req.Water),
	}
	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update energy data"))
		return
	}
	database.DB.First(&row, row.ID)
	SuccessWithMessage(c, "energy data updated", row)
}

// Delete removes a row by id.
// @Summary Delete energy data
// @Tags energy-data
// @Produce json
// @Param id path int true "row id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/energy-data/{id} [delete]
func (h *EnergyDataHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}
	var row models.EnergyData
	if err := database.DB.First(&row, id).Error; err != nil {
		NotFound(c, "energy data not found")
		return
	}
	if err := database.DB.Delete(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete energy data"))
		return
	}
	SuccessWithMessage(c, "energy data deleted", nil)
}

// pagination reads page/limit query values, clamped to sane bounds.
func pagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
