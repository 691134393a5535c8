package api

import (
	"strconv"
	"time"

	"greencampus/database"
	"greencampus/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the public dashboard statistics.
type StatsHandler struct{}

func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// GreenhouseGasStatsResponse is the public greenhouse-gas dashboard shape.
type GreenhouseGasStatsResponse struct {
	Comparison  service.YearComparison   `json:"comparison"`
	Monthly     []service.MonthTotals    `json:"monthly"`
	YearlyTrend []service.YearTotals     `json:"yearly_trend"`
	ByBuilding  []service.BuildingTotals `json:"by_building"`
}

// EnergyStatsResponse is the public energy dashboard shape.
type EnergyStatsResponse struct {
	Year             int                  `json:"year"`
	Monthly          []service.MonthTotals `json:"monthly"`
	SolarMonthly     []service.SolarMonth  `json:"solar_monthly"`
	SolarYearlyTotal float64              `json:"solar_yearly_total"`
	SourceRatio      service.SourceRatio  `json:"source_ratio"`
}

func statsYear(c *gin.Context) int {
	if y := c.Query("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil && year >= 2000 && year <= 2100 {
			return year
		}
	}
	return time.Now().Year()
}

// GreenhouseGasStats returns emission totals, year-over-year change,
// monthly buckets and the per-building breakdown for a year.
// @Summary Public greenhouse-gas statistics
// @Tags public-stats
// @Produce json
// @Param year query int false "year, defaults to the current year"
// @Success 200 {object} Response{data=GreenhouseGasStatsResponse}
// @Failure 500 {object} Response
// @Router /api/public/greenhouse-gas-stats [get]
func (h *StatsHandler) GreenhouseGasStats(c *gin.Context) {
	year := statsYear(c)
	svc := service.NewStatsService(database.DB)

	comparison, err := svc.CurrentVsPreviousYear(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}
	monthly, err := svc.MonthlyBreakdown(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}
	trend, err := svc.YearlyTrend()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}
	byBuilding, err := svc.PerBuildingBreakdown(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}

	Success(c, GreenhouseGasStatsResponse{
		Comparison:  comparison,
		Monthly:     monthly,
		YearlyTrend: trend,
		ByBuilding:  byBuilding,
	})
}

// EnergyStats returns consumption and solar generation series plus the
// energy-source ratio for a year.
// @Summary Public energy statistics
// @Tags public-stats
// @Produce json
// @Param year query int false "year, defaults to the current year"
// @Success 200 {object} Response{data=EnergyStatsResponse}
// @Failure 500 {object} Response
// @Router /api/public/energy-stats [get]
func (h *StatsHandler) EnergyStats(c *gin.Context) {
	year := statsYear(c)
	svc := service.NewStatsService(database.DB)

	monthly, err := svc.MonthlyBreakdown(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}
	solarMonthly, err := svc.SolarMonthlyBreakdown(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}
	solarTotal, err := svc.SolarYearlyTotal(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}
	ratio, err := svc.EnergySourceRatio(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "statistics unavailable"))
		return
	}

	Success(c, EnergyStatsResponse{
		Year:             year,
		Monthly:          monthly,
		SolarMonthly:     solarMonthly,
		SolarYearlyTotal: solarTotal,
		SourceRatio:      ratio,
	})
}
