package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var energyExportHeader = []string{"Building", "Year", "Month", "Electricity (kWh)", "Gas (m3)", "Water (ton)"}
var solarExportHeader = []string{"Building", "Year", "Month", "Generation (kWh)", "Capacity (kW)"}

// ExportHandler serves dataset downloads and bulk CSV imports.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ImportSummary reports the outcome of a bulk upload. Failed rows carry a
// line-numbered message so the operator can fix the sheet and retry.
type ImportSummary struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

func exportRows(c *gin.Context, dataset string) (interface{}, error) {
	switch dataset {
	case "energy":
		var rows []models.EnergyData
		query := database.DB.Model(&models.EnergyData{})
		if y := c.Query("year"); y != "" {
			if year, err := strconv.Atoi(y); err == nil {
				query = query.Where("year = ?", year)
			}
		}
		err := query.Order("year ASC, month ASC, building_name ASC").Find(&rows).Error
		return rows, err
	case "solar":
		var rows []models.SolarData
		query := database.DB.Model(&models.SolarData{})
		if y := c.Query("year"); y != "" {
			if year, err := strconv.Atoi(y); err == nil {
				query = query.Where("year = ?", year)
			}
		}
		err := query.Order("year ASC, month ASC, building_name ASC").Find(&rows).Error
		return rows, err
	default:
		return nil, fmt.Errorf("unknown dataset %q", dataset)
	}
}

// ExportCSV streams a dataset as UTF-8 CSV. The BOM keeps spreadsheet
// applications from mangling non-ASCII building names.
// @Summary Export energy data as CSV
// @Tags export
// @Produce text/csv
// @Param year query int false "year filter"
// @Success 200 {string} string "csv body"
// @Router /api/energy-data/export/csv [get]
func (h *ExportHandler) ExportCSV(dataset string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.exportCSV(c, dataset)
	}
}

func (h *ExportHandler) exportCSV(c *gin.Context, dataset string) {
	rows, err := exportRows(c, dataset)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load export data"))
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", dataset, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	switch data := rows.(type) {
	case []models.EnergyData:
		w.Write(energyExportHeader)
		for _, r := range data {
			w.Write([]string{
				r.BuildingName,
				strconv.Itoa(r.Year),
				strconv.Itoa(r.Month),
				strconv.FormatFloat(r.Electricity, 'f', 2, 64),
				strconv.FormatFloat(r.Gas, 'f', 2, 64),
				strconv.FormatFloat(r.Water, 'f', 2, 64),
			})
		}
	case []models.SolarData:
		w.Write(solarExportHeader)
		for _, r := range data {
			w.Write([]string{
				r.BuildingName,
				strconv.Itoa(r.Year),
				strconv.Itoa(r.Month),
				strconv.FormatFloat(r.Generation, 'f', 2, 64),
				strconv.FormatFloat(r.Capacity, 'f', 2, 64),
			})
		}
	}
}

// ExportExcel streams a dataset as a styled xlsx workbook.
// @Summary Export energy data as Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "year filter"
// @Success 200 {string} string "xlsx body"
// @Router /api/energy-data/export/excel [get]
func (h *ExportHandler) ExportExcel(dataset string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.exportExcel(c, dataset)
	}
}

func (h *ExportHandler) exportExcel(c *gin.Context, dataset string) {
	rows, err := exportRows(c, dataset)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load export data"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"16A34A"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	var header []string
	switch data := rows.(type) {
	case []models.EnergyData:
		header = energyExportHeader
		for i, r := range data {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			f.SetSheetRow(sheet, cell, &[]interface{}{
				r.BuildingName, r.Year, r.Month, r.Electricity, r.Gas, r.Water,
			})
		}
	case []models.SolarData:
		header = solarExportHeader
		for i, r := range data {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			f.SetSheetRow(sheet, cell, &[]interface{}{
				r.BuildingName, r.Year, r.Month, r.Generation, r.Capacity,
			})
		}
	}

	for i, title := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	endCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", endCol, headerStyle)
	f.SetColWidth(sheet, "A", "A", 24)
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	f.SetColWidth(sheet, "B", lastCol, 16)

	filename := fmt.Sprintf("%s_%s.xlsx", dataset, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to write workbook"))
	}
}

// ImportCSV bulk-loads a dataset from an uploaded CSV. Each row is
// validated and upserted independently; one bad row never aborts the rest.
// @Summary Import energy data from CSV
// @Tags export
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "csv file"
// @Success 200 {object} Response{data=ImportSummary}
// @Failure 400 {object} Response
// @Router /api/energy-data/import [post]
func (h *ExportHandler) ImportCSV(dataset string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.importCSV(c, dataset)
	}
}

func (h *ExportHandler) importCSV(c *gin.Context, dataset string) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "cannot read file"))
		return
	}
	defer file.Close()

	reader := csv.NewReader(stripBOM(file))
	reader.FieldsPerRecord = -1

	var summary ImportSummary
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.Total++
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: malformed row", line))
			continue
		}
		if line == 1 && looksLikeHeader(record) {
			continue
		}
		summary.Total++
		if msg := importRow(dataset, record); msg != "" {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %s", line, msg))
			continue
		}
		summary.Imported++
	}

	SuccessWithMessage(c, "import finished", summary)
}

// looksLikeHeader treats a first row whose year column is not numeric as a
// header row.
func looksLikeHeader(record []string) bool {
	if len(record) < 2 {
		return true
	}
	_, err := strconv.Atoi(strings.TrimSpace(record[1]))
	return err != nil
}

func importRow(dataset string, record []string) string {
	want := 6
	if dataset == "solar" {
		want = 5
	}
	if len(record) < want {
		return fmt.Sprintf("expected %d columns, got %d", want, len(record))
	}

	building := strings.TrimSpace(record[0])
	year, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return "year is not a number"
	}
	month, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return "month is not a number"
	}

	values := make([]float64, 0, want-3)
	for _, raw := range record[3:want] {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return "measure is not a number"
		}
		values = append(values, v)
	}

	ptrs := make([]*float64, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if msg := validateEnergyKey(building, year, month, ptrs...); msg != "" {
		return msg
	}

	if dataset == "energy" {
		return upsertEnergyRow(building, year, month, values[0], values[1], values[2])
	}
	return upsertSolarRow(building, year, month, values[0], values[1])
}

func upsertEnergyRow(building string, year, month int, electricity, gas, water float64) string {
	var existing models.EnergyData
	err := database.DB.Where("building_name = ? AND year = ? AND month = ?", building, year, month).
		First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"electricity": electricity, "gas": gas, "water": water}
		if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
			return "database write failed"
		}
	case err == gorm.ErrRecordNotFound:
		row := models.EnergyData{
			BuildingName: building, Year: year, Month: month,
			Electricity: electricity, Gas: gas, Water: water,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			return "database write failed"
		}
	default:
		return "database query failed"
	}
	return ""
}

func upsertSolarRow(building string, year, month int, generation, capacity float64) string {
	var existing models.SolarData
	err := database.DB.Where("building_name = ? AND year = ? AND month = ?", building, year, month).
		First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"generation": generation, "capacity": capacity}
		if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
			return "database write failed"
		}
	case err == gorm.ErrRecordNotFound:
		row := models.SolarData{
			BuildingName: building, Year: year, Month: month,
			Generation: generation, Capacity: capacity,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			return "database write failed"
		}
	default:
		return "database query failed"
	}
	return ""
}

// stripBOM drops a leading UTF-8 byte order mark so the first header cell
// parses cleanly.
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(r, buf)
	if n == 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf[:n])), r)
}
