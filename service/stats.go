package service

import (
	"math"
	"sort"

	"gorm.io/gorm"
)

// Greenhouse-gas emission factors for campus consumption, in kgCO2eq per
// unit consumed (kWh of electricity, m3 of city gas).
const (
	EmissionFactorElectricity = 0.4781
	EmissionFactorGas         = 2.176
)

// OtherSourcePercent is the fixed share reported for minor energy sources
// (steam, district heat) in the source-ratio breakdown. It is a constant by
// decision, not a computed residual.
const OtherSourcePercent = 2.0

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Emission converts electricity and gas consumption into kgCO2eq, rounded
// to two decimals.
func Emission(electricity, gas float64) float64 {
	return Round2(electricity*EmissionFactorElectricity + gas*EmissionFactorGas)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ChangePercent returns the year-over-year change in percent, rounded to
// one decimal. With a zero previous value the change is undefined; the
// second return is false and the percent is 0 so JSON encoding never sees a
// non-finite float.
func ChangePercent(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return Round1((current - previous) / previous * 100), true
}

// YearTotals is the summed consumption of one calendar year.
type YearTotals struct {
	Year        int     `json:"year"`
	Electricity float64 `json:"electricity"`
	Gas         float64 `json:"gas"`
	Water       float64 `json:"water"`
	Emission    float64 `json:"emission"`
}

// YearComparison is the current year against the previous one.
type YearComparison struct {
	Current       YearTotals `json:"current"`
	Previous      YearTotals `json:"previous"`
	ChangePercent float64    `json:"change_percent"`
	HasPrevious   bool       `json:"has_previous"`
}

// MonthTotals is the summed consumption of one month.
type MonthTotals struct {
	Month       int     `json:"month"`
	Label       string  `json:"label"`
	Electricity float64 `json:"electricity"`
	Gas         float64 `json:"gas"`
	Water       float64 `json:"water"`
	Emission    float64 `json:"emission"`
}

// BuildingTotals is the summed consumption of one building.
type BuildingTotals struct {
	BuildingName string  `json:"building_name"`
	Electricity  float64 `json:"electricity"`
	Gas          float64 `json:"gas"`
	Water        float64 `json:"water"`
	Emission     float64 `json:"emission"`
}

// SourceRatio is the share of each energy source in percent. The three real
// sources are computed against their combined total; Other is the fixed
// OtherSourcePercent bucket.
type SourceRatio struct {
	Electricity float64 `json:"electricity"`
	Gas         float64 `json:"gas"`
	Solar       float64 `json:"solar"`
	Other       float64 `json:"other"`
}

// StatsService computes derived energy statistics. Every method is a
// read-only sequence of independent queries; a storage error is returned
// as-is for the handler to report generically.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a stats service over the given handle.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type energySums struct {
	Electricity float64
	Gas         float64
	Water       float64
}

func (s *StatsService) sumYear(year int) (energySums, error) {
	var sums energySums
	err := s.db.Table("energy_data").
		Select("COALESCE(SUM(electricity), 0) AS electricity, COALESCE(SUM(gas), 0) AS gas, COALESCE(SUM(water), 0) AS water").
		Where("year = ? AND deleted_at IS NULL", year).
		Scan(&sums).Error
	return sums, err
}

// CurrentVsPreviousYear sums consumption for year and year-1 and derives
// the emission change percentage. A missing previous year yields
// HasPrevious=false with ChangePercent 0.
func (s *StatsService) CurrentVsPreviousYear(year int) (YearComparison, error) {
	cur, err := s.sumYear(year)
	if err != nil {
		return YearComparison{}, err
	}
	prev, err := s.sumYear(year - 1)
	if err != nil {
		return YearComparison{}, err
	}

	cmp := YearComparison{
		Current: YearTotals{
			Year:        year,
			Electricity: cur.Electricity,
			Gas:         cur.Gas,
			Water:       cur.Water,
			Emission:    Emission(cur.Electricity, cur.Gas),
		},
		Previous: YearTotals{
			Year:        year - 1,
			Electricity: prev.Electricity,
			Gas:         prev.Gas,
			Water:       prev.Water,
			Emission:    Emission(prev.Electricity, prev.Gas),
		},
	}
	cmp.ChangePercent, cmp.HasPrevious = ChangePercent(cmp.Current.Emission, cmp.Previous.Emission)
	return cmp, nil
}

// MonthlyBreakdown returns a dense 12-entry series for the year. Months
// without rows contribute a zero entry, so chart consumers always get the
// full January to December axis.
func (s *StatsService) MonthlyBreakdown(year int) ([]MonthTotals, error) {
	type row struct {
		Month       int
		Electricity float64
		Gas         float64
		Water       float64
	}
	var rows []row
	err := s.db.Table("energy_data").
		Select("month, COALESCE(SUM(electricity), 0) AS electricity, COALESCE(SUM(gas), 0) AS gas, COALESCE(SUM(water), 0) AS water").
		Where("year = ? AND deleted_at IS NULL", year).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]MonthTotals, 12)
	for i := range out {
		out[i] = MonthTotals{Month: i + 1, Label: monthLabels[i]}
	}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		e := &out[r.Month-1]
		e.Electricity = r.Electricity
		e.Gas = r.Gas
		e.Water = r.Water
		e.Emission = Emission(r.Electricity, r.Gas)
	}
	return out, nil
}

// YearlyTrend returns per-year sums ascending. Years without rows do not
// appear; there is no zero-filling here.
func (s *StatsService) YearlyTrend() ([]YearTotals, error) {
	type row struct {
		Year        int
		Electricity float64
		Gas         float64
		Water       float64
	}
	var rows []row
	err := s.db.Table("energy_data").
		Select("year, COALESCE(SUM(electricity), 0) AS electricity, COALESCE(SUM(gas), 0) AS gas, COALESCE(SUM(water), 0) AS water").
		Where("deleted_at IS NULL").
		Group("year").
		Order("year ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]YearTotals, 0, len(rows))
	for _, r := range rows {
		out = append(out, YearTotals{
			Year:        r.Year,
			Electricity: r.Electricity,
			Gas:         r.Gas,
			Water:       r.Water,
			Emission:    Emission(r.Electricity, r.Gas),
		})
	}
	return out, nil
}

// PerBuildingBreakdown returns per-building sums for the year, sorted by
// emission descending.
func (s *StatsService) PerBuildingBreakdown(year int) ([]BuildingTotals, error) {
	type row struct {
		BuildingName string
		Electricity  float64
		Gas          float64
		Water        float64
	}
	var rows []row
	err := s.db.Table("energy_data").
		Select("building_name, COALESCE(SUM(electricity), 0) AS electricity, COALESCE(SUM(gas), 0) AS gas, COALESCE(SUM(water), 0) AS water").
		Where("year = ? AND deleted_at IS NULL", year).
		Group("building_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]BuildingTotals, 0, len(rows))
	for _, r := range rows {
		out = append(out, BuildingTotals{
			BuildingName: r.BuildingName,
			Electricity:  r.Electricity,
			Gas:          r.Gas,
			Water:        r.Water,
			Emission:     Emission(r.Electricity, r.Gas),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Emission > out[j].Emission
	})
	return out, nil
}

// SolarYearlyTotal sums photovoltaic generation across all buildings for
// the year.
func (s *StatsService) SolarYearlyTotal(year int) (float64, error) {
	var total float64
	err := s.db.Table("solar_data").
		Select("COALESCE(SUM(generation), 0)").
		Where("year = ? AND deleted_at IS NULL", year).
		Scan(&total).Error
	return total, err
}

// SolarMonth is the summed generation of one month.
type SolarMonth struct {
	Month      int     `json:"month"`
	Label      string  `json:"label"`
	Generation float64 `json:"generation"`
}

// SolarMonthlyBreakdown returns a dense 12-entry generation series for the
// year, zero-filled like MonthlyBreakdown.
func (s *StatsService) SolarMonthlyBreakdown(year int) ([]SolarMonth, error) {
	type row struct {
		Month      int
		Generation float64
	}
	var rows []row
	err := s.db.Table("solar_data").
		Select("month, COALESCE(SUM(generation), 0) AS generation").
		Where("year = ? AND deleted_at IS NULL", year).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]SolarMonth, 12)
	for i := range out {
		out[i] = SolarMonth{Month: i + 1, Label: monthLabels[i]}
	}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		out[r.Month-1].Generation = r.Generation
	}
	return out, nil
}

// SourceRatioFor computes each source's share of the combined
// electricity+gas+solar total, rounded to one decimal, with the fixed Other
// bucket. A zero combined total yields all-zero real shares.
func SourceRatioFor(electricity, gas, solar float64) SourceRatio {
	ratio := SourceRatio{Other: OtherSourcePercent}
	total := electricity + gas + solar
	if total == 0 {
		return ratio
	}
	ratio.Electricity = Round1(electricity / total * 100)
	ratio.Gas = Round1(gas / total * 100)
	ratio.Solar = Round1(solar / total * 100)
	return ratio
}

// EnergySourceRatio computes the source-ratio breakdown for a year.
func (s *StatsService) EnergySourceRatio(year int) (SourceRatio, error) {
	sums, err := s.sumYear(year)
	if err != nil {
		return SourceRatio{}, err
	}
	solar, err := s.SolarYearlyTotal(year)
	if err != nil {
		return SourceRatio{}, err
	}
	return SourceRatioFor(sums.Electricity, sums.Gas, solar), nil
}
