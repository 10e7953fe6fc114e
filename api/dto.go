/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external API contract:
  quantities cross the wire as float64, dates as ISO strings, priorities
  and statuses as their display strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the ingest boundary, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model these mirror
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/labor-analytics/engine"
)

// =============================================================================
// SHIFT / ROSTER TYPES
// =============================================================================

// ShiftDTO represents a shift record in requests and responses.
type ShiftDTO struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	Agency         string  `json:"agency"`
	CostCentre     string  `json:"cost_centre,omitempty"`
	Date           string  `json:"date"`
	HoursWorked    float64 `json:"hours_worked"`
	NightShift     bool    `json:"night_shift"`
	HourlyRate     float64 `json:"hourly_rate"`
}

// EmployeeDTO represents a roster record.
type EmployeeDTO struct {
	EmployeeNumber string  `json:"employee_number"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	Agency         string  `json:"agency"`
	CostCentre     string  `json:"cost_centre,omitempty"`
	HourlyRate     float64 `json:"hourly_rate"`
	BillRate       float64 `json:"bill_rate,omitempty"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// CostBreakdownDTO is the pay decomposition for one shift.
type CostBreakdownDTO struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	Agency       string  `json:"agency"`
	CostCentre   string  `json:"cost_centre,omitempty"`
	Date         string  `json:"date"`
	HourlyRate   float64 `json:"hourly_rate"`

	RegularHours    float64 `json:"regular_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	NightShiftHours float64 `json:"night_shift_hours"`
	RegularCost     float64 `json:"regular_cost"`
	OvertimeCost    float64 `json:"overtime_cost"`
	NightAllowance  float64 `json:"night_allowance"`
	TotalCost       float64 `json:"total_cost"`
}

// BucketDTO is a lost-hours rollup for one grouping key.
type BucketDTO struct {
	LostHours float64 `json:"lost_hours"`
	LostCost  float64 `json:"lost_cost"`
	Employees int     `json:"employees"`
}

// DepartmentBucketDTO additionally carries the department's own hour
// totals and efficiency.
type DepartmentBucketDTO struct {
	BucketDTO
	ScheduledHours float64 `json:"scheduled_hours"`
	ActualHours    float64 `json:"actual_hours"`
	Efficiency     float64 `json:"efficiency"`
}

// LostHoursEntryDTO is one deficient shift in the detail list.
type LostHoursEntryDTO struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	Agency         string  `json:"agency"`
	CostCentre     string  `json:"cost_centre,omitempty"`
	Date           string  `json:"date"`
	HourlyRate     float64 `json:"hourly_rate"`
	ScheduledHours float64 `json:"scheduled_hours"`
	ActualHours    float64 `json:"actual_hours"`
	LostHours      float64 `json:"lost_hours"`
	LostCost       float64 `json:"lost_cost"`
	Efficiency     float64 `json:"efficiency"`
	Status         string  `json:"status"`
}

// AlertDTO flags one shift exceeding the lost-hours trigger.
type AlertDTO struct {
	Type       string  `json:"type"`
	Employee   string  `json:"employee"`
	Department string  `json:"department"`
	Date       string  `json:"date"`
	LostHours  float64 `json:"lost_hours"`
	Cost       float64 `json:"cost"`
	Severity   string  `json:"severity"`
}

// EfficiencyDTO carries overall and per-department ratios.
type EfficiencyDTO struct {
	TotalScheduledHours float64            `json:"total_scheduled_hours"`
	TotalActualHours    float64            `json:"total_actual_hours"`
	Overall             float64            `json:"overall"`
	ByDepartment        map[string]float64 `json:"by_department"`
}

// LostHoursReportDTO is the full rollup response.
type LostHoursReportDTO struct {
	TotalLostHours float64                        `json:"total_lost_hours"`
	TotalLostCost  float64                        `json:"total_lost_cost"`
	ByDepartment   map[string]DepartmentBucketDTO `json:"by_department"`
	ByAgency       map[string]BucketDTO           `json:"by_agency"`
	ByCostCentre   map[string]BucketDTO           `json:"by_cost_centre"`
	ByDate         map[string]BucketDTO           `json:"by_date"`
	Entries        []LostHoursEntryDTO            `json:"entries"`
	Alerts         []AlertDTO                     `json:"alerts"`
	Efficiency     EfficiencyDTO                  `json:"efficiency"`
}

// RecommendationDTO is one remediation action.
type RecommendationDTO struct {
	Type              string  `json:"type"`
	Subject           string  `json:"subject"`
	Priority          string  `json:"priority"`
	Action            string  `json:"action"`
	CurrentEfficiency float64 `json:"current_efficiency,omitempty"`
	TargetEfficiency  float64 `json:"target_efficiency,omitempty"`
	PotentialSavings  float64 `json:"potential_savings,omitempty"`
	Department        string  `json:"department,omitempty"`
	LostHours         float64 `json:"lost_hours,omitempty"`
	AverageLostHours  float64 `json:"average_lost_hours,omitempty"`
	Cost              float64 `json:"cost,omitempty"`
}

// TrendPointDTO is one calendar date in the trend series.
type TrendPointDTO struct {
	Date               string  `json:"date"`
	LostHours          float64 `json:"lost_hours"`
	LostCost           float64 `json:"lost_cost"`
	Employees          int     `json:"employees"`
	Departments        int     `json:"departments"`
	AveragePerEmployee float64 `json:"average_per_employee"`
	Efficiency         float64 `json:"efficiency"`
	Direction          string  `json:"direction"`
}

// EmployeeSummaryDTO is one employee's condensed lost-hours record.
type EmployeeSummaryDTO struct {
	EmployeeID        string  `json:"employee_id"`
	ShiftsWorked      int     `json:"shifts_worked"`
	TotalLostHours    float64 `json:"total_lost_hours"`
	TotalLostCost     float64 `json:"total_lost_cost"`
	AverageEfficiency float64 `json:"average_efficiency"`
	RecentLostHours   float64 `json:"recent_lost_hours"`
	Trend             string  `json:"trend"`
}

// GroupCostDTO is a headcount-and-cost rollup for one roster grouping key.
type GroupCostDTO struct {
	Count     int     `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

// WorkforceAnalysisDTO is the roster-level weekly cost projection.
type WorkforceAnalysisDTO struct {
	TotalEmployees    int                     `json:"total_employees"`
	TotalWeeklyCost   float64                 `json:"total_weekly_cost"`
	AverageHourlyRate float64                 `json:"average_hourly_rate"`
	ByPosition        map[string]GroupCostDTO `json:"by_position"`
	ByDepartment      map[string]GroupCostDTO `json:"by_department"`
	ByAgency          map[string]GroupCostDTO `json:"by_agency"`
}

// RulesDTO exposes the active rule set.
type RulesDTO struct {
	PaidHoursPerShift       float64 `json:"paid_hours_per_shift"`
	OvertimeRate            float64 `json:"overtime_rate"`
	NightShiftAllowanceRate float64 `json:"night_shift_allowance_rate"`
	StandardHoursPerWeek    float64 `json:"standard_hours_per_week"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func dec(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toShiftRecord(dto ShiftDTO) engine.ShiftRecord {
	return engine.ShiftRecord{
		EmployeeID:     dto.EmployeeID,
		EmployeeNumber: dto.EmployeeNumber,
		EmployeeName:   dto.EmployeeName,
		Department:     dto.Department,
		Agency:         dto.Agency,
		CostCentre:     dto.CostCentre,
		Date:           engine.ParseDate(dto.Date),
		HoursWorked:    decimal.NewFromFloat(dto.HoursWorked),
		NightShift:     dto.NightShift,
		HourlyRate:     decimal.NewFromFloat(dto.HourlyRate),
	}
}

func toShiftDTO(s engine.ShiftRecord) ShiftDTO {
	return ShiftDTO{
		EmployeeID:     s.EmployeeID,
		EmployeeNumber: s.EmployeeNumber,
		EmployeeName:   s.EmployeeName,
		Department:     s.Department,
		Agency:         s.Agency,
		CostCentre:     s.CostCentre,
		Date:           s.Date.Key(),
		HoursWorked:    dec(s.HoursWorked),
		NightShift:     s.NightShift,
		HourlyRate:     dec(s.HourlyRate),
	}
}

func toEmployeeDTO(e engine.Employee) EmployeeDTO {
	return EmployeeDTO{
		EmployeeNumber: e.EmployeeNumber,
		Name:           e.Name,
		Position:       e.Position,
		Department:     e.Department,
		Agency:         e.Agency,
		CostCentre:     e.CostCentre,
		HourlyRate:     dec(e.HourlyRate),
		BillRate:       dec(e.BillRate),
	}
}

func toCostBreakdownDTO(b engine.CostBreakdown) CostBreakdownDTO {
	return CostBreakdownDTO{
		EmployeeID:      b.EmployeeID,
		EmployeeName:    b.EmployeeName,
		Department:      b.Department,
		Agency:          b.Agency,
		CostCentre:      b.CostCentre,
		Date:            b.Date.Key(),
		HourlyRate:      dec(b.HourlyRate),
		RegularHours:    dec(b.RegularHours),
		OvertimeHours:   dec(b.OvertimeHours),
		NightShiftHours: dec(b.NightShiftHours),
		RegularCost:     dec(b.RegularCost),
		OvertimeCost:    dec(b.OvertimeCost),
		NightAllowance:  dec(b.NightAllowance),
		TotalCost:       dec(b.TotalCost),
	}
}

func toReportDTO(r *engine.LostHoursReport) LostHoursReportDTO {
	dto := LostHoursReportDTO{
		TotalLostHours: dec(r.TotalLostHours),
		TotalLostCost:  dec(r.TotalLostCost),
		ByDepartment:   make(map[string]DepartmentBucketDTO, len(r.ByDepartment)),
		ByAgency:       toBucketDTOs(r.ByAgency),
		ByCostCentre:   toBucketDTOs(r.ByCostCentre),
		ByDate:         toBucketDTOs(r.ByDate),
		Entries:        make([]LostHoursEntryDTO, len(r.Entries)),
		Alerts:         make([]AlertDTO, len(r.Alerts)),
		Efficiency: EfficiencyDTO{
			TotalScheduledHours: dec(r.Efficiency.TotalScheduledHours),
			TotalActualHours:    dec(r.Efficiency.TotalActualHours),
			Overall:             r.Efficiency.Overall,
			ByDepartment:        r.Efficiency.ByDepartment,
		},
	}
	for dept, b := range r.ByDepartment {
		dto.ByDepartment[dept] = DepartmentBucketDTO{
			BucketDTO: BucketDTO{
				LostHours: dec(b.LostHours),
				LostCost:  dec(b.LostCost),
				Employees: b.Employees,
			},
			ScheduledHours: dec(b.ScheduledHours),
			ActualHours:    dec(b.ActualHours),
			Efficiency:     b.Efficiency,
		}
	}
	for i, e := range r.Entries {
		dto.Entries[i] = LostHoursEntryDTO{
			EmployeeID:     e.EmployeeID,
			EmployeeNumber: e.EmployeeNumber,
			EmployeeName:   e.EmployeeName,
			Department:     e.Department,
			Agency:         e.Agency,
			CostCentre:     e.CostCentre,
			Date:           e.Date.Key(),
			HourlyRate:     dec(e.HourlyRate),
			ScheduledHours: dec(e.ScheduledHours),
			ActualHours:    dec(e.ActualHours),
			LostHours:      dec(e.LostHours),
			LostCost:       dec(e.LostCost),
			Efficiency:     e.Efficiency,
			Status:         string(e.Status),
		}
	}
	for i, a := range r.Alerts {
		dto.Alerts[i] = AlertDTO{
			Type:       string(a.Type),
			Employee:   a.Employee,
			Department: a.Department,
			Date:       a.Date.Key(),
			LostHours:  dec(a.LostHours),
			Cost:       dec(a.Cost),
			Severity:   string(a.Severity),
		}
	}
	return dto
}

func toBucketDTOs(m map[string]*engine.AggregateBucket) map[string]BucketDTO {
	out := make(map[string]BucketDTO, len(m))
	for key, b := range m {
		out[key] = BucketDTO{
			LostHours: dec(b.LostHours),
			LostCost:  dec(b.LostCost),
			Employees: b.Employees,
		}
	}
	return out
}

func toRecommendationDTOs(recs []engine.Recommendation) []RecommendationDTO {
	dtos := make([]RecommendationDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = RecommendationDTO{
			Type:              string(rec.Type),
			Subject:           rec.Subject,
			Priority:          rec.Priority.String(),
			Action:            rec.Action,
			CurrentEfficiency: rec.CurrentEfficiency,
			TargetEfficiency:  rec.TargetEfficiency,
			PotentialSavings:  dec(rec.PotentialSavings),
			Department:        rec.Department,
			LostHours:         dec(rec.LostHours),
			AverageLostHours:  dec(rec.AverageLostHours),
			Cost:              dec(rec.Cost),
		}
	}
	return dtos
}

func toTrendPointDTOs(points []engine.TrendPoint) []TrendPointDTO {
	dtos := make([]TrendPointDTO, len(points))
	for i, p := range points {
		dtos[i] = TrendPointDTO{
			Date:               p.Date.Key(),
			LostHours:          dec(p.LostHours),
			LostCost:           dec(p.LostCost),
			Employees:          p.Employees,
			Departments:        p.Departments,
			AveragePerEmployee: dec(p.AveragePerEmployee),
			Efficiency:         p.Efficiency,
			Direction:          string(p.Direction),
		}
	}
	return dtos
}

func toWorkforceDTO(a *engine.WorkforceAnalysis) WorkforceAnalysisDTO {
	return WorkforceAnalysisDTO{
		TotalEmployees:    a.TotalEmployees,
		TotalWeeklyCost:   dec(a.TotalWeeklyCost),
		AverageHourlyRate: dec(a.AverageHourlyRate),
		ByPosition:        toGroupCostDTOs(a.ByPosition),
		ByDepartment:      toGroupCostDTOs(a.ByDepartment),
		ByAgency:          toGroupCostDTOs(a.ByAgency),
	}
}

func toGroupCostDTOs(m map[string]*engine.GroupCost) map[string]GroupCostDTO {
	out := make(map[string]GroupCostDTO, len(m))
	for key, g := range m {
		out[key] = GroupCostDTO{Count: g.Count, TotalCost: dec(g.TotalCost)}
	}
	return out
}

func toRulesDTO(rules engine.Rules) RulesDTO {
	return RulesDTO{
		PaidHoursPerShift:       dec(rules.PaidHoursPerShift),
		OvertimeRate:            dec(rules.OvertimeRate),
		NightShiftAllowanceRate: dec(rules.NightShiftAllowanceRate),
		StandardHoursPerWeek:    dec(rules.StandardHoursPerWeek),
	}
}
