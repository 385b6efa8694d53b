/*
dto.go - Request/response data structures

PURPOSE:
  JSON shapes for the HTTP surface. Storage records (claims.*) are
  serialized directly where their shape already fits; DTOs here exist
  where the wire shape adds computed fields (certificate status labels,
  dashboard counts) or accepts looser input (capacity free text,
  optional numbers).

SEE ALSO:
  - handlers.go: Handler implementations
  - server.go: Router setup
*/
package api

import (
	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/compensation"
	"github.com/sga/workcover-engine/docgen"
	"github.com/sga/workcover-engine/rtw"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// =============================================================================
// CASES
// =============================================================================

// CreateCaseRequest accepts a new case. Capacity arrives as operator
// free text and is normalised server-side.
type CreateCaseRequest struct {
	WorkerName        string   `json:"worker_name"`
	State             string   `json:"state"`
	Entity            string   `json:"entity"`
	Site              string   `json:"site"`
	ClaimNumber       string   `json:"claim_number"`
	DateOfInjury      string   `json:"date_of_injury"`
	InjuryDescription string   `json:"injury_description"`
	ShiftStructure    string   `json:"shift_structure"`
	CurrentCapacity   string   `json:"current_capacity"`
	PIAWE             *float64 `json:"piawe"`
	ReductionRate     string   `json:"reduction_rate"`
	Priority          string   `json:"priority"`
	Strategy          string   `json:"strategy"`
	NextAction        string   `json:"next_action"`
	Notes             string   `json:"notes"`
}

// UpdateCaseRequest carries partial case updates; nil means unchanged.
type UpdateCaseRequest struct {
	CurrentCapacity *string  `json:"current_capacity"`
	Priority        *string  `json:"priority"`
	Status          *string  `json:"status"`
	PIAWE           *float64 `json:"piawe"`
	ReductionRate   *string  `json:"reduction_rate"`
	Strategy        *string  `json:"strategy"`
	NextAction      *string  `json:"next_action"`
	Notes           *string  `json:"notes"`
	ShiftStructure  *string  `json:"shift_structure"`
}

// CertificateDTO is a certificate with its evaluated status attached.
type CertificateDTO struct {
	claims.Certificate
	Status      claims.StatusKind `json:"status"`
	StatusLabel string            `json:"status_label"`
	Days        int               `json:"days"`
}

// CaseCertificateDTO is the tracker row: certificate, worker, status.
type CaseCertificateDTO struct {
	claims.CaseCertificate
	Status      claims.StatusKind `json:"status"`
	StatusLabel string            `json:"status_label"`
	Days        int               `json:"days"`
}

// TrackerResponse is the COC tracker view with its totals strip.
type TrackerResponse struct {
	Certificates []CaseCertificateDTO      `json:"certificates"`
	Totals       map[claims.StatusKind]int `json:"totals"`
}

// CaseDetailResponse is everything the case page shows.
type CaseDetailResponse struct {
	Case         *claims.Case           `json:"case"`
	Certificates []CertificateDTO       `json:"certificates"`
	Checklist    []claims.ChecklistItem `json:"checklist"`
	Termination  *claims.Termination    `json:"termination,omitempty"`
	Payroll      []claims.PayrollEntry  `json:"payroll"`
	Documents    []claims.Document      `json:"documents"`
	Activity     []claims.ActivityEntry `json:"activity"`
}

// =============================================================================
// CERTIFICATES / TERMINATIONS
// =============================================================================

type AddCertificateRequest struct {
	CertFrom    string   `json:"cert_from"`
	CertTo      string   `json:"cert_to"`
	Capacity    string   `json:"capacity"`
	DaysPerWeek *int     `json:"days_per_week"`
	HoursPerDay *float64 `json:"hours_per_day"`
	Notes       string   `json:"notes"`
}

type CreateTerminationRequest struct {
	CaseID          string `json:"case_id"`
	TerminationType string `json:"termination_type"`
	ApprovedBy      string `json:"approved_by"`
	ApprovedDate    string `json:"approved_date"`
	AssignedTo      string `json:"assigned_to"`
	Notes           string `json:"notes"`
}

type UpdateTerminationRequest struct {
	Status           *string `json:"status"`
	LetterDrafted    *bool   `json:"letter_drafted"`
	LetterSent       *bool   `json:"letter_sent"`
	ResponseReceived *bool   `json:"response_received"`
	AssignedTo       *string `json:"assigned_to"`
	Notes            *string `json:"notes"`
}

// =============================================================================
// COMPENSATION
// =============================================================================

// CalculatorRequest is a standalone computation; nothing persists.
type CalculatorRequest struct {
	PIAWE         float64 `json:"piawe"`
	ReductionRate string  `json:"reduction_rate"` // "95%", "80%"
	Earnings      float64 `json:"earnings"`
	DaysAbsent    int     `json:"days_absent"`
	BackPay       float64 `json:"back_pay"`
}

// CalculatorResponse reports the computed figures rounded for display.
// Full precision is internal; two places is the payment boundary.
type CalculatorResponse struct {
	Entitlement  string `json:"entitlement"`
	DailyRate    string `json:"daily_rate"`
	Compensation string `json:"compensation"`
	TopUp        string `json:"top_up"`
	Total        string `json:"total"`
}

// RecordPayrollRequest computes a pay period from the case's PIAWE and
// rate, then records the figures.
type RecordPayrollRequest struct {
	PeriodFrom  string  `json:"period_from"`
	PeriodTo    string  `json:"period_to"`
	DaysOff     int     `json:"days_off"`
	HoursWorked float64 `json:"hours_worked"`
	Earnings    float64 `json:"earnings"`
	BackPay     float64 `json:"back_pay"`
	Notes       string  `json:"notes"`
}

// RecordPayrollResponse returns the stored entry plus display figures.
type RecordPayrollResponse struct {
	Entry    *claims.PayrollEntry `json:"entry"`
	Computed CalculatorResponse   `json:"computed"`
}

// =============================================================================
// ALERTS / RTW / DOCUMENTS
// =============================================================================

// DashboardCounts are the dashboard header figures.
type DashboardCounts struct {
	ActiveCases         int `json:"active_cases"`
	NoCapacity          int `json:"no_capacity"`
	ModifiedDuties      int `json:"modified_duties"`
	PendingTerminations int `json:"pending_terminations"`
	COCExpired          int `json:"coc_expired"`
	COCMissing          int `json:"coc_missing"`
}

type AlertsResponse struct {
	Alerts []claims.Alert  `json:"alerts"`
	Counts DashboardCounts `json:"counts"`
}

// RTWScheduleResponse is the progressive schedule preview.
type RTWScheduleResponse struct {
	CaseID       claims.CaseID   `json:"case_id"`
	Capacity     claims.Capacity `json:"capacity"`
	CurrentHours float64         `json:"current_hours"`
	TargetHours  float64         `json:"target_hours"`
	Weeks        []rtw.Week      `json:"weeks"`
	DutyLevels   []rtw.DutyLevel `json:"duty_levels"`
}

// GenerateDocumentsRequest lists the documents to produce plus the
// optional operator-supplied detail merged into them.
type GenerateDocumentsRequest struct {
	Types    []docgen.DocType  `json:"types"`
	Medical  map[string]string `json:"medical"`
	Doctor   map[string]string `json:"doctor"`
	Incident map[string]string `json:"incident"`
}

type ChecklistUpdateRequest struct {
	DocType string `json:"doc_type"`
	Present bool   `json:"is_present"`
}

// displayFigures rounds a computed result for the wire.
func displayFigures(res compensation.Result) CalculatorResponse {
	return CalculatorResponse{
		Entitlement:  res.Entitlement.StringFixedBank(2),
		DailyRate:    res.DailyRate.StringFixedBank(2),
		Compensation: res.Compensation.StringFixedBank(2),
		TopUp:        res.TopUp.StringFixedBank(2),
		Total:        res.Total.StringFixedBank(2),
	}
}
