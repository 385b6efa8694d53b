/*
Package claims holds the workcover case-management domain model.

PURPOSE:
  This package contains the record types and enumerations shared by the
  store, the API layer and the calculators: cases, certificates of
  capacity, termination proceedings, payroll entries, the document
  checklist and the activity log.

KEY CONCEPTS IN THIS FILE (types.go):
  - Case: an injured worker's claim record
  - Certificate: a Certificate of Capacity (COC) with a validity period
  - Termination: a termination proceeding with a 3-step checklist
  - PayrollEntry: one immutable compensation calculation per pay period
  - Capacity / ReductionRate / Priority: typed enumerations with
    parsers for the free-text values that arrive at the edges

DESIGN PRINCIPLES:
  1. Typed enums everywhere inside the system; free text is parsed once
     at the boundary (ParseCapacity and friends).
  2. Money is decimal.Decimal, never float64. PIAWE is nullable and
     modeled as decimal.NullDecimal.
  3. Records are mutated through the store only; payroll entries and
     activity entries are append-only.

SEE ALSO:
  - status.go: certificate status evaluation
  - alerts.go: dashboard alert aggregation
  - compensation/: the PIAWE entitlement calculator
*/
package claims

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage format for all calendar dates.
const DateLayout = "2006-01-02"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CaseID string
type CertificateID string
type TerminationID string

// =============================================================================
// CAPACITY
// =============================================================================

// Capacity is a worker's certified work capacity.
type Capacity string

const (
	CapacityNone      Capacity = "No Capacity"
	CapacityModified  Capacity = "Modified Duties"
	CapacityFull      Capacity = "Full Capacity"
	CapacityClearance Capacity = "Clearance"
	CapacityUncertain Capacity = "Uncertain"
	CapacityUnknown   Capacity = "Unknown"
)

// ParseCapacity maps a free-text capacity label onto the enum. Matching
// is case-insensitive substring search, so near-miss labels from
// certificates ("no current capacity", "modified duties only") still
// land on the right value. Unrecognized text maps to CapacityUnknown.
func ParseCapacity(label string) Capacity {
	s := strings.ToLower(strings.TrimSpace(label))
	switch {
	case s == "":
		return CapacityUnknown
	case strings.Contains(s, "no capacity"), strings.Contains(s, "no current capacity"):
		return CapacityNone
	case strings.Contains(s, "modified"):
		return CapacityModified
	case strings.Contains(s, "clearance") || strings.Contains(s, "cleared"):
		return CapacityClearance
	case strings.Contains(s, "full"):
		return CapacityFull
	case strings.Contains(s, "uncertain"):
		return CapacityUncertain
	default:
		return CapacityUnknown
	}
}

// DutyLevel maps capacity to a suitable-duties level (1-4). The mapping
// is total: anything that is not clearly no-capacity or full goes to
// level 2 as the conservative default.
func (c Capacity) DutyLevel() int {
	switch c {
	case CapacityNone:
		return 1
	case CapacityFull, CapacityClearance:
		return 4
	default:
		return 2
	}
}

// IsFull reports whether the worker requires no further support. Cases
// at full capacity are excluded from missing-COC and missing-PIAWE
// alerting.
func (c Capacity) IsFull() bool {
	return c == CapacityFull || c == CapacityClearance
}

// =============================================================================
// REDUCTION RATE
// =============================================================================

// ReductionRate is the statutory entitlement tier: 95% for weeks 1-13,
// 80% for weeks 14 onward, or N/A when no entitlement applies.
type ReductionRate string

const (
	Rate95 ReductionRate = "95%"
	Rate80 ReductionRate = "80%"
	RateNA ReductionRate = "N/A"
)

var (
	frac95 = decimal.NewFromFloat(0.95)
	frac80 = decimal.NewFromFloat(0.80)
)

// Fraction returns the rate as a decimal fraction. RateNA and any
// unrecognized value yield zero, which flows through the calculator as
// zero entitlement rather than an error.
func (r ReductionRate) Fraction() decimal.Decimal {
	switch r {
	case Rate95:
		return frac95
	case Rate80:
		return frac80
	default:
		return decimal.Zero
	}
}

func ParseReductionRate(s string) ReductionRate {
	switch strings.TrimSpace(s) {
	case "95%", "0.95":
		return Rate95
	case "80%", "0.80", "0.8":
		return Rate80
	default:
		return RateNA
	}
}

// =============================================================================
// PRIORITY AND STATUS
// =============================================================================

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return PriorityHigh
	case "LOW":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

type CaseStatus string

const (
	StatusActive         CaseStatus = "Active"
	StatusClosed         CaseStatus = "Closed"
	StatusPendingClosure CaseStatus = "Pending Closure"
)

// =============================================================================
// CASE
// =============================================================================

// Case is a claimant's record. Cases are created on intake, mutated by
// capacity updates, PIAWE entry and status changes, and never
// physically deleted.
type Case struct {
	ID                CaseID              `db:"id" json:"id"`
	WorkerName        string              `db:"worker_name" json:"worker_name"`
	State             string              `db:"state" json:"state"`
	Entity            string              `db:"entity" json:"entity"`
	Site              string              `db:"site" json:"site"`
	ClaimNumber       string              `db:"claim_number" json:"claim_number"`
	DateOfInjury      string              `db:"date_of_injury" json:"date_of_injury"`
	InjuryDescription string              `db:"injury_description" json:"injury_description"`
	ShiftStructure    string              `db:"shift_structure" json:"shift_structure"`
	CurrentCapacity   Capacity            `db:"current_capacity" json:"current_capacity"`
	PIAWE             decimal.NullDecimal `db:"piawe" json:"piawe"`
	ReductionRate     ReductionRate       `db:"reduction_rate" json:"reduction_rate"`
	Priority          Priority            `db:"priority" json:"priority"`
	Status            CaseStatus          `db:"status" json:"status"`
	Strategy          string              `db:"strategy" json:"strategy"`
	NextAction        string              `db:"next_action" json:"next_action"`
	Notes             string              `db:"notes" json:"notes"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at" json:"updated_at"`
}

// HasPIAWE reports whether a usable PIAWE figure is on record.
func (c *Case) HasPIAWE() bool {
	return c.PIAWE.Valid && c.PIAWE.Decimal.IsPositive()
}

// =============================================================================
// CERTIFICATE OF CAPACITY
// =============================================================================

// Certificate is a single COC. A case's certificates form a history
// ordered by CertTo descending; the head of that history is the
// current certificate and drives the case's capacity status.
//
// CertFrom/CertTo are stored as DateLayout strings: certificate dates
// arrive as operator-entered text and a malformed date must degrade to
// StatusInvalid rather than fail on load.
type Certificate struct {
	ID          CertificateID `db:"id" json:"id"`
	CaseID      CaseID        `db:"case_id" json:"case_id"`
	CertFrom    string        `db:"cert_from" json:"cert_from"`
	CertTo      string        `db:"cert_to" json:"cert_to"`
	Capacity    Capacity      `db:"capacity" json:"capacity"`
	DaysPerWeek *int          `db:"days_per_week" json:"days_per_week,omitempty"`
	HoursPerDay *float64      `db:"hours_per_day" json:"hours_per_day,omitempty"`
	Notes       string        `db:"notes" json:"notes"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// WeeklyHours returns the certified weekly hours, or 0 when the
// certificate has no usable schedule.
func (c *Certificate) WeeklyHours() float64 {
	if c.HoursPerDay == nil || c.DaysPerWeek == nil {
		return 0
	}
	return *c.HoursPerDay * float64(*c.DaysPerWeek)
}

// =============================================================================
// TERMINATION
// =============================================================================

type TerminationStatus string

const (
	TerminationPending    TerminationStatus = "Pending"
	TerminationInProgress TerminationStatus = "In Progress"
	TerminationCompleted  TerminationStatus = "Completed"
	TerminationCancelled  TerminationStatus = "Cancelled"
)

const (
	TerminationTypeInherent     = "Inherent Requirements"
	TerminationTypeShowCause    = "Show Cause"
	TerminationTypeShowInherent = "Show Cause / Inherent Requirements"
	TerminationTypeLossContract = "Loss of Contract"
	TerminationTypeOther        = "Other"
)

// Termination tracks a termination proceeding against a case. A case
// carries at most one termination record.
type Termination struct {
	ID               TerminationID     `db:"id" json:"id"`
	CaseID           CaseID            `db:"case_id" json:"case_id"`
	TerminationType  string            `db:"termination_type" json:"termination_type"`
	ApprovedBy       string            `db:"approved_by" json:"approved_by"`
	ApprovedDate     string            `db:"approved_date" json:"approved_date"`
	AssignedTo       string            `db:"assigned_to" json:"assigned_to"`
	Status           TerminationStatus `db:"status" json:"status"`
	LetterDrafted    bool              `db:"letter_drafted" json:"letter_drafted"`
	LetterSent       bool              `db:"letter_sent" json:"letter_sent"`
	ResponseReceived bool              `db:"response_received" json:"response_received"`
	CompletedDate    string            `db:"completed_date" json:"completed_date"`
	Notes            string            `db:"notes" json:"notes"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
}

// StepsDone counts completed checklist steps (0-3).
func (t *Termination) StepsDone() int {
	n := 0
	for _, done := range []bool{t.LetterDrafted, t.LetterSent, t.ResponseReceived} {
		if done {
			n++
		}
	}
	return n
}

// =============================================================================
// PAYROLL ENTRY
// =============================================================================

// PayrollEntry records one pay period's compensation figures: the
// inputs the calculation was run with and the computed outputs. Entries
// are append-only; corrections are made with a new entry, never by
// editing history.
type PayrollEntry struct {
	ID            string          `db:"id" json:"id"`
	CaseID        CaseID          `db:"case_id" json:"case_id"`
	PeriodFrom    string          `db:"period_from" json:"period_from"`
	PeriodTo      string          `db:"period_to" json:"period_to"`
	PIAWE         decimal.Decimal `db:"piawe" json:"piawe"`
	ReductionRate decimal.Decimal `db:"reduction_rate" json:"reduction_rate"`
	DaysOff       int             `db:"days_off" json:"days_off"`
	HoursWorked   float64         `db:"hours_worked" json:"hours_worked"`
	Wages         decimal.Decimal `db:"estimated_wages" json:"estimated_wages"`
	Compensation  decimal.Decimal `db:"compensation_payable" json:"compensation_payable"`
	TopUp         decimal.Decimal `db:"top_up" json:"top_up"`
	BackPay       decimal.Decimal `db:"back_pay_expenses" json:"back_pay_expenses"`
	Total         decimal.Decimal `db:"total_payable" json:"total_payable"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// =============================================================================
// DOCUMENT CHECKLIST
// =============================================================================

// ChecklistItem is a required document type with a present/absent flag.
type ChecklistItem struct {
	ID      string `db:"id" json:"id"`
	CaseID  CaseID `db:"case_id" json:"case_id"`
	DocType string `db:"doc_type" json:"doc_type"`
	Present bool   `db:"is_present" json:"is_present"`
}

// RequiredDocuments is the fixed checklist seeded for every new case.
var RequiredDocuments = []string{
	"Incident Report",
	"Claim Form",
	"Payslips (12 months)",
	"PIAWE Calculation",
	"Certificate of Capacity (Current)",
	"RTW Plan (Current)",
	"Suitable Duties Plan",
	"Medical Certificates",
	"Insurance Correspondence",
	"Wage Records",
}

// CasePayrollEntry is a payroll entry joined with its case's worker
// name, as returned by the all-cases payroll history query.
type CasePayrollEntry struct {
	PayrollEntry
	WorkerName string `db:"worker_name" json:"worker_name"`
}

// =============================================================================
// GENERATED DOCUMENTS
// =============================================================================

// Document records one generated document for a case's audit trail.
// The file itself is returned to the caller, not stored.
type Document struct {
	ID        string    `db:"id" json:"id"`
	CaseID    CaseID    `db:"case_id" json:"case_id"`
	DocType   string    `db:"doc_type" json:"doc_type"`
	Filename  string    `db:"filename" json:"filename"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// =============================================================================
// ACTIVITY LOG
// =============================================================================

// ActivityEntry is one append-only audit record. CaseID is empty for
// system-wide entries.
type ActivityEntry struct {
	ID         string    `db:"id" json:"id"`
	CaseID     CaseID    `db:"case_id" json:"case_id"`
	WorkerName string    `db:"worker_name" json:"worker_name"`
	Action     string    `db:"action" json:"action"`
	Details    string    `db:"details" json:"details"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
