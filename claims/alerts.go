/*
alerts.go - Dashboard alert aggregation

PURPOSE:
  Builds the severity-ordered list of actionable alerts shown at the
  top of the dashboard: expired or expiring certificates, cases with no
  certificate at all, pending terminations, and cases missing PIAWE
  data.

ORDERING:
  Severity tiers sort URGENT < WARNING < ACTION < INFO. The sort is
  stable: within a tier, alerts keep the order in which their source
  records were encountered (cases arrive ordered by state then worker
  name, certificates by expiry date).
*/
package claims

import (
	"fmt"
	"sort"
	"time"
)

// Severity ranks an alert. Lower rank is more urgent.
type Severity string

const (
	SeverityUrgent  Severity = "URGENT"
	SeverityWarning Severity = "WARNING"
	SeverityAction  Severity = "ACTION"
	SeverityInfo    Severity = "INFO"
)

func (s Severity) rank() int {
	switch s {
	case SeverityUrgent:
		return 0
	case SeverityWarning:
		return 1
	case SeverityAction:
		return 2
	default:
		return 3
	}
}

// Alert is one actionable dashboard item.
type Alert struct {
	Type     string   `json:"type"` // COC, TERMINATION, PAYROLL
	Severity Severity `json:"severity"`
	Worker   string   `json:"worker"`
	CaseID   CaseID   `json:"case_id"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// CaseCertificate is a certificate joined with its case's worker name,
// as returned by the latest-per-case tracker query.
type CaseCertificate struct {
	Certificate
	WorkerName string `db:"worker_name" json:"worker_name"`
}

// TerminationCase is a termination joined with case identity fields.
type TerminationCase struct {
	Termination
	WorkerName string `db:"worker_name" json:"worker_name"`
	State      string `db:"state" json:"state"`
	Site       string `db:"site" json:"site"`
}

// BuildAlerts aggregates alerts from the current data set.
//
// activeCases must be ordered by state then worker name and latestCerts
// by expiry ascending; that encounter order is what the stable sort
// preserves within each severity tier.
func BuildAlerts(activeCases []Case, latestCerts []CaseCertificate, pendingTerms []TerminationCase, today time.Time) []Alert {
	var alerts []Alert

	covered := make(map[CaseID]bool, len(latestCerts))
	for _, cert := range latestCerts {
		covered[cert.CaseID] = true
		status := EvaluateCertificate(cert.CertTo, today)
		switch status.Kind {
		case StatusExpired:
			alerts = append(alerts, Alert{
				Type: "COC", Severity: SeverityUrgent,
				Worker: cert.WorkerName, CaseID: cert.CaseID,
				Message: fmt.Sprintf("COC %s", status.Label()),
				Action:  "Obtain new Certificate of Capacity",
			})
		case StatusExpiring:
			alerts = append(alerts, Alert{
				Type: "COC", Severity: SeverityWarning,
				Worker: cert.WorkerName, CaseID: cert.CaseID,
				Message: fmt.Sprintf("COC %s", status.Label()),
				Action:  "Obtain new Certificate of Capacity",
			})
		}
	}

	for _, c := range activeCases {
		if !covered[c.ID] && !c.CurrentCapacity.IsFull() {
			alerts = append(alerts, Alert{
				Type: "COC", Severity: SeverityWarning,
				Worker: c.WorkerName, CaseID: c.ID,
				Message: "No COC on record",
				Action:  "Obtain Certificate of Capacity from insurer",
			})
		}
	}

	for _, t := range pendingTerms {
		alerts = append(alerts, Alert{
			Type: "TERMINATION", Severity: SeverityAction,
			Worker: t.WorkerName, CaseID: t.CaseID,
			Message: fmt.Sprintf("Termination pending - %s", t.TerminationType),
			Action:  fmt.Sprintf("Follow up with %s", t.AssignedTo),
		})
	}

	for _, c := range activeCases {
		if !c.HasPIAWE() && !c.CurrentCapacity.IsFull() && c.ReductionRate != RateNA {
			alerts = append(alerts, Alert{
				Type: "PAYROLL", Severity: SeverityInfo,
				Worker: c.WorkerName, CaseID: c.ID,
				Message: "PIAWE data missing",
				Action:  "Obtain PIAWE from insurer",
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.rank() < alerts[j].Severity.rank()
	})
	return alerts
}
