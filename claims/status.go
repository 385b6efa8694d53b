/*
status.go - Certificate of Capacity status evaluation

PURPOSE:
  Classifies a certificate's end date relative to a reference day into
  Expired / Expiring / Current / Missing / Invalid. This is the single
  source of truth for COC status across the tracker, the case detail
  view and alert aggregation.

CONTRACT:
  Pure and total. No input ever produces an error: an empty date is
  Missing, an unparseable date is Invalid. The zero-day boundary
  belongs to Expiring ("still valid but due today"), never Expired.

SEE ALSO:
  - alerts.go: turns statuses into dashboard alerts
*/
package claims

import (
	"fmt"
	"time"
)

// StatusKind identifies a certificate status classification.
type StatusKind int

const (
	StatusMissing StatusKind = iota
	StatusInvalid
	StatusExpired
	StatusExpiring
	StatusCurrent
)

// String returns the wire name of the classification.
func (k StatusKind) String() string {
	switch k {
	case StatusMissing:
		return "MISSING"
	case StatusInvalid:
		return "INVALID"
	case StatusExpired:
		return "EXPIRED"
	case StatusExpiring:
		return "EXPIRING"
	default:
		return "CURRENT"
	}
}

// MarshalText lets a StatusKind serialize as its wire name, including
// as a JSON map key.
func (k StatusKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a wire name back into a StatusKind.
func (k *StatusKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "MISSING":
		*k = StatusMissing
	case "INVALID":
		*k = StatusInvalid
	case "EXPIRED":
		*k = StatusExpired
	case "EXPIRING":
		*k = StatusExpiring
	case "CURRENT":
		*k = StatusCurrent
	default:
		return fmt.Errorf("unknown certificate status %q", text)
	}
	return nil
}

// ExpiringWindowDays is the warning window: a certificate due within
// this many days (inclusive) is Expiring rather than Current.
const ExpiringWindowDays = 7

// CertStatus is the result of evaluating a certificate end date.
// Days is the days overdue for Expired, or days remaining for
// Expiring/Current; it is zero for Missing and Invalid.
type CertStatus struct {
	Kind StatusKind
	Days int
}

// EvaluateCertificate classifies a certificate end date against today.
// certTo is the raw stored date string; today is truncated to a
// calendar day before comparison.
func EvaluateCertificate(certTo string, today time.Time) CertStatus {
	if certTo == "" {
		return CertStatus{Kind: StatusMissing}
	}
	end, err := time.Parse(DateLayout, certTo)
	if err != nil {
		return CertStatus{Kind: StatusInvalid}
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	delta := int(end.Sub(day).Hours() / 24)

	switch {
	case delta < 0:
		return CertStatus{Kind: StatusExpired, Days: -delta}
	case delta <= ExpiringWindowDays:
		return CertStatus{Kind: StatusExpiring, Days: delta}
	default:
		return CertStatus{Kind: StatusCurrent, Days: delta}
	}
}

// Label renders the status the way the dashboard displays it.
func (s CertStatus) Label() string {
	switch s.Kind {
	case StatusMissing:
		return "No COC"
	case StatusInvalid:
		return "Invalid Date"
	case StatusExpired:
		return fmt.Sprintf("EXPIRED (%dd ago)", s.Days)
	case StatusExpiring:
		return fmt.Sprintf("EXPIRING (%dd)", s.Days)
	default:
		return fmt.Sprintf("Current (%dd left)", s.Days)
	}
}

// IsActionable reports whether the status needs operator attention
// (expired, expiring, missing or unreadable).
func (s CertStatus) IsActionable() bool {
	return s.Kind != StatusCurrent
}
