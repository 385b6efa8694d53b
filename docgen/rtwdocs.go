/*
rtwdocs.go - RTW Arrangement and RTW Plan

The arrangement proposes suitable duties for the worker's current
capacity level; the plan adds the 4-week progressive hours schedule.
Both mark every system-proposed section for review.
*/
package docgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/rtw"
)

// =============================================================================
// RTW ARRANGEMENT
// =============================================================================

func rtwArrangementFields(c *claims.Case, aux Aux) FieldMap {
	return FieldMap{
		"worker_name":     Text(c.WorkerName),
		"claim_number":    Text(c.ClaimNumber),
		"date_of_injury":  Date(c.DateOfInjury),
		"injury":          Text(c.InjuryDescription),
		"site":            Text(c.Site),
		"capacity":        Text(string(c.CurrentCapacity)),
		"certified_hours": TextOrReview(aux.medical("certified_hours"), c.ShiftStructure),
		"cert_from":       Date(aux.medical("cert_from")),
		"cert_to":         Date(aux.medical("cert_to")),
		"restrictions":    TextOrReview(aux.medical("restrictions"), "As per current Certificate of Capacity"),
	}
}

func renderRTWArrangement(c *claims.Case, aux Aux) ([]byte, error) {
	fm := rtwArrangementFields(c, aux)
	p := newPDF()

	p.title("Return to Work Arrangement")

	p.heading("Worker Details")
	p.fieldTable([]fieldRow{
		{"Worker Name", fm["worker_name"]},
		{"Claim Number", fm["claim_number"]},
		{"Date of Injury", fm["date_of_injury"]},
		{"Nature of Injury", fm["injury"]},
		{"Employer", Static(EmployerShort)},
		{"Worksite", fm["site"]},
	})

	p.heading("Current Capacity & Restrictions")
	p.fieldTable([]fieldRow{
		{"Current Capacity", fm["capacity"]},
		{"Certified Hours", fm["certified_hours"]},
		{"Certificate Period", Static(fm["cert_from"].Render() + " to " + fm["cert_to"].Render())},
		{"Medical Restrictions", fm["restrictions"]},
	})

	duties := rtw.SuitableDuties(c.CurrentCapacity.DutyLevel())

	p.heading("Proposed Suitable Duties")
	p.markerPara(MarkerReview,
		"The following duties are proposed based on current capacity. Please review and adjust as needed.")
	p.subheading(duties.Title)
	p.para("Purpose: " + duties.Purpose)

	p.subheading("Duties may include:")
	p.bullets(duties.Duties)

	p.subheading("Restrictions:")
	p.bullets(duties.Restrictions)

	if duties.RestBreak != "" {
		p.para("Rest breaks: " + duties.RestBreak)
	}

	p.heading("Agreement")
	p.para("I have read and agree to the above Return to Work Arrangement. I understand that " +
		"this arrangement may be modified based on medical advice and progress.")
	p.signatureGrid([]string{"Worker", "Employer", "Treating Practitioner"})

	return p.bytes()
}

// =============================================================================
// RTW PLAN
// =============================================================================

func rtwPlanFields(c *claims.Case, aux Aux, today time.Time) FieldMap {
	currentHours := planCurrentHours(aux)

	certifiedDefault := ""
	if currentHours > 0 {
		certifiedDefault = fmt.Sprintf("%g hrs/week", currentHours)
	}
	certified := Text(c.ShiftStructure)
	if certified.Prov == MissingRequired && certifiedDefault != "" {
		certified = Review(certifiedDefault)
	}

	return FieldMap{
		"worker_name":      Text(c.WorkerName),
		"worker_address":   Text(aux.medical("worker_address")),
		"worker_phone":     Text(aux.medical("worker_phone")),
		"worker_dob":       Text(aux.medical("worker_dob")),
		"occupation":       TextOrReview(aux.medical("occupation"), "Cleaner"),
		"date_of_injury":   Date(c.DateOfInjury),
		"claim_number":     Text(c.ClaimNumber),
		"interpreter":      TextHint(aux.medical("interpreter_needed"), "Yes / No"),
		"doctor_name":      Text(aux.medical("doctor_name")),
		"doctor_contacted": Review("Y / N"),
		"doctor_address":   Text(aux.medical("doctor_address")),
		"doctor_phone":     Text(aux.medical("doctor_phone")),
		"doctor_fax":       Text(aux.medical("doctor_fax")),
		"injury":           Text(c.InjuryDescription),
		"capacity":         Text(string(c.CurrentCapacity)),
		"certified_hours":  certified,
		"pre_injury_hours": TextOrReview(aux.medical("pre_injury_hours"), "38 hrs/week"),
		"restrictions":     TextOrReview(aux.medical("restrictions"), "As per Certificate of Capacity"),
		"cert_from":        Date(aux.medical("cert_from")),
		"cert_to":          Date(aux.medical("cert_to")),
		"plan_number":      TextOrReview(aux.medical("plan_number"), "1"),
		"review_date":      TextOrReview(aux.medical("review_date"), today.AddDate(0, 0, 28).Format("02/01/2006")),
		"rtw_location":     Text(c.Site),
	}
}

// planCurrentHours derives the starting weekly hours from the medical
// fields: certified hours/day times days/week, or the source's 3 hours
// per certified day when only days are known.
func planCurrentHours(aux Aux) float64 {
	hoursPerDay := parseFloat(aux.medical("hours_per_day"))
	daysPerWeek := parseFloat(aux.medical("days_per_week"))
	switch {
	case hoursPerDay > 0 && daysPerWeek > 0:
		return hoursPerDay * daysPerWeek
	case daysPerWeek > 0:
		return rtw.DefaultCurrentHours * daysPerWeek
	default:
		return 0
	}
}

func planTargetHours(aux Aux) float64 {
	if t := parseFloat(aux.medical("pre_injury_hours")); t > 0 {
		return t
	}
	return rtw.DefaultTargetHours
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func renderRTWPlan(c *claims.Case, aux Aux, today time.Time) ([]byte, error) {
	fm := rtwPlanFields(c, aux, today)
	p := newPDF()

	p.title("Return to Work Plan")
	p.subtitle("Employer: " + EmployerName)

	p.heading("EMPLOYER DETAILS")
	p.fieldTable([]fieldRow{
		{"Company Name", Static(EmployerName)},
		{"Prepared by", Static(Coordinator.Name + ", " + Coordinator.Role)},
		{"Contact Number", Static(Coordinator.Phone)},
		{"Plan number", fm["plan_number"]},
		{"To be reviewed", fm["review_date"]},
	})

	p.heading("WORKER DETAILS")
	p.fieldTable([]fieldRow{
		{"Name", fm["worker_name"]},
		{"Place of residence", fm["worker_address"]},
		{"Telephone", fm["worker_phone"]},
		{"Date of birth", fm["worker_dob"]},
		{"Occupation / pre-injury duties", fm["occupation"]},
		{"Date of injury", fm["date_of_injury"]},
		{"Claim number", fm["claim_number"]},
		{"Interpreter required?", fm["interpreter"]},
	})

	p.heading("TREATING MEDICAL PRACTITIONER")
	p.fieldTable([]fieldRow{
		{"Name", fm["doctor_name"]},
		{"Doctor has been contacted", fm["doctor_contacted"]},
		{"Address", fm["doctor_address"]},
		{"Telephone", fm["doctor_phone"]},
		{"Fax", fm["doctor_fax"]},
		{"Nature of injury", fm["injury"]},
	})

	p.heading("CURRENT RETURN TO WORK RESTRICTIONS")
	p.fieldTable([]fieldRow{
		{"Current capacity", fm["capacity"]},
		{"Certified hours", fm["certified_hours"]},
		{"Pre-injury average", fm["pre_injury_hours"]},
		{"Medical Constraints", fm["restrictions"]},
		{"Current Certificate", Static(fm["cert_from"].Render() + " to " + fm["cert_to"].Render())},
	})

	level := c.CurrentCapacity.DutyLevel()
	duties := rtw.SuitableDuties(level)

	p.heading("RETURN TO WORK")
	p.fieldTable([]fieldRow{
		{"Return to work position", TextOrReview(aux.medical("rtw_position"), "Modified Duties - "+duties.Title)},
		{"Return to work location", fm["rtw_location"]},
		{"Return to Work Goals", Review("Progressive return to pre-injury duties over 4 weeks. " +
			"Commence at " + duties.Title + " and progress as tolerated.")},
		{"Specific duties/tasks", Review(strings.Join(duties.Duties[:4], "; "))},
		{"Restrictions", Static(strings.Join(duties.Restrictions[:min(3, len(duties.Restrictions))], "; "))},
	})

	p.heading("HOURS OF WORK")
	p.markerPara(MarkerReview,
		"The following 4-week schedule is auto-generated based on current capacity. "+
			"Adjust start/finish times and duties levels as needed.")

	schedule := rtw.BuildSchedule(planCurrentHours(aux), planTargetHours(aux), c.CurrentCapacity)
	rows := make([][]string, len(schedule))
	for i, wk := range schedule {
		rows[i] = []string{
			fmt.Sprintf("Week %d", wk.Week),
			fmt.Sprintf("%g hrs", wk.Hours),
			fmt.Sprintf("L%d", wk.DutyLevel),
		}
	}
	p.grid([]float64{50, 70, 50}, []string{"Week", "Total Hours/Week", "Duties Level"}, rows)

	p.heading("SIGNATURES")
	p.signatureGrid([]string{"Employer", "Worker", "Treating Practitioner"})

	p.subheading("Will assistance for RTW or other occupational rehab services be required?")
	p.para(MarkerReview + " Yes / No")

	return p.bytes()
}
